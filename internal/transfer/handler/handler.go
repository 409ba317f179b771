package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/storechain/ops-service/internal/httputil"
	"github.com/storechain/ops-service/internal/model"
	"github.com/storechain/ops-service/internal/transfer"
	"github.com/storechain/ops-service/internal/transfer/dto"
	"go.uber.org/zap"
)

type TransferHandler struct {
	uc     transfer.UseCase
	logger *zap.Logger
}

func NewTransferHandler(uc transfer.UseCase, log *zap.Logger) *TransferHandler {
	return &TransferHandler{
		uc:     uc,
		logger: log,
	}
}

// Transfer handles POST /transfers
func (h *TransferHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			httputil.RespondError(w, http.StatusBadRequest, "request body is required")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}

	transferDate, err := time.Parse(model.DateLayout, req.TransferDate)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid transfer_date, must be YYYY-MM-DD")
		return
	}

	input := &dto.TransferInput{
		SourceStoreID:   req.SourceStoreID,
		SourceProductID: req.SourceProductID,
		DestStoreID:     req.DestStoreID,
		DestProductID:   req.DestProductID,
		TransferDate:    transferDate,
		StaffID:         req.StaffID,
	}

	rec, err := h.uc.Transfer(r.Context(), input)
	if err != nil {
		h.logger.Warn("transfer rejected", zap.Error(err))
		httputil.RespondError(w, statusFor(err), err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, rec)
}

func statusFor(err error) int {
	if errors.Is(err, transfer.ErrNoSuchStock) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
