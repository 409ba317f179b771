package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/storechain/ops-service/internal/catalog"
	"github.com/storechain/ops-service/internal/httputil"
	"github.com/storechain/ops-service/internal/model"
	"github.com/storechain/ops-service/internal/sale"
	"github.com/storechain/ops-service/internal/sale/dto"
	"go.uber.org/zap"
)

type SaleHandler struct {
	uc     sale.UseCase
	logger *zap.Logger
}

func NewSaleHandler(uc sale.UseCase, log *zap.Logger) *SaleHandler {
	return &SaleHandler{
		uc:     uc,
		logger: log,
	}
}

// ProcessSale handles POST /sales
func (h *SaleHandler) ProcessSale(w http.ResponseWriter, r *http.Request) {
	var req dto.ProcessSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			httputil.RespondError(w, http.StatusBadRequest, "request body is required")
			return
		}
		httputil.RespondError(w, http.StatusBadRequest, "invalid JSON in request body")
		return
	}

	purchaseDate, err := time.Parse(model.DateLayout, req.PurchaseDate)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid purchase_date, must be YYYY-MM-DD")
		return
	}

	input := &dto.ProcessSaleInput{
		TransactionID: req.TransactionID,
		PurchaseDate:  purchaseDate,
		CustomerID:    req.CustomerID,
		StaffID:       req.StaffID,
		StoreID:       req.StoreID,
		Products:      req.Products,
		Quantities:    req.Quantities,
	}

	receipt, err := h.uc.ProcessSale(r.Context(), input)
	if err != nil {
		h.logger.Warn("sale rejected", zap.Int64("transaction_id", req.TransactionID), zap.Error(err))
		httputil.RespondError(w, statusFor(err), err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, receipt)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sale.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrUnknownProduct),
		errors.Is(err, catalog.ErrInsufficientStock):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
