package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/storechain/ops-service/internal/httputil"
	"github.com/storechain/ops-service/internal/model"
	"github.com/storechain/ops-service/internal/reward"
	"github.com/storechain/ops-service/internal/reward/dto"
	"go.uber.org/zap"
)

type RewardHandler struct {
	uc     reward.UseCase
	logger *zap.Logger
}

func NewRewardHandler(uc reward.UseCase, log *zap.Logger) *RewardHandler {
	return &RewardHandler{
		uc:     uc,
		logger: log,
	}
}

// CreateReward handles POST /rewards
func (h *RewardHandler) CreateReward(w http.ResponseWriter, r *http.Request) {
	input, ok := h.decodeInput(w, r, 0)
	if !ok {
		return
	}

	statement, err := h.uc.CreateReward(r.Context(), input)
	if err != nil {
		h.logger.Warn("reward creation rejected", zap.Int64("reward_id", input.RewardID), zap.Error(err))
		httputil.RespondError(w, statusFor(err), err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, statement)
}

// UpdateReward handles PUT /rewards/{reward_id}
func (h *RewardHandler) UpdateReward(w http.ResponseWriter, r *http.Request) {
	rewardID, err := strconv.ParseInt(chi.URLParam(r, "reward_id"), 10, 64)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid reward_id")
		return
	}

	input, ok := h.decodeInput(w, r, rewardID)
	if !ok {
		return
	}

	statement, err := h.uc.UpdateReward(r.Context(), input)
	if err != nil {
		h.logger.Warn("reward update rejected", zap.Int64("reward_id", rewardID), zap.Error(err))
		httputil.RespondError(w, statusFor(err), err.Error())
		return
	}

	httputil.RespondJSON(w, http.StatusOK, statement)
}

func (h *RewardHandler) decodeInput(w http.ResponseWriter, r *http.Request, rewardID int64) (*dto.RewardInput, bool) {
	var req dto.RewardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			httputil.RespondError(w, http.StatusBadRequest, "request body is required")
			return nil, false
		}
		httputil.RespondError(w, http.StatusBadRequest, "invalid JSON in request body")
		return nil, false
	}

	if rewardID != 0 {
		req.RewardID = rewardID
	}

	start, err := time.Parse(model.DateLayout, req.PeriodStart)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid period_start, must be YYYY-MM-DD")
		return nil, false
	}
	end, err := time.Parse(model.DateLayout, req.PeriodEnd)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid period_end, must be YYYY-MM-DD")
		return nil, false
	}

	return &dto.RewardInput{
		RewardID:    req.RewardID,
		StaffID:     req.StaffID,
		CustomerID:  req.CustomerID,
		PeriodStart: start,
		PeriodEnd:   end,
	}, true
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, reward.ErrInvalidWindow):
		return http.StatusBadRequest
	case errors.Is(err, reward.ErrInvalidMember),
		errors.Is(err, reward.ErrNotPlatinumActive),
		errors.Is(err, reward.ErrRewardWrite):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
