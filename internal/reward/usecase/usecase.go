package usecase

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/storechain/ops-service/internal/broker"
	"github.com/storechain/ops-service/internal/member"
	"github.com/storechain/ops-service/internal/model"
	"github.com/storechain/ops-service/internal/reward"
	"github.com/storechain/ops-service/internal/reward/dto"
	"go.uber.org/zap"
)

const (
	platinumLevel = "Platinum"
	activeStatus  = "Active"
)

type rewardUseCase struct {
	db      *sqlx.DB
	rewards reward.Repository
	members member.Repository
	events  *broker.Publisher
	logger  *zap.Logger
}

func NewRewardUseCase(db *sqlx.DB, rewardRepo reward.Repository, memberRepo member.Repository, events *broker.Publisher, log *zap.Logger) reward.UseCase {
	return &rewardUseCase{
		db:      db,
		rewards: rewardRepo,
		members: memberRepo,
		events:  events,
		logger:  log,
	}
}

// CreateReward writes a placeholder reward row, then runs the eligibility
// gate and credit recomputation. Any failure rolls the whole chain back,
// so a rejected customer leaves no reward row behind.
func (uc *rewardUseCase) CreateReward(ctx context.Context, input *dto.RewardInput) (*dto.RewardStatement, error) {
	if err := validateWindow(input); err != nil {
		return nil, err
	}

	tx, err := uc.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	affected, err := uc.rewards.Insert(ctx, tx, &model.Reward{
		RewardID:        input.RewardID,
		CheckAmountOwed: 0,
		StaffID:         input.StaffID,
		CustomerID:      input.CustomerID,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, reward.ErrRewardWrite
	}

	return uc.gateAndCompute(ctx, tx, input)
}

// UpdateReward overwrites the attribution on an existing reward row, then
// re-runs the identical gate and recomputation.
func (uc *rewardUseCase) UpdateReward(ctx context.Context, input *dto.RewardInput) (*dto.RewardStatement, error) {
	if err := validateWindow(input); err != nil {
		return nil, err
	}

	tx, err := uc.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	affected, err := uc.rewards.Overwrite(ctx, tx, &model.Reward{
		RewardID:        input.RewardID,
		CheckAmountOwed: 0,
		StaffID:         input.StaffID,
		CustomerID:      input.CustomerID,
	})
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: no reward %d", reward.ErrRewardWrite, input.RewardID)
	}

	return uc.gateAndCompute(ctx, tx, input)
}

func (uc *rewardUseCase) gateAndCompute(ctx context.Context, tx *sqlx.Tx, input *dto.RewardInput) (*dto.RewardStatement, error) {
	m, err := uc.members.GetByID(ctx, tx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("%w: customer %d", reward.ErrInvalidMember, input.CustomerID)
	}
	if m.MembershipLevel != platinumLevel || m.CustStatus != activeStatus {
		return nil, fmt.Errorf("%w: customer %d is %s/%s",
			reward.ErrNotPlatinumActive, input.CustomerID, m.MembershipLevel, m.CustStatus)
	}

	affected, err := uc.rewards.RecomputeCredit(ctx, tx, input.CustomerID, input.PeriodStart, input.PeriodEnd)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, reward.ErrRewardWrite
	}

	rw, err := uc.rewards.GetByID(ctx, tx, input.RewardID)
	if err != nil {
		return nil, err
	}
	if rw == nil {
		return nil, reward.ErrRewardWrite
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	uc.logger.Info("reward computed",
		zap.Int64("reward_id", rw.RewardID),
		zap.Int64("customer_id", rw.CustomerID),
		zap.Float64("check_amount_owed", rw.CheckAmountOwed))

	go uc.publishRewardEvent(context.Background(), rw)

	return &dto.RewardStatement{
		RewardID:        rw.RewardID,
		CustomerID:      rw.CustomerID,
		CheckAmountOwed: rw.CheckAmountOwed,
	}, nil
}

func validateWindow(input *dto.RewardInput) error {
	if !input.PeriodEnd.After(input.PeriodStart) {
		return fmt.Errorf("%w: end %s must be after start %s", reward.ErrInvalidWindow,
			input.PeriodEnd.Format(model.DateLayout), input.PeriodStart.Format(model.DateLayout))
	}
	return nil
}

func (uc *rewardUseCase) publishRewardEvent(ctx context.Context, rw *model.Reward) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, "reward.issued", rw); err != nil {
		uc.logger.Warn("failed to publish reward event",
			zap.Int64("reward_id", rw.RewardID), zap.Error(err))
	}
}
