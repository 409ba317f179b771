package reward

import (
	"context"
	"errors"

	"github.com/storechain/ops-service/internal/reward/dto"
)

var (
	// ErrInvalidWindow marks a malformed computation window rejected before
	// any database interaction.
	ErrInvalidWindow = errors.New("invalid reward period")

	// ErrInvalidMember is returned when the customer does not exist.
	ErrInvalidMember = errors.New("invalid club member")

	// ErrNotPlatinumActive is the eligibility gate rejection: only active
	// Platinum members may ever hold a non-zero reward credit.
	ErrNotPlatinumActive = errors.New("not an active platinum customer")

	// ErrRewardWrite is returned when an expected reward write affected no
	// rows.
	ErrRewardWrite = errors.New("reward row not written")
)

type UseCase interface {
	CreateReward(ctx context.Context, input *dto.RewardInput) (*dto.RewardStatement, error)
	UpdateReward(ctx context.Context, input *dto.RewardInput) (*dto.RewardStatement, error)
}
