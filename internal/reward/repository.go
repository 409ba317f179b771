package reward

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/storechain/ops-service/internal/model"
)

type Repository interface {
	// Insert writes a fresh reward row, returning the affected-row count.
	Insert(ctx context.Context, e sqlx.ExtContext, rw *model.Reward) (int64, error)

	// Overwrite replaces staff, customer and credit on an existing row
	// keyed by reward_id, returning the affected-row count.
	Overwrite(ctx context.Context, e sqlx.ExtContext, rw *model.Reward) (int64, error)

	// RecomputeCredit sets check_amount_owed to 2% of the customer's sale
	// totals with purchase_date in [start, end), in a single statement so
	// the credit can never drift from purchase history.
	RecomputeCredit(ctx context.Context, e sqlx.ExtContext, customerID int64, start, end time.Time) (int64, error)

	GetByID(ctx context.Context, q sqlx.ExtContext, rewardID int64) (*model.Reward, error)
}
