package member

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/storechain/ops-service/internal/model"
)

// Repository reads club membership rows. The reward engine only ever uses
// it as an eligibility gate; nothing here mutates the table.
type Repository interface {
	// GetByID returns nil (no error) when the customer does not exist.
	GetByID(ctx context.Context, q sqlx.ExtContext, customerID int64) (*model.ClubMember, error)
}
