package sale

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/storechain/ops-service/internal/model"
)

type Repository interface {
	// Insert persists one immutable sale row, returning the affected-row
	// count so callers can detect a silent no-op write.
	Insert(ctx context.Context, e sqlx.ExtContext, s *model.Sale) (int64, error)
}
