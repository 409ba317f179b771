package transfer

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/storechain/ops-service/internal/model"
)

type Repository interface {
	// InsertRecord writes the audit row for one completed transfer,
	// returning the affected-row count.
	InsertRecord(ctx context.Context, e sqlx.ExtContext, rec *model.TransferRecord) (int64, error)
}
