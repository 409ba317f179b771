package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/storechain/ops-service/internal/model"
)

type PGRepository struct{}

func NewPGRepository() *PGRepository {
	return &PGRepository{}
}

func (r *PGRepository) Resolve(ctx context.Context, q sqlx.ExtContext, productID, storeID int64, onDate time.Time) (float64, error) {
	// Both window bounds are inclusive. ORDER BY start date makes the pick
	// deterministic when windows overlap.
	query := q.Rebind(`
        SELECT promotion FROM discounts
        WHERE product_id = ? AND store_id = ?
          AND discount_start_date <= ? AND discount_end_date >= ?
        ORDER BY discount_start_date DESC
        LIMIT 1
    `)

	day := onDate.Format(model.DateLayout)

	var promotion float64
	err := sqlx.GetContext(ctx, q, &promotion, query, productID, storeID, day, day)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return promotion, nil
}
