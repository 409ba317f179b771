package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/storechain/ops-service/internal/model"
)

type PGRepository struct{}

func NewPGRepository() *PGRepository {
	return &PGRepository{}
}

func (r *PGRepository) GetByKey(ctx context.Context, q sqlx.ExtContext, storeID, productID int64) (*model.StockRecord, error) {
	var rec model.StockRecord
	query := q.Rebind(`SELECT * FROM merchandise WHERE store_id = ? AND product_id = ?`)

	err := sqlx.GetContext(ctx, q, &rec, query, storeID, productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *PGRepository) GetByName(ctx context.Context, q sqlx.ExtContext, storeID int64, name string) (*model.StockRecord, error) {
	var rec model.StockRecord
	query := q.Rebind(`SELECT * FROM merchandise WHERE store_id = ? AND LOWER(product_name) = LOWER(?)`)

	err := sqlx.GetContext(ctx, q, &rec, query, storeID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *PGRepository) DeductStock(ctx context.Context, e sqlx.ExtContext, storeID, productID int64, quantity int) (bool, error) {
	// The stock_quantity >= ? guard keeps the quantity from ever going
	// negative; a rejected decrement affects zero rows.
	query := e.Rebind(`
        UPDATE merchandise SET stock_quantity = stock_quantity - ?
        WHERE store_id = ? AND product_id = ? AND stock_quantity >= ?
    `)

	res, err := e.ExecContext(ctx, query, quantity, storeID, productID, quantity)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *PGRepository) Rekey(ctx context.Context, e sqlx.ExtContext, srcStoreID, srcProductID, dstStoreID, dstProductID int64) (int64, error) {
	query := e.Rebind(`
        UPDATE merchandise SET store_id = ?, product_id = ?
        WHERE store_id = ? AND product_id = ?
    `)

	res, err := e.ExecContext(ctx, query, dstStoreID, dstProductID, srcStoreID, srcProductID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
