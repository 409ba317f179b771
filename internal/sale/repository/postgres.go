package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/storechain/ops-service/internal/model"
)

type PGRepository struct{}

func NewPGRepository() *PGRepository {
	return &PGRepository{}
}

func (r *PGRepository) Insert(ctx context.Context, e sqlx.ExtContext, s *model.Sale) (int64, error) {
	query := e.Rebind(`
        INSERT INTO transactions (
            transaction_id, purchase_date, total_price,
            customer_id, staff_id, store_id, product_list
        )
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `)

	res, err := e.ExecContext(ctx, query,
		s.TransactionID,
		s.PurchaseDate.Format(model.DateLayout),
		s.TotalPrice,
		s.CustomerID,
		s.StaffID,
		s.StoreID,
		s.ProductList,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
