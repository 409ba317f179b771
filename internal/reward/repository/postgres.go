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

func (r *PGRepository) Insert(ctx context.Context, e sqlx.ExtContext, rw *model.Reward) (int64, error) {
	query := e.Rebind(`
        INSERT INTO rewards (reward_id, check_amount_owed, staff_id, customer_id)
        VALUES (?, ?, ?, ?)
    `)

	res, err := e.ExecContext(ctx, query, rw.RewardID, rw.CheckAmountOwed, rw.StaffID, rw.CustomerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) Overwrite(ctx context.Context, e sqlx.ExtContext, rw *model.Reward) (int64, error) {
	query := e.Rebind(`
        UPDATE rewards SET check_amount_owed = ?, staff_id = ?, customer_id = ?
        WHERE reward_id = ?
    `)

	res, err := e.ExecContext(ctx, query, rw.CheckAmountOwed, rw.StaffID, rw.CustomerID, rw.RewardID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) RecomputeCredit(ctx context.Context, e sqlx.ExtContext, customerID int64, start, end time.Time) (int64, error) {
	query := e.Rebind(`
        UPDATE rewards SET check_amount_owed = (
            SELECT COALESCE(SUM(total_price) * 0.02, 0) FROM transactions
            WHERE purchase_date >= ? AND purchase_date < ? AND customer_id = ?
        )
        WHERE customer_id = ?
    `)

	res, err := e.ExecContext(ctx, query,
		start.Format(model.DateLayout),
		end.Format(model.DateLayout),
		customerID,
		customerID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *PGRepository) GetByID(ctx context.Context, q sqlx.ExtContext, rewardID int64) (*model.Reward, error) {
	var rw model.Reward
	query := q.Rebind(`SELECT * FROM rewards WHERE reward_id = ?`)

	err := sqlx.GetContext(ctx, q, &rw, query, rewardID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rw, nil
}
