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

func (r *PGRepository) GetByID(ctx context.Context, q sqlx.ExtContext, customerID int64) (*model.ClubMember, error) {
	var m model.ClubMember
	query := q.Rebind(`SELECT customer_id, membership_level, cust_status FROM club_members WHERE customer_id = ?`)

	err := sqlx.GetContext(ctx, q, &m, query, customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
