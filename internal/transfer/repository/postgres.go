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

func (r *PGRepository) InsertRecord(ctx context.Context, e sqlx.ExtContext, rec *model.TransferRecord) (int64, error) {
	query := e.Rebind(`
        INSERT INTO transfers (
            store1_id, store2_id, product1_id, product2_id, transfer_date, staff_id
        )
        VALUES (?, ?, ?, ?, ?, ?)
    `)

	res, err := e.ExecContext(ctx, query,
		rec.Store1ID,
		rec.Store2ID,
		rec.Product1ID,
		rec.Product2ID,
		rec.TransferDate.Format(model.DateLayout),
		rec.StaffID,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
