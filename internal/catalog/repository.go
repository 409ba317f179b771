package catalog

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/storechain/ops-service/internal/model"
)

var (
	ErrUnknownProduct    = errors.New("unknown product")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Repository exposes the stock primitives the sale and transfer engines
// build on. Methods run against whatever handle they are given, so callers
// can pass the base session or an open transaction.
type Repository interface {
	GetByKey(ctx context.Context, q sqlx.ExtContext, storeID, productID int64) (*model.StockRecord, error)

	// GetByName matches product_name case-insensitively within one store.
	GetByName(ctx context.Context, q sqlx.ExtContext, storeID int64, name string) (*model.StockRecord, error)

	// DeductStock decrements stock_quantity, guarded so the quantity can
	// never go negative. Returns false when the guard rejects the write.
	DeductStock(ctx context.Context, e sqlx.ExtContext, storeID, productID int64, quantity int) (bool, error)

	// Rekey re-identifies a stock record under a new (store, product) key,
	// returning the number of rows moved.
	Rekey(ctx context.Context, e sqlx.ExtContext, srcStoreID, srcProductID, dstStoreID, dstProductID int64) (int64, error)
}
