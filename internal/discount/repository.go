package discount

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

// Repository resolves the promotional reduction applicable to one
// (store, product) pair on a given date. Read-only.
type Repository interface {
	// Resolve returns the active promotion percentage, or 0 when no
	// discount window contains onDate. When several windows overlap the
	// most recently started one wins.
	Resolve(ctx context.Context, q sqlx.ExtContext, productID, storeID int64, onDate time.Time) (float64, error)
}
