package transfer

import (
	"context"
	"errors"

	"github.com/storechain/ops-service/internal/model"
	"github.com/storechain/ops-service/internal/transfer/dto"
)

// ErrNoSuchStock is returned when no stock record matches the source
// (store, product) identity.
var ErrNoSuchStock = errors.New("no stock record to transfer")

type UseCase interface {
	Transfer(ctx context.Context, input *dto.TransferInput) (*model.TransferRecord, error)
}
