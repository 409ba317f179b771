package sale

import (
	"context"
	"errors"

	"github.com/storechain/ops-service/internal/sale/dto"
)

// ErrInvalidInput marks malformed sale input rejected before any database
// interaction.
var ErrInvalidInput = errors.New("invalid sale input")

type UseCase interface {
	ProcessSale(ctx context.Context, input *dto.ProcessSaleInput) (*dto.SaleReceipt, error)
}
