package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/storechain/ops-service/internal/broker"
	"github.com/storechain/ops-service/internal/cache"
	"github.com/storechain/ops-service/internal/catalog"
	"github.com/storechain/ops-service/internal/discount"
	"github.com/storechain/ops-service/internal/model"
	"github.com/storechain/ops-service/internal/sale"
	"github.com/storechain/ops-service/internal/sale/dto"
	"go.uber.org/zap"
)

type saleUseCase struct {
	db        *sqlx.DB
	catalog   catalog.Repository
	discounts discount.Repository
	sales     sale.Repository
	cache     *cache.RedisClient
	events    *broker.Publisher
	logger    *zap.Logger
}

func NewSaleUseCase(db *sqlx.DB, catalogRepo catalog.Repository, discountRepo discount.Repository, saleRepo sale.Repository, cache *cache.RedisClient, events *broker.Publisher, log *zap.Logger) sale.UseCase {
	return &saleUseCase{
		db:        db,
		catalog:   catalogRepo,
		discounts: discountRepo,
		sales:     saleRepo,
		cache:     cache,
		events:    events,
		logger:    log,
	}
}

// ProcessSale converts an itemized purchase into priced line items,
// decrements stock and persists the sale, all inside one transaction. Any
// failed line rolls back the whole operation.
func (uc *saleUseCase) ProcessSale(ctx context.Context, input *dto.ProcessSaleInput) (*dto.SaleReceipt, error) {
	if len(input.Products) == 0 {
		return nil, fmt.Errorf("%w: no products", sale.ErrInvalidInput)
	}
	if len(input.Products) != len(input.Quantities) {
		return nil, fmt.Errorf("%w: %d products but %d quantities",
			sale.ErrInvalidInput, len(input.Products), len(input.Quantities))
	}

	products := make([]string, len(input.Products))
	for i, name := range input.Products {
		products[i] = strings.TrimSpace(name)
		if products[i] == "" {
			return nil, fmt.Errorf("%w: empty product name at position %d", sale.ErrInvalidInput, i+1)
		}
		if input.Quantities[i] <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive at position %d", sale.ErrInvalidInput, i+1)
		}
	}

	// Serialize stock mutation per store so the read-then-decrement steps
	// of two sessions cannot interleave.
	release, err := uc.lockStore(ctx, input.StoreID)
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := uc.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	total := 0.0
	lines := make([]dto.SaleLine, 0, len(products))

	for i, name := range products {
		quantity := input.Quantities[i]

		rec, err := uc.catalog.GetByName(ctx, tx, input.StoreID, name)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, fmt.Errorf("line %d: %w: %q in store %d", i+1, catalog.ErrUnknownProduct, name, input.StoreID)
		}

		promotion, err := uc.discounts.Resolve(ctx, tx, rec.ProductID, input.StoreID, input.PurchaseDate)
		if err != nil {
			return nil, err
		}

		unitPrice := rec.MarketPrice * ((100.0 - promotion) * 0.01)
		lineTotal := unitPrice * float64(quantity)
		total += lineTotal

		ok, err := uc.catalog.DeductStock(ctx, tx, input.StoreID, rec.ProductID, quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("line %d: %w: %q has %d in stock, %d requested",
				i+1, catalog.ErrInsufficientStock, name, rec.StockQuantity, quantity)
		}

		lines = append(lines, dto.SaleLine{
			Product:   name,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Promotion: promotion,
			LineTotal: lineTotal,
		})
	}

	storeID := input.StoreID
	s := &model.Sale{
		TransactionID: input.TransactionID,
		PurchaseDate:  input.PurchaseDate,
		TotalPrice:    total,
		CustomerID:    input.CustomerID,
		StaffID:       input.StaffID,
		StoreID:       &storeID,
		ProductList:   strings.Join(products, ","),
	}

	affected, err := uc.sales.Insert(ctx, tx, s)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("sale row not written")
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	uc.logger.Info("sale processed",
		zap.Int64("transaction_id", input.TransactionID),
		zap.Int64("store_id", input.StoreID),
		zap.Float64("total_price", total))

	go uc.publishSaleEvent(context.Background(), s)

	return &dto.SaleReceipt{
		TransactionID: input.TransactionID,
		TotalPrice:    total,
		Lines:         lines,
	}, nil
}

// lockStore acquires the per-store stock lock with a short retry loop.
// Without a cache client it degrades to the single-session guarantee.
func (uc *saleUseCase) lockStore(ctx context.Context, storeID int64) (func(), error) {
	if uc.cache == nil {
		return func() {}, nil
	}

	lockKey := cache.StockLockKey(storeID)
	lockValue := uuid.New().String()

	acquired := false
	for i := 0; i < 3; i++ {
		ok, err := uc.cache.AcquireLock(ctx, lockKey, lockValue, 5*time.Second)
		if err != nil {
			uc.logger.Error("failed to acquire stock lock", zap.Error(err))
		}
		if ok {
			acquired = true
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	if !acquired {
		return nil, errors.New("store busy, please try again later (lock)")
	}

	return func() { uc.cache.ReleaseLock(ctx, lockKey, lockValue) }, nil
}

func (uc *saleUseCase) publishSaleEvent(ctx context.Context, s *model.Sale) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, "sale.recorded", s); err != nil {
		uc.logger.Warn("failed to publish sale event",
			zap.Int64("transaction_id", s.TransactionID), zap.Error(err))
	}
}
