package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/storechain/ops-service/internal/broker"
	"github.com/storechain/ops-service/internal/cache"
	"github.com/storechain/ops-service/internal/catalog"
	"github.com/storechain/ops-service/internal/model"
	"github.com/storechain/ops-service/internal/transfer"
	"github.com/storechain/ops-service/internal/transfer/dto"
	"go.uber.org/zap"
)

type transferUseCase struct {
	db      *sqlx.DB
	catalog catalog.Repository
	records transfer.Repository
	cache   *cache.RedisClient
	events  *broker.Publisher
	logger  *zap.Logger
}

func NewTransferUseCase(db *sqlx.DB, catalogRepo catalog.Repository, recordRepo transfer.Repository, cache *cache.RedisClient, events *broker.Publisher, log *zap.Logger) transfer.UseCase {
	return &transferUseCase{
		db:      db,
		catalog: catalogRepo,
		records: recordRepo,
		cache:   cache,
		events:  events,
		logger:  log,
	}
}

// Transfer re-identifies a stock record under the destination store's
// catalog and records the audit row, as one atomic unit. The store never
// observes one without the other.
func (uc *transferUseCase) Transfer(ctx context.Context, input *dto.TransferInput) (*model.TransferRecord, error) {
	release, err := uc.lockStore(ctx, input.SourceStoreID)
	if err != nil {
		return nil, err
	}
	defer release()

	tx, err := uc.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	moved, err := uc.catalog.Rekey(ctx, tx,
		input.SourceStoreID, input.SourceProductID,
		input.DestStoreID, input.DestProductID)
	if err != nil {
		return nil, err
	}
	if moved == 0 {
		return nil, fmt.Errorf("%w: store %d product %d",
			transfer.ErrNoSuchStock, input.SourceStoreID, input.SourceProductID)
	}

	rec := &model.TransferRecord{
		Store1ID:     input.SourceStoreID,
		Store2ID:     input.DestStoreID,
		Product1ID:   input.SourceProductID,
		Product2ID:   input.DestProductID,
		TransferDate: input.TransferDate,
		StaffID:      input.StaffID,
	}

	affected, err := uc.records.InsertRecord(ctx, tx, rec)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, errors.New("transfer audit row not written")
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	uc.logger.Info("stock transferred",
		zap.Int64("source_store_id", input.SourceStoreID),
		zap.Int64("source_product_id", input.SourceProductID),
		zap.Int64("dest_store_id", input.DestStoreID),
		zap.Int64("dest_product_id", input.DestProductID))

	go uc.publishTransferEvent(context.Background(), rec)

	return rec, nil
}

// lockStore takes the same per-store lock the sale path holds, so a
// concurrent sale cannot interleave with the rekey of one of its records.
func (uc *transferUseCase) lockStore(ctx context.Context, storeID int64) (func(), error) {
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
		return nil, errors.New("stock record busy, please try again later (lock)")
	}

	return func() { uc.cache.ReleaseLock(ctx, lockKey, lockValue) }, nil
}

func (uc *transferUseCase) publishTransferEvent(ctx context.Context, rec *model.TransferRecord) {
	if uc.events == nil {
		return
	}
	if err := uc.events.Publish(ctx, "stock.transferred", rec); err != nil {
		uc.logger.Warn("failed to publish transfer event", zap.Error(err))
	}
}
