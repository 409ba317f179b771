package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	catRepoPkg "github.com/storechain/ops-service/internal/catalog/repository"
	"github.com/storechain/ops-service/internal/database"
	"github.com/storechain/ops-service/internal/transfer"
	"github.com/storechain/ops-service/internal/transfer/dto"
	transferRepoPkg "github.com/storechain/ops-service/internal/transfer/repository"
	"go.uber.org/zap"
)

func setupUseCase(t *testing.T) (transfer.UseCase, *sqlx.DB) {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := database.InitSchema(db); err != nil {
		t.Fatalf("Failed to initialize schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	uc := NewTransferUseCase(db, catRepoPkg.NewPGRepository(), transferRepoPkg.NewPGRepository(), nil, nil, zap.NewNop())
	return uc, db
}

func seedStock(t *testing.T, db *sqlx.DB, storeID, productID int64, name string, quantity int) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO merchandise (
			store_id, product_id, product_name, stock_quantity,
			buy_price, market_price, production_date, expiration_date, supplier_id
		) VALUES (?, ?, ?, ?, 2.00, 4.00, '2024-01-01', NULL, 1)`,
		storeID, productID, name, quantity)
	if err != nil {
		t.Fatalf("Failed to seed stock: %v", err)
	}
}

func transferCount(t *testing.T, db *sqlx.DB) int {
	t.Helper()

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM transfers`); err != nil {
		t.Fatalf("Failed to count transfers: %v", err)
	}
	return count
}

func storeOf(t *testing.T, db *sqlx.DB, productID int64) int64 {
	t.Helper()

	var storeID int64
	if err := db.Get(&storeID, `SELECT store_id FROM merchandise WHERE product_id = ?`, productID); err != nil {
		t.Fatalf("Failed to read merchandise store: %v", err)
	}
	return storeID
}

func TestTransfer(t *testing.T) {
	uc, db := setupUseCase(t)
	seedStock(t, db, 1001, 301, "Organic Milk", 12)

	rec, err := uc.Transfer(context.Background(), &dto.TransferInput{
		SourceStoreID:   1001,
		SourceProductID: 301,
		DestStoreID:     1002,
		DestProductID:   401,
		TransferDate:    time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		StaffID:         207,
	})
	if err != nil {
		t.Fatalf("Transfer failed: %v", err)
	}
	if rec.Store2ID != 1002 || rec.Product2ID != 401 {
		t.Errorf("Unexpected transfer record: %+v", rec)
	}

	if got := storeOf(t, db, 401); got != 1002 {
		t.Errorf("Expected merchandise under store 1002, got %d", got)
	}
	if got := transferCount(t, db); got != 1 {
		t.Errorf("Expected 1 audit row, got %d", got)
	}

	var audit struct {
		Store1ID int64 `db:"store1_id"`
		StaffID  int64 `db:"staff_id"`
	}
	err = db.Get(&audit, `SELECT store1_id, staff_id FROM transfers WHERE product2_id = ?`, 401)
	if err != nil {
		t.Fatalf("Failed to read audit row: %v", err)
	}
	if audit.Store1ID != 1001 || audit.StaffID != 207 {
		t.Errorf("Unexpected audit row: %+v", audit)
	}
}

func TestTransferMissingSource(t *testing.T) {
	uc, db := setupUseCase(t)

	_, err := uc.Transfer(context.Background(), &dto.TransferInput{
		SourceStoreID:   1001,
		SourceProductID: 301,
		DestStoreID:     1002,
		DestProductID:   401,
		TransferDate:    time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		StaffID:         207,
	})
	if !errors.Is(err, transfer.ErrNoSuchStock) {
		t.Fatalf("Expected missing stock error, got %v", err)
	}
	if got := transferCount(t, db); got != 0 {
		t.Errorf("Expected no audit row, got %d", got)
	}
}

func TestTransferDuplicateAuditRollsBackRekey(t *testing.T) {
	uc, db := setupUseCase(t)
	seedStock(t, db, 1001, 301, "Organic Milk", 12)

	_, err := db.Exec(`
		INSERT INTO transfers (store1_id, store2_id, product1_id, product2_id, transfer_date, staff_id)
		VALUES (1001, 1002, 301, 401, '2024-03-01', 205)`)
	if err != nil {
		t.Fatalf("Failed to seed audit row: %v", err)
	}

	_, err = uc.Transfer(context.Background(), &dto.TransferInput{
		SourceStoreID:   1001,
		SourceProductID: 301,
		DestStoreID:     1002,
		DestProductID:   401,
		TransferDate:    time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		StaffID:         207,
	})
	if err == nil {
		t.Fatal("Expected duplicate audit insert to fail")
	}

	// The rekey from the same transaction must be rolled back.
	if got := storeOf(t, db, 301); got != 1001 {
		t.Errorf("Expected merchandise back under store 1001, got %d", got)
	}
	if got := transferCount(t, db); got != 1 {
		t.Errorf("Expected only the seeded audit row, got %d", got)
	}
}
