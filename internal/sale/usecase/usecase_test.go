package usecase

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/storechain/ops-service/internal/catalog"
	catRepoPkg "github.com/storechain/ops-service/internal/catalog/repository"
	"github.com/storechain/ops-service/internal/database"
	discRepoPkg "github.com/storechain/ops-service/internal/discount/repository"
	"github.com/storechain/ops-service/internal/sale"
	"github.com/storechain/ops-service/internal/sale/dto"
	saleRepoPkg "github.com/storechain/ops-service/internal/sale/repository"
	"go.uber.org/zap"
)

func setupUseCase(t *testing.T) (sale.UseCase, *sqlx.DB) {
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

	uc := NewSaleUseCase(db, catRepoPkg.NewPGRepository(), discRepoPkg.NewPGRepository(), saleRepoPkg.NewPGRepository(), nil, nil, zap.NewNop())
	return uc, db
}

func seedStock(t *testing.T, db *sqlx.DB, storeID, productID int64, name string, quantity int, marketPrice float64) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO merchandise (
			store_id, product_id, product_name, stock_quantity,
			buy_price, market_price, production_date, expiration_date, supplier_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, NULL, 1)`,
		storeID, productID, name, quantity, marketPrice/2, marketPrice, "2024-01-01")
	if err != nil {
		t.Fatalf("Failed to seed stock: %v", err)
	}
}

func seedDiscount(t *testing.T, db *sqlx.DB, discountID, productID, storeID int64, promotion float64, start, end string) {
	t.Helper()

	_, err := db.Exec(`
		INSERT INTO discounts (discount_id, product_id, store_id, discount_start_date, discount_end_date, promotion)
		VALUES (?, ?, ?, ?, ?, ?)`,
		discountID, productID, storeID, start, end, promotion)
	if err != nil {
		t.Fatalf("Failed to seed discount: %v", err)
	}
}

func stockQuantity(t *testing.T, db *sqlx.DB, storeID, productID int64) int {
	t.Helper()

	var quantity int
	err := db.Get(&quantity, `SELECT stock_quantity FROM merchandise WHERE store_id = ? AND product_id = ?`, storeID, productID)
	if err != nil {
		t.Fatalf("Failed to read stock quantity: %v", err)
	}
	return quantity
}

func saleCount(t *testing.T, db *sqlx.DB) int {
	t.Helper()

	var count int
	if err := db.Get(&count, `SELECT COUNT(*) FROM transactions`); err != nil {
		t.Fatalf("Failed to count sales: %v", err)
	}
	return count
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProcessSaleWithDiscount(t *testing.T) {
	uc, db := setupUseCase(t)

	seedStock(t, db, 1002, 306, "Milk", 20, 4.00)
	seedStock(t, db, 1002, 307, "Bread", 15, 2.50)
	seedDiscount(t, db, 601, 306, 1002, 10.0, "2024-04-10", "2024-05-10")

	customerID := int64(503)
	staffID := int64(207)
	receipt, err := uc.ProcessSale(context.Background(), &dto.ProcessSaleInput{
		TransactionID: 9001,
		PurchaseDate:  time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		CustomerID:    &customerID,
		StaffID:       &staffID,
		StoreID:       1002,
		Products:      []string{"Milk", "Bread"},
		Quantities:    []int{2, 1},
	})
	if err != nil {
		t.Fatalf("ProcessSale failed: %v", err)
	}

	// 2 x 4.00 at 10% off + 1 x 2.50 full price
	want := 2*4.00*0.90 + 2.50
	if !almostEqual(receipt.TotalPrice, want) {
		t.Errorf("Expected total %v, got %v", want, receipt.TotalPrice)
	}
	if len(receipt.Lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(receipt.Lines))
	}
	if receipt.Lines[0].Promotion != 10.0 {
		t.Errorf("Expected 10%% promotion on first line, got %v", receipt.Lines[0].Promotion)
	}
	if receipt.Lines[1].Promotion != 0 {
		t.Errorf("Expected no promotion on second line, got %v", receipt.Lines[1].Promotion)
	}

	if got := stockQuantity(t, db, 1002, 306); got != 18 {
		t.Errorf("Expected milk stock 18, got %d", got)
	}
	if got := stockQuantity(t, db, 1002, 307); got != 14 {
		t.Errorf("Expected bread stock 14, got %d", got)
	}

	var persisted struct {
		TotalPrice  float64 `db:"total_price"`
		ProductList string  `db:"product_list"`
	}
	err = db.Get(&persisted, `SELECT total_price, product_list FROM transactions WHERE transaction_id = ?`, 9001)
	if err != nil {
		t.Fatalf("Failed to read persisted sale: %v", err)
	}
	if !almostEqual(persisted.TotalPrice, want) {
		t.Errorf("Expected persisted total %v, got %v", want, persisted.TotalPrice)
	}
	if persisted.ProductList != "Milk,Bread" {
		t.Errorf("Expected product list %q, got %q", "Milk,Bread", persisted.ProductList)
	}
}

func TestProcessSaleCaseInsensitiveName(t *testing.T) {
	uc, db := setupUseCase(t)
	seedStock(t, db, 1002, 306, "Milk", 20, 4.00)

	receipt, err := uc.ProcessSale(context.Background(), &dto.ProcessSaleInput{
		TransactionID: 9002,
		PurchaseDate:  time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		StoreID:       1002,
		Products:      []string{"mIlK"},
		Quantities:    []int{3},
	})
	if err != nil {
		t.Fatalf("ProcessSale failed: %v", err)
	}
	if !almostEqual(receipt.TotalPrice, 12.00) {
		t.Errorf("Expected total 12.00, got %v", receipt.TotalPrice)
	}
	if got := stockQuantity(t, db, 1002, 306); got != 17 {
		t.Errorf("Expected stock 17, got %d", got)
	}
}

func TestProcessSaleInsufficientStockRollsBack(t *testing.T) {
	uc, db := setupUseCase(t)
	seedStock(t, db, 1002, 306, "Milk", 20, 4.00)
	seedStock(t, db, 1002, 307, "Bread", 2, 2.50)

	_, err := uc.ProcessSale(context.Background(), &dto.ProcessSaleInput{
		TransactionID: 9003,
		PurchaseDate:  time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		StoreID:       1002,
		Products:      []string{"Milk", "Bread"},
		Quantities:    []int{5, 3},
	})
	if !errors.Is(err, catalog.ErrInsufficientStock) {
		t.Fatalf("Expected insufficient stock error, got %v", err)
	}

	// The milk decrement from the first line must not survive.
	if got := stockQuantity(t, db, 1002, 306); got != 20 {
		t.Errorf("Expected milk stock unchanged at 20, got %d", got)
	}
	if got := stockQuantity(t, db, 1002, 307); got != 2 {
		t.Errorf("Expected bread stock unchanged at 2, got %d", got)
	}
	if got := saleCount(t, db); got != 0 {
		t.Errorf("Expected no sale row, got %d", got)
	}
}

func TestProcessSaleUnknownProductFailsWholeSale(t *testing.T) {
	uc, db := setupUseCase(t)
	seedStock(t, db, 1002, 306, "Milk", 20, 4.00)

	_, err := uc.ProcessSale(context.Background(), &dto.ProcessSaleInput{
		TransactionID: 9004,
		PurchaseDate:  time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC),
		StoreID:       1002,
		Products:      []string{"Milk", "Caviar"},
		Quantities:    []int{1, 1},
	})
	if !errors.Is(err, catalog.ErrUnknownProduct) {
		t.Fatalf("Expected unknown product error, got %v", err)
	}

	if got := stockQuantity(t, db, 1002, 306); got != 20 {
		t.Errorf("Expected milk stock unchanged at 20, got %d", got)
	}
	if got := saleCount(t, db); got != 0 {
		t.Errorf("Expected no sale row, got %d", got)
	}
}

func TestProcessSaleValidation(t *testing.T) {
	uc, _ := setupUseCase(t)
	purchaseDate := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name       string
		products   []string
		quantities []int
	}{
		{"no products", nil, nil},
		{"length mismatch", []string{"Milk", "Bread"}, []int{1}},
		{"zero quantity", []string{"Milk"}, []int{0}},
		{"negative quantity", []string{"Milk"}, []int{-2}},
		{"blank name", []string{"  "}, []int{1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.ProcessSale(context.Background(), &dto.ProcessSaleInput{
				TransactionID: 9005,
				PurchaseDate:  purchaseDate,
				StoreID:       1002,
				Products:      tc.products,
				Quantities:    tc.quantities,
			})
			if !errors.Is(err, sale.ErrInvalidInput) {
				t.Errorf("Expected validation error, got %v", err)
			}
		})
	}
}
