package model

import "time"

// StockRecord is one store's quantity/price row for a single product.
// A record is owned by exactly one store at a time; a transfer changes
// its (store_id, product_id) identity.
type StockRecord struct {
	StoreID        int64      `db:"store_id" json:"store_id"`
	ProductID      int64      `db:"product_id" json:"product_id"`
	ProductName    string     `db:"product_name" json:"product_name"`
	StockQuantity  int        `db:"stock_quantity" json:"stock_quantity"`
	BuyPrice       float64    `db:"buy_price" json:"buy_price"`
	MarketPrice    float64    `db:"market_price" json:"market_price"`
	ProductionDate time.Time  `db:"production_date" json:"production_date"`
	ExpirationDate *time.Time `db:"expiration_date" json:"expiration_date"` // Nullable
	SupplierID     int64      `db:"supplier_id" json:"supplier_id"`
}
