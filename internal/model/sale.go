package model

import "time"

// Sale is one persisted purchase transaction. Rows are historical facts:
// they are written exactly once and never updated afterwards.
type Sale struct {
	TransactionID int64     `db:"transaction_id" json:"transaction_id"`
	PurchaseDate  time.Time `db:"purchase_date" json:"purchase_date"`
	TotalPrice    float64   `db:"total_price" json:"total_price"`
	CustomerID    *int64    `db:"customer_id" json:"customer_id"` // Nullable
	StaffID       *int64    `db:"staff_id" json:"staff_id"`       // Nullable
	StoreID       *int64    `db:"store_id" json:"store_id"`       // Nullable
	ProductList   string    `db:"product_list" json:"product_list"`
}
