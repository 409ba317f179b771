package model

import "time"

// Discount is a promotional reduction for one (store, product) pair,
// active on every date inside [StartDate, EndDate].
type Discount struct {
	DiscountID int64     `db:"discount_id" json:"discount_id"`
	ProductID  int64     `db:"product_id" json:"product_id"`
	StoreID    int64     `db:"store_id" json:"store_id"`
	StartDate  time.Time `db:"discount_start_date" json:"discount_start_date"`
	EndDate    time.Time `db:"discount_end_date" json:"discount_end_date"`
	Promotion  float64   `db:"promotion" json:"promotion"` // percentage, 0-100
}
