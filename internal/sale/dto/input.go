package dto

import "time"

type ProcessSaleInput struct {
	TransactionID int64
	PurchaseDate  time.Time
	CustomerID    *int64
	StaffID       *int64
	StoreID       int64
	Products      []string
	Quantities    []int
}
