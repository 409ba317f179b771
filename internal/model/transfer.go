package model

import "time"

// TransferRecord is the audit row written as the second half of a stock
// transfer. Keyed by the full source/destination composite; never updated
// or deleted once written.
type TransferRecord struct {
	Store1ID     int64     `db:"store1_id" json:"store1_id"`
	Store2ID     int64     `db:"store2_id" json:"store2_id"`
	Product1ID   int64     `db:"product1_id" json:"product1_id"`
	Product2ID   int64     `db:"product2_id" json:"product2_id"`
	TransferDate time.Time `db:"transfer_date" json:"transfer_date"`
	StaffID      int64     `db:"staff_id" json:"staff_id"`
}
