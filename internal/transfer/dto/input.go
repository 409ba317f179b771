package dto

import "time"

type TransferInput struct {
	SourceStoreID   int64
	SourceProductID int64
	DestStoreID     int64
	DestProductID   int64
	TransferDate    time.Time
	StaffID         int64
}
