package dto

// TransferRequest is the HTTP payload for relocating a stock record from
// one store/product identity to another.
type TransferRequest struct {
	SourceStoreID   int64  `json:"source_store_id"`
	SourceProductID int64  `json:"source_product_id"`
	DestStoreID     int64  `json:"dest_store_id"`
	DestProductID   int64  `json:"dest_product_id"`
	TransferDate    string `json:"transfer_date"` // 2006-01-02
	StaffID         int64  `json:"staff_id"`
}
