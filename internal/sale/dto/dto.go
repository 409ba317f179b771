package dto

// ProcessSaleRequest is the HTTP payload for processing a sale. Products
// and Quantities are correlated positionally.
type ProcessSaleRequest struct {
	TransactionID int64    `json:"transaction_id"`
	PurchaseDate  string   `json:"purchase_date"` // 2006-01-02
	CustomerID    *int64   `json:"customer_id"`
	StaffID       *int64   `json:"staff_id"`
	StoreID       int64    `json:"store_id"`
	Products      []string `json:"products"`
	Quantities    []int    `json:"quantities"`
}

type SaleLine struct {
	Product   string  `json:"product"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"` // market price after promotion
	Promotion float64 `json:"promotion"`  // percentage applied, 0 when none
	LineTotal float64 `json:"line_total"`
}

type SaleReceipt struct {
	TransactionID int64      `json:"transaction_id"`
	TotalPrice    float64    `json:"total_price"`
	Lines         []SaleLine `json:"lines"`
}
