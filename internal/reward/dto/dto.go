package dto

// RewardRequest is the HTTP payload for issuing or recalculating a reward.
type RewardRequest struct {
	RewardID    int64  `json:"reward_id"`
	StaffID     int64  `json:"staff_id"`
	CustomerID  int64  `json:"customer_id"`
	PeriodStart string `json:"period_start"` // 2006-01-02, inclusive
	PeriodEnd   string `json:"period_end"`   // 2006-01-02, exclusive
}

type RewardStatement struct {
	RewardID        int64   `json:"reward_id"`
	CustomerID      int64   `json:"customer_id"`
	CheckAmountOwed float64 `json:"check_amount_owed"`
}
