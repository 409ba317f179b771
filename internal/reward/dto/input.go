package dto

import "time"

// RewardInput drives both reward creation and recalculation. The credit is
// computed from sales with purchase dates in [PeriodStart, PeriodEnd).
type RewardInput struct {
	RewardID    int64
	StaffID     int64
	CustomerID  int64
	PeriodStart time.Time
	PeriodEnd   time.Time
}
