package model

// Reward holds a loyalty credit owed to a customer. The amount is always
// recomputed from purchase history, never hand-set.
type Reward struct {
	RewardID        int64   `db:"reward_id" json:"reward_id"`
	CheckAmountOwed float64 `db:"check_amount_owed" json:"check_amount_owed"`
	StaffID         int64   `db:"staff_id" json:"staff_id"`
	CustomerID      int64   `db:"customer_id" json:"customer_id"`
}

// ClubMember is the slice of the membership table the reward gate reads.
type ClubMember struct {
	CustomerID      int64  `db:"customer_id" json:"customer_id"`
	MembershipLevel string `db:"membership_level" json:"membership_level"`
	CustStatus      string `db:"cust_status" json:"cust_status"`
}
