package models

// UserStats summarizes a user's full expense history.
type UserStats struct {
	// TotalGroups counts groups where the user is a real member.
	TotalGroups int `json:"totalGroups"`

	// TotalExpenses counts distinct expenses the user paid or appears
	// in a split of.
	TotalExpenses int `json:"totalExpenses"`

	// TotalPaid sums the amounts of expenses the user paid.
	TotalPaid float64 `json:"totalPaid"`

	// TotalOwed sums the user's shares of expenses paid by someone
	// else. The user's own share of an expense they paid is already
	// reflected in TotalPaid and never counted here.
	TotalOwed float64 `json:"totalOwed"`
}
