package models

import "encoding/json"

// SplitMode selects how an expense amount is divided.
type SplitMode string

const (
	// SplitEqual divides the amount evenly among all participants.
	SplitEqual SplitMode = "equal"

	// SplitCustom uses caller-supplied per-participant shares.
	SplitCustom SplitMode = "custom"
)

// Valid reports whether the mode is one of the known split modes.
func (m SplitMode) Valid() bool { return m == SplitEqual || m == SplitCustom }

// Expense is the unit of shared spending. It is owned by the user who
// fronted the money (PaidBy, always a real user) and mutable only by them.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string `json:"id"`

	// Title is the human-readable name of the expense.
	Title string `json:"title"`

	// Amount is the total expense amount. Always positive.
	Amount float64 `json:"amount"`

	// Type is a free-form category tag (e.g. "food", "travel").
	Type string `json:"type"`

	// Date is the expense date as a Unix timestamp.
	Date int64 `json:"date"`

	// PaidBy is the ID of the user who paid. Never a virtual member.
	PaidBy string `json:"paidBy"`

	// GroupID is the owning group, empty for personal expenses.
	GroupID string `json:"groupId,omitempty"`

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64 `json:"createdAt"`

	// Splits is the full partition of Amount across participants.
	// Invariant: the share amounts sum to Amount, and the set is never
	// empty for a persisted expense.
	Splits []ExpenseSplit `json:"splits"`
}

// ExpenseSplit is one participant's share of an expense.
type ExpenseSplit struct {
	// ID is the unique identifier for the split row (UUID format).
	ID string `json:"id"`

	// ExpenseID is the parent expense.
	ExpenseID string `json:"expenseId"`

	// Participant references the user or virtual member who owes
	// ShareAmount.
	Participant Participant `json:"-"`

	// ShareAmount is this participant's share. Never negative.
	ShareAmount float64 `json:"shareAmount"`
}

// MarshalJSON flattens the participant variant into the wire shape the
// clients expect: userId for real users, groupMemberId for virtual members.
func (s ExpenseSplit) MarshalJSON() ([]byte, error) {
	out := struct {
		ID            string  `json:"id"`
		ExpenseID     string  `json:"expenseId"`
		UserID        string  `json:"userId,omitempty"`
		GroupMemberID string  `json:"groupMemberId,omitempty"`
		ShareAmount   float64 `json:"shareAmount"`
	}{
		ID:          s.ID,
		ExpenseID:   s.ExpenseID,
		ShareAmount: s.ShareAmount,
	}
	if id, ok := s.Participant.UserID(); ok {
		out.UserID = id
	}
	if id, ok := s.Participant.MemberID(); ok {
		out.GroupMemberID = id
	}
	return json.Marshal(out)
}
