// Package service implements the ledger engine operations on top of an
// injected storage.Store: expense recording, group membership resolution,
// contacts, authentication, and balance aggregation.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Hariksh/Expense-tracker/internal/apperr"
	"github.com/Hariksh/Expense-tracker/internal/ledger"
	"github.com/Hariksh/Expense-tracker/internal/metrics"
	"github.com/Hariksh/Expense-tracker/internal/models"
	"github.com/Hariksh/Expense-tracker/internal/storage"
)

// dateFormats are the accepted expense date layouts.
var dateFormats = []string{"2006-01-02", time.RFC3339}

// SplitEntry is one requested split target. Exactly one of UserID and
// GroupMemberID must be set. ShareAmount is only read in custom mode.
type SplitEntry struct {
	UserID        string  `json:"userId,omitempty"`
	GroupMemberID string  `json:"groupMemberId,omitempty"`
	ShareAmount   float64 `json:"shareAmount,omitempty"`
}

// CreateExpenseInput carries everything needed to record an expense.
type CreateExpenseInput struct {
	Title        string           `json:"title"`
	Amount       float64          `json:"amount"`
	Type         string           `json:"type"`
	Date         string           `json:"date"`
	PaidBy       string           `json:"paidBy"`
	GroupID      string           `json:"groupId,omitempty"`
	Mode         models.SplitMode `json:"splitType"`
	Participants []SplitEntry     `json:"splitWith"`
}

// ExpensePatch is a partial update. Nil fields are left unchanged. When
// Splits is non-nil the old split set is fully replaced; Mode then selects
// how the new set is computed.
type ExpensePatch struct {
	Title  *string          `json:"title,omitempty"`
	Amount *float64         `json:"amount,omitempty"`
	Type   *string          `json:"type,omitempty"`
	Date   *string          `json:"date,omitempty"`
	Mode   models.SplitMode `json:"splitType,omitempty"`
	Splits []SplitEntry     `json:"splits,omitempty"`
}

// ExpenseService is the expense record manager: it creates, updates and
// deletes expenses together with their atomic split sets.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates an ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// Create validates the input, computes the splits, and persists expense and
// splits as one unit. Only the payer may record that they paid.
func (s *ExpenseService) Create(ctx context.Context, requesterID string, in CreateExpenseInput) (*models.Expense, error) {
	if in.Title == "" {
		return nil, apperr.Validationf("title is required")
	}
	if in.Amount <= 0 {
		return nil, apperr.Validationf("amount must be positive")
	}
	if in.Type == "" {
		return nil, apperr.Validationf("type is required")
	}
	if !in.Mode.Valid() {
		return nil, apperr.Validationf("split type must be %q or %q", models.SplitEqual, models.SplitCustom)
	}
	date, err := parseDate(in.Date)
	if err != nil {
		return nil, err
	}
	if in.PaidBy != requesterID {
		return nil, apperr.Forbiddenf("only the payer may record this expense")
	}

	shares, err := s.computeShares(ctx, requesterID, in.Amount, in.GroupID, in.Mode, in.Participants)
	if err != nil {
		if apperr.IsUnbalanced(err) {
			metrics.SplitsRejected.Inc()
		}
		return nil, err
	}

	expense := &models.Expense{
		Title:   in.Title,
		Amount:  in.Amount,
		Type:    in.Type,
		Date:    date,
		PaidBy:  in.PaidBy,
		GroupID: in.GroupID,
		Splits:  sharesToSplits(shares),
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "payer", in.PaidBy, "error", err)
		return nil, apperr.Transactionf("create expense: %v", err)
	}

	metrics.ExpensesCreated.Inc()
	slog.Info("Expense recorded",
		"expense_id", expense.ID,
		"payer", expense.PaidBy,
		"amount", expense.Amount,
		"splits", len(expense.Splits),
	)
	return expense, nil
}

// Update applies a partial patch. Only the original payer may update. A new
// split set replaces the old one inside the same transaction as the field
// update; changing the amount without supplying splits is rejected because
// the stored splits would no longer sum to the amount.
func (s *ExpenseService) Update(ctx context.Context, requesterID, expenseID string, patch ExpensePatch) (*models.Expense, error) {
	expense, err := s.load(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.PaidBy != requesterID {
		return nil, apperr.Forbiddenf("only the payer may update this expense")
	}

	if patch.Title != nil {
		if *patch.Title == "" {
			return nil, apperr.Validationf("title cannot be empty")
		}
		expense.Title = *patch.Title
	}
	if patch.Type != nil {
		expense.Type = *patch.Type
	}
	if patch.Date != nil {
		date, err := parseDate(*patch.Date)
		if err != nil {
			return nil, err
		}
		expense.Date = date
	}
	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, apperr.Validationf("amount must be positive")
		}
		if *patch.Amount != expense.Amount && patch.Splits == nil {
			return nil, apperr.Validationf("changing the amount requires a new split set")
		}
		expense.Amount = *patch.Amount
	}

	replaceSplits := patch.Splits != nil
	if replaceSplits {
		mode := patch.Mode
		if mode == "" {
			mode = models.SplitCustom
		}
		if !mode.Valid() {
			return nil, apperr.Validationf("split type must be %q or %q", models.SplitEqual, models.SplitCustom)
		}
		shares, err := s.computeShares(ctx, requesterID, expense.Amount, expense.GroupID, mode, patch.Splits)
		if err != nil {
			if apperr.IsUnbalanced(err) {
				metrics.SplitsRejected.Inc()
			}
			return nil, err
		}
		expense.Splits = sharesToSplits(shares)
	}

	if err := s.store.UpdateExpense(ctx, expense, replaceSplits); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expenseID, "error", err)
		return nil, apperr.Transactionf("update expense: %v", err)
	}

	slog.Info("Expense updated", "expense_id", expense.ID, "splits_replaced", replaceSplits)
	return s.load(ctx, expenseID)
}

// Delete removes the expense and its splits. Only the original payer may
// delete.
func (s *ExpenseService) Delete(ctx context.Context, requesterID, expenseID string) error {
	expense, err := s.load(ctx, expenseID)
	if err != nil {
		return err
	}
	if expense.PaidBy != requesterID {
		return apperr.Forbiddenf("only the payer may delete this expense")
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return apperr.Transactionf("delete expense: %v", err)
	}

	slog.Info("Expense deleted", "expense_id", expenseID)
	return nil
}

// Get retrieves an expense. It is visible to its payer and to any user
// appearing in its splits; all others are refused.
func (s *ExpenseService) Get(ctx context.Context, requesterID, expenseID string) (*models.Expense, error) {
	expense, err := s.load(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if !visibleTo(expense, requesterID) {
		return nil, apperr.Forbiddenf("you are not a participant of this expense")
	}
	return expense, nil
}

// ListForUser returns every expense the user paid or owes a share of,
// newest first.
func (s *ExpenseService) ListForUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpensesForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Transactionf("list expenses: %v", err)
	}
	return expenses, nil
}

func (s *ExpenseService) load(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, apperr.Transactionf("get expense: %v", err)
	}
	if expense == nil {
		return nil, apperr.NotFoundf("expense %s", expenseID)
	}
	return expense, nil
}

func visibleTo(expense *models.Expense, userID string) bool {
	if expense.PaidBy == userID {
		return true
	}
	for _, split := range expense.Splits {
		if id, ok := split.Participant.UserID(); ok && id == userID {
			return true
		}
	}
	return false
}

// computeShares resolves the requested entries to participants and runs the
// split calculator. For group expenses every entry must resolve inside the
// group; a personal expense has exactly one participant, the payer.
func (s *ExpenseService) computeShares(ctx context.Context, payerID string, amount float64, groupID string, mode models.SplitMode, entries []SplitEntry) ([]ledger.Share, error) {
	payer := models.UserParticipant(payerID)

	if groupID == "" {
		for _, e := range entries {
			if e.GroupMemberID != "" {
				return nil, apperr.Validationf("virtual members require a group")
			}
			if e.UserID != "" && e.UserID != payerID {
				return nil, apperr.Validationf("a personal expense cannot be split with other users")
			}
		}
		return ledger.PersonalShare(amount, payer)
	}

	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, apperr.Transactionf("get group: %v", err)
	}
	if group == nil {
		return nil, apperr.NotFoundf("group %s", groupID)
	}
	if !isGroupParticipant(group, payerID) {
		return nil, apperr.Forbiddenf("payer is not a member of this group")
	}

	resolve := newGroupResolver(group)
	switch mode {
	case models.SplitEqual:
		participants := make([]models.Participant, 0, len(entries))
		for _, e := range entries {
			p, err := resolve(e)
			if err != nil {
				return nil, err
			}
			participants = append(participants, p)
		}
		return ledger.EqualShares(amount, participants, payer)
	default: // custom
		shares := make([]ledger.Share, 0, len(entries))
		for _, e := range entries {
			p, err := resolve(e)
			if err != nil {
				return nil, err
			}
			shares = append(shares, ledger.Share{Participant: p, Amount: e.ShareAmount})
		}
		return ledger.CustomShares(amount, shares, payer)
	}
}

// newGroupResolver returns a resolver mapping a split entry to a canonical
// participant inside the group.
func newGroupResolver(group *models.Group) func(SplitEntry) (models.Participant, error) {
	users := make(map[string]bool, len(group.Members))
	virtual := make(map[string]bool, len(group.Members))
	for _, m := range group.Members {
		if m.IsVirtual() {
			virtual[m.ID] = true
		} else {
			users[m.UserID] = true
		}
	}
	users[group.CreatedBy] = true

	return func(e SplitEntry) (models.Participant, error) {
		switch {
		case e.UserID != "" && e.GroupMemberID != "":
			return models.Participant{}, apperr.Validationf("split entry cannot name both a user and a group member")
		case e.UserID != "":
			if !users[e.UserID] {
				return models.Participant{}, apperr.Validationf("user %s is not a member of the group", e.UserID)
			}
			return models.UserParticipant(e.UserID), nil
		case e.GroupMemberID != "":
			if !virtual[e.GroupMemberID] {
				return models.Participant{}, apperr.Validationf("group member %s is not a virtual member of the group", e.GroupMemberID)
			}
			return models.MemberParticipant(e.GroupMemberID), nil
		default:
			return models.Participant{}, apperr.Validationf("split entry must name a user or a group member")
		}
	}
}

func isGroupParticipant(group *models.Group, userID string) bool {
	if group.CreatedBy == userID {
		return true
	}
	for _, m := range group.Members {
		if m.UserID == userID {
			return true
		}
	}
	return false
}

func sharesToSplits(shares []ledger.Share) []models.ExpenseSplit {
	splits := make([]models.ExpenseSplit, len(shares))
	for i, share := range shares {
		splits[i] = models.ExpenseSplit{
			Participant: share.Participant,
			ShareAmount: share.Amount,
		}
	}
	return splits
}

func parseDate(value string) (int64, error) {
	if value == "" {
		return 0, apperr.Validationf("date is required")
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Unix(), nil
		}
	}
	return 0, apperr.Validationf("date %q is not a valid calendar date", value)
}
