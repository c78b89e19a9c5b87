package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/Hariksh/Expense-tracker/internal/apperr"
	"github.com/Hariksh/Expense-tracker/internal/models"
)

func TestCreateGroupExpenseEqualSplit(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")
	group := createTestGroup(t, store, alice, "Trip", []MemberEntry{
		{UserID: bob.ID},
		{Name: "Charlie"},
	})
	charlie := virtualMember(t, group, "Charlie")

	svc := NewExpenseService(store)
	expense, err := svc.Create(ctx, alice.ID, CreateExpenseInput{
		Title:   "Hotel",
		Amount:  90.00,
		Type:    "travel",
		Date:    "2024-06-01",
		PaidBy:  alice.ID,
		GroupID: group.ID,
		Mode:    models.SplitEqual,
		Participants: []SplitEntry{
			{UserID: alice.ID},
			{UserID: bob.ID},
			{GroupMemberID: charlie.ID},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if expense.ID == "" {
		t.Error("expected non-empty expense ID")
	}
	if len(expense.Splits) != 3 {
		t.Fatalf("splits: expected 3, got %d", len(expense.Splits))
	}
	for i, split := range expense.Splits {
		if split.ShareAmount != 30.00 {
			t.Errorf("split %d: expected 30.00, got %.2f", i, split.ShareAmount)
		}
	}

	// Persisted splits carry the right participant kinds back out.
	loaded, err := svc.Get(ctx, bob.ID, expense.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	var users, virtuals int
	for _, split := range loaded.Splits {
		if _, ok := split.Participant.UserID(); ok {
			users++
		}
		if _, ok := split.Participant.MemberID(); ok {
			virtuals++
		}
	}
	if users != 2 || virtuals != 1 {
		t.Errorf("participants: expected 2 users and 1 virtual, got %d and %d", users, virtuals)
	}
}

func TestCreateEqualSplitSumsExactly(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")
	group := createTestGroup(t, store, alice, "Dinner", []MemberEntry{
		{UserID: bob.ID},
		{Name: "Guest"},
	})
	guest := virtualMember(t, group, "Guest")

	expense, err := NewExpenseService(store).Create(ctx, alice.ID, CreateExpenseInput{
		Title:   "Dinner",
		Amount:  100.00,
		Type:    "food",
		Date:    "2024-06-02",
		PaidBy:  alice.ID,
		GroupID: group.ID,
		Mode:    models.SplitEqual,
		Participants: []SplitEntry{
			{UserID: alice.ID},
			{UserID: bob.ID},
			{GroupMemberID: guest.ID},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var sum float64
	for _, split := range expense.Splits {
		sum += split.ShareAmount
	}
	if math.Abs(sum-100.00) > 1e-9 {
		t.Errorf("splits sum to %.10f, want exactly 100", sum)
	}
	// 100/3 cannot divide evenly; the first participant absorbs the cent.
	if expense.Splits[0].ShareAmount != 33.34 {
		t.Errorf("first share: expected 33.34, got %.2f", expense.Splits[0].ShareAmount)
	}
	if expense.Splits[1].ShareAmount != 33.33 || expense.Splits[2].ShareAmount != 33.33 {
		t.Errorf("remaining shares: expected 33.33 each, got %.2f and %.2f",
			expense.Splits[1].ShareAmount, expense.Splits[2].ShareAmount)
	}
}

func TestCreateCustomSplitUnbalanced(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")
	group := createTestGroup(t, store, alice, "Rent", []MemberEntry{{UserID: bob.ID}})

	_, err := NewExpenseService(store).Create(ctx, alice.ID, CreateExpenseInput{
		Title:   "Rent",
		Amount:  50.00,
		Type:    "housing",
		Date:    "2024-06-03",
		PaidBy:  alice.ID,
		GroupID: group.ID,
		Mode:    models.SplitCustom,
		Participants: []SplitEntry{
			{UserID: alice.ID, ShareAmount: 20.00},
			{UserID: bob.ID, ShareAmount: 25.00},
		},
	})
	if err == nil {
		t.Fatal("expected unbalanced split to be rejected")
	}

	var unbalanced *apperr.UnbalancedError
	if !errors.As(err, &unbalanced) {
		t.Fatalf("expected UnbalancedError, got %v", err)
	}
	if unbalanced.Delta != -5.00 {
		t.Errorf("delta: expected -5.00, got %.2f", unbalanced.Delta)
	}
}

func TestCreateCustomSplitPayerResidual(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")
	group := createTestGroup(t, store, alice, "Groceries", []MemberEntry{{UserID: bob.ID}})

	// The payer is missing from the entries; they pick up the remainder.
	expense, err := NewExpenseService(store).Create(ctx, alice.ID, CreateExpenseInput{
		Title:   "Groceries",
		Amount:  60.00,
		Type:    "food",
		Date:    "2024-06-04",
		PaidBy:  alice.ID,
		GroupID: group.ID,
		Mode:    models.SplitCustom,
		Participants: []SplitEntry{
			{UserID: bob.ID, ShareAmount: 35.00},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(expense.Splits) != 2 {
		t.Fatalf("splits: expected 2, got %d", len(expense.Splits))
	}

	var aliceShare float64
	for _, split := range expense.Splits {
		if id, ok := split.Participant.UserID(); ok && id == alice.ID {
			aliceShare = split.ShareAmount
		}
	}
	if aliceShare != 25.00 {
		t.Errorf("payer residual: expected 25.00, got %.2f", aliceShare)
	}
}

func TestCreatePersonalExpense(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")

	expense, err := NewExpenseService(store).Create(ctx, alice.ID, CreateExpenseInput{
		Title:  "Coffee",
		Amount: 4.50,
		Type:   "food",
		Date:   "2024-06-05",
		PaidBy: alice.ID,
		Mode:   models.SplitEqual,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if len(expense.Splits) != 1 {
		t.Fatalf("splits: expected 1, got %d", len(expense.Splits))
	}
	if expense.Splits[0].ShareAmount != 4.50 {
		t.Errorf("share: expected 4.50, got %.2f", expense.Splits[0].ShareAmount)
	}
	if id, ok := expense.Splits[0].Participant.UserID(); !ok || id != alice.ID {
		t.Errorf("split participant: expected payer %s, got %v", alice.ID, expense.Splits[0].Participant)
	}
}

func TestCreateRejectsNonPayer(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")

	_, err := NewExpenseService(store).Create(ctx, bob.ID, CreateExpenseInput{
		Title:  "Lunch",
		Amount: 10.00,
		Type:   "food",
		Date:   "2024-06-06",
		PaidBy: alice.ID,
		Mode:   models.SplitEqual,
	})
	if !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	svc := NewExpenseService(store)

	valid := CreateExpenseInput{
		Title:  "Lunch",
		Amount: 10.00,
		Type:   "food",
		Date:   "2024-06-06",
		PaidBy: alice.ID,
		Mode:   models.SplitEqual,
	}

	tests := []struct {
		name   string
		mutate func(*CreateExpenseInput)
	}{
		{"missing title", func(in *CreateExpenseInput) { in.Title = "" }},
		{"zero amount", func(in *CreateExpenseInput) { in.Amount = 0 }},
		{"negative amount", func(in *CreateExpenseInput) { in.Amount = -5 }},
		{"missing type", func(in *CreateExpenseInput) { in.Type = "" }},
		{"bad split mode", func(in *CreateExpenseInput) { in.Mode = "thirds" }},
		{"missing date", func(in *CreateExpenseInput) { in.Date = "" }},
		{"garbage date", func(in *CreateExpenseInput) { in.Date = "not-a-date" }},
		{"virtual member without group", func(in *CreateExpenseInput) {
			in.Participants = []SplitEntry{{GroupMemberID: "m1"}}
		}},
		{"personal expense with another user", func(in *CreateExpenseInput) {
			in.Participants = []SplitEntry{{UserID: "someone-else"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			_, err := svc.Create(ctx, alice.ID, in)
			if !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateAmountRequiresNewSplits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")
	group := createTestGroup(t, store, alice, "Trip", []MemberEntry{{UserID: bob.ID}})

	svc := NewExpenseService(store)
	expense, err := svc.Create(ctx, alice.ID, CreateExpenseInput{
		Title:   "Taxi",
		Amount:  40.00,
		Type:    "travel",
		Date:    "2024-06-07",
		PaidBy:  alice.ID,
		GroupID: group.ID,
		Mode:    models.SplitEqual,
		Participants: []SplitEntry{
			{UserID: alice.ID},
			{UserID: bob.ID},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newAmount := 60.00
	_, err = svc.Update(ctx, alice.ID, expense.ID, ExpensePatch{Amount: &newAmount})
	if !errors.Is(err, apperr.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// The stored expense is untouched.
	unchanged, err := svc.Get(ctx, alice.ID, expense.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if unchanged.Amount != 40.00 {
		t.Errorf("amount: expected 40.00 after rejected update, got %.2f", unchanged.Amount)
	}
}

func TestUpdateReplacesSplits(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")
	group := createTestGroup(t, store, alice, "Trip", []MemberEntry{{UserID: bob.ID}})

	svc := NewExpenseService(store)
	expense, err := svc.Create(ctx, alice.ID, CreateExpenseInput{
		Title:   "Taxi",
		Amount:  40.00,
		Type:    "travel",
		Date:    "2024-06-07",
		PaidBy:  alice.ID,
		GroupID: group.ID,
		Mode:    models.SplitEqual,
		Participants: []SplitEntry{
			{UserID: alice.ID},
			{UserID: bob.ID},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newTitle := "Airport taxi"
	newAmount := 60.00
	updated, err := svc.Update(ctx, alice.ID, expense.ID, ExpensePatch{
		Title:  &newTitle,
		Amount: &newAmount,
		Mode:   models.SplitCustom,
		Splits: []SplitEntry{
			{UserID: alice.ID, ShareAmount: 45.00},
			{UserID: bob.ID, ShareAmount: 15.00},
		},
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	if updated.Title != "Airport taxi" {
		t.Errorf("title: expected 'Airport taxi', got %q", updated.Title)
	}
	if updated.Amount != 60.00 {
		t.Errorf("amount: expected 60.00, got %.2f", updated.Amount)
	}
	if len(updated.Splits) != 2 {
		t.Fatalf("splits: expected 2 after replacement, got %d", len(updated.Splits))
	}
	var sum float64
	for _, split := range updated.Splits {
		sum += split.ShareAmount
	}
	if sum != 60.00 {
		t.Errorf("splits sum: expected 60.00, got %.2f", sum)
	}
}

func TestUpdateRejectsNonPayer(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")
	group := createTestGroup(t, store, alice, "Trip", []MemberEntry{{UserID: bob.ID}})

	svc := NewExpenseService(store)
	expense, err := svc.Create(ctx, alice.ID, CreateExpenseInput{
		Title:   "Museum",
		Amount:  20.00,
		Type:    "fun",
		Date:    "2024-06-08",
		PaidBy:  alice.ID,
		GroupID: group.ID,
		Mode:    models.SplitEqual,
		Participants: []SplitEntry{
			{UserID: alice.ID},
			{UserID: bob.ID},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newTitle := "Hijacked"
	if _, err := svc.Update(ctx, bob.ID, expense.ID, ExpensePatch{Title: &newTitle}); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("update: expected forbidden, got %v", err)
	}
	if err := svc.Delete(ctx, bob.ID, expense.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("delete: expected forbidden, got %v", err)
	}
}

func TestDeleteExpense(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")

	svc := NewExpenseService(store)
	expense, err := svc.Create(ctx, alice.ID, CreateExpenseInput{
		Title:  "Coffee",
		Amount: 3.00,
		Type:   "food",
		Date:   "2024-06-09",
		PaidBy: alice.ID,
		Mode:   models.SplitEqual,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := svc.Delete(ctx, alice.ID, expense.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, alice.ID, expense.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestGetVisibility(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")
	carol := createTestUser(t, store, "Carol", "carol@example.com")
	group := createTestGroup(t, store, alice, "Trip", []MemberEntry{{UserID: bob.ID}})

	svc := NewExpenseService(store)
	expense, err := svc.Create(ctx, alice.ID, CreateExpenseInput{
		Title:   "Tickets",
		Amount:  30.00,
		Type:    "travel",
		Date:    "2024-06-10",
		PaidBy:  alice.ID,
		GroupID: group.ID,
		Mode:    models.SplitEqual,
		Participants: []SplitEntry{
			{UserID: alice.ID},
			{UserID: bob.ID},
		},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if _, err := svc.Get(ctx, bob.ID, expense.ID); err != nil {
		t.Errorf("split participant should see the expense: %v", err)
	}
	if _, err := svc.Get(ctx, carol.ID, expense.ID); !errors.Is(err, apperr.ErrForbidden) {
		t.Errorf("outsider: expected forbidden, got %v", err)
	}
	if _, err := svc.Get(ctx, alice.ID, "no-such-expense"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing expense: expected not found, got %v", err)
	}
}

func TestListForUser(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")
	group := createTestGroup(t, store, alice, "Trip", []MemberEntry{{UserID: bob.ID}})

	svc := NewExpenseService(store)
	if _, err := svc.Create(ctx, alice.ID, CreateExpenseInput{
		Title:   "Shared",
		Amount:  20.00,
		Type:    "food",
		Date:    "2024-06-11",
		PaidBy:  alice.ID,
		GroupID: group.ID,
		Mode:    models.SplitEqual,
		Participants: []SplitEntry{
			{UserID: alice.ID},
			{UserID: bob.ID},
		},
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(ctx, alice.ID, CreateExpenseInput{
		Title:  "Solo",
		Amount: 5.00,
		Type:   "food",
		Date:   "2024-06-12",
		PaidBy: alice.ID,
		Mode:   models.SplitEqual,
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	aliceList, err := svc.ListForUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(aliceList) != 2 {
		t.Errorf("alice: expected 2 expenses, got %d", len(aliceList))
	}
	// Every listed expense carries its full split set.
	for _, expense := range aliceList {
		if len(expense.Splits) == 0 {
			t.Fatalf("expense %q listed without splits", expense.Title)
		}
		var sum float64
		for _, split := range expense.Splits {
			sum += split.ShareAmount
		}
		if sum != expense.Amount {
			t.Errorf("expense %q: splits sum to %.2f, amount is %.2f", expense.Title, sum, expense.Amount)
		}
	}

	bobList, err := svc.ListForUser(ctx, bob.ID)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(bobList) != 1 {
		t.Fatalf("bob: expected 1 expense, got %d", len(bobList))
	}
	if bobList[0].Title != "Shared" {
		t.Errorf("bob sees %q, expected 'Shared'", bobList[0].Title)
	}
}
