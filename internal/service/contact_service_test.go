package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/Hariksh/Expense-tracker/internal/apperr"
)

func TestAddContact(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	bob := createTestUser(t, store, "Bob", "bob@example.com")

	svc := NewContactService(store)
	added, err := svc.Add(ctx, alice.ID, "bob@example.com")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if added.ID != bob.ID {
		t.Errorf("added contact: expected %s, got %s", bob.ID, added.ID)
	}

	if _, err := svc.Add(ctx, alice.ID, "bob@example.com"); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("duplicate: expected conflict, got %v", err)
	}
	if _, err := svc.Add(ctx, alice.ID, "alice@example.com"); !errors.Is(err, apperr.ErrConflict) {
		t.Errorf("self-add: expected conflict, got %v", err)
	}
	if _, err := svc.Add(ctx, alice.ID, "nobody@example.com"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("unknown email: expected not found, got %v", err)
	}
	if _, err := svc.Add(ctx, alice.ID, ""); !errors.Is(err, apperr.ErrValidation) {
		t.Errorf("empty email: expected validation error, got %v", err)
	}

	// The relation is directed: bob has no contacts yet.
	page, err := svc.List(ctx, bob.ID, "", 1, 20)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if page.Total != 0 {
		t.Errorf("bob: expected 0 contacts, got %d", page.Total)
	}
}

func TestListContactsPagination(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	svc := NewContactService(store)

	for i := 0; i < 5; i++ {
		email := fmt.Sprintf("friend%d@example.com", i)
		createTestUser(t, store, fmt.Sprintf("Friend %d", i), email)
		if _, err := svc.Add(ctx, alice.ID, email); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	page, err := svc.List(ctx, alice.ID, "", 1, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(page.Data) != 2 {
		t.Errorf("page 1: expected 2 contacts, got %d", len(page.Data))
	}
	if page.Total != 5 {
		t.Errorf("total: expected 5, got %d", page.Total)
	}
	if page.TotalPages != 3 {
		t.Errorf("totalPages: expected 3, got %d", page.TotalPages)
	}

	last, err := svc.List(ctx, alice.ID, "", 3, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(last.Data) != 1 {
		t.Errorf("page 3: expected 1 contact, got %d", len(last.Data))
	}

	// Out-of-range page and limit fall back to defaults.
	fallback, err := svc.List(ctx, alice.ID, "", 0, 1000)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if fallback.Page != 1 || fallback.Limit != 20 {
		t.Errorf("fallback page/limit: expected 1/20, got %d/%d", fallback.Page, fallback.Limit)
	}
}

func TestListContactsSearch(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := createTestUser(t, store, "Alice", "alice@example.com")
	createTestUser(t, store, "Bob Marley", "bob@example.com")
	createTestUser(t, store, "Carol", "carol@reggae.org")

	svc := NewContactService(store)
	for _, email := range []string{"bob@example.com", "carol@reggae.org"} {
		if _, err := svc.Add(ctx, alice.ID, email); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	byName, err := svc.List(ctx, alice.ID, "marley", 1, 20)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byName.Data) != 1 || byName.Data[0].Name != "Bob Marley" {
		t.Errorf("name search: expected just Bob Marley, got %d results", len(byName.Data))
	}

	byEmail, err := svc.List(ctx, alice.ID, "reggae", 1, 20)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byEmail.Data) != 1 || byEmail.Data[0].Name != "Carol" {
		t.Errorf("email search: expected just Carol, got %d results", len(byEmail.Data))
	}
}
