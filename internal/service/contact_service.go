package service

import (
	"context"
	"log/slog"

	"github.com/Hariksh/Expense-tracker/internal/apperr"
	"github.com/Hariksh/Expense-tracker/internal/models"
	"github.com/Hariksh/Expense-tracker/internal/storage"
)

// ContactPage is one page of a user's contact list.
type ContactPage struct {
	Data       []*models.User `json:"data"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int            `json:"total"`
	TotalPages int            `json:"totalPages"`
}

// ContactService manages the directed "my contacts" relation.
type ContactService struct {
	store storage.Store
}

// NewContactService creates a ContactService with the given storage backend.
func NewContactService(store storage.Store) *ContactService {
	return &ContactService{store: store}
}

// Add resolves the email to a registered user and records the contact.
// Adding yourself or an existing contact is a conflict; an unknown email is
// not found.
func (s *ContactService) Add(ctx context.Context, ownerID, email string) (*models.User, error) {
	if email == "" {
		return nil, apperr.Validationf("email is required")
	}

	owner, err := s.store.GetUserByID(ctx, ownerID)
	if err != nil {
		return nil, apperr.Transactionf("get owner: %v", err)
	}
	if owner == nil {
		return nil, apperr.NotFoundf("user %s", ownerID)
	}
	if owner.Email == email {
		return nil, apperr.Conflictf("you cannot add yourself")
	}

	target, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Transactionf("get user by email: %v", err)
	}
	if target == nil {
		return nil, apperr.NotFoundf("no user with email %s", email)
	}

	exists, err := s.store.HasContact(ctx, ownerID, target.ID)
	if err != nil {
		return nil, apperr.Transactionf("check contact: %v", err)
	}
	if exists {
		return nil, apperr.Conflictf("user is already in your contacts")
	}

	contact := &models.Contact{OwnerID: ownerID, ContactUserID: target.ID}
	if err := s.store.CreateContact(ctx, contact); err != nil {
		slog.Error("CreateContact failed", "owner", ownerID, "error", err)
		return nil, apperr.Transactionf("create contact: %v", err)
	}

	slog.Info("Contact added", "owner", ownerID, "contact", target.ID)
	return target, nil
}

// List returns one page of the owner's contacts, optionally filtered by a
// name/email substring.
func (s *ContactService) List(ctx context.Context, ownerID, search string, page, limit int) (*ContactPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, total, err := s.store.ListContacts(ctx, ownerID, search, (page-1)*limit, limit)
	if err != nil {
		return nil, apperr.Transactionf("list contacts: %v", err)
	}

	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}
	return &ContactPage{
		Data:       users,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
