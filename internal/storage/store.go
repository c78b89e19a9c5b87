// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/Hariksh/Expense-tracker/internal/models"
)

// Store defines the persistence operations the ledger engine needs.
// The handle is injected into every service explicitly, which keeps the
// engine free of global clients and allows deterministic test doubles.
//
// Conventions:
//   - Getters return (nil, nil) when the entity does not exist; the
//     service layer turns that into a not-found error.
//   - Every multi-row mutation (expense + splits, group cascade) runs
//     inside a single transaction: a failure rolls back all of it.
type Store interface {
	// CreateUser persists a new user. The email must be unique.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by exact email match.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// ListUsersExcept returns all users other than excludeID.
	ListUsersExcept(ctx context.Context, excludeID string) ([]*models.User, error)

	// CreateGroup persists a new group together with its initial member
	// slots as one transaction. IDs and CreatedAt are populated.
	CreateGroup(ctx context.Context, group *models.Group, members []models.GroupMember) error

	// GetGroup retrieves a group with its members loaded.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForUser returns groups the user created or is a real
	// member of, newest first, members loaded.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// ListGroupMembers returns the member slots of a group.
	ListGroupMembers(ctx context.Context, groupID string) ([]models.GroupMember, error)

	// AddGroupMembers inserts member slots into a group as one
	// transaction. Real members already present are skipped (the
	// existing row wins). Returns the rows actually inserted.
	AddGroupMembers(ctx context.Context, groupID string, members []models.GroupMember) ([]models.GroupMember, error)

	// DeleteGroup removes the group, its member slots, and every
	// expense (with splits) recorded against it, as one transaction.
	DeleteGroup(ctx context.Context, groupID string) error

	// CreateContact persists a directed owner -> contact relation.
	CreateContact(ctx context.Context, contact *models.Contact) error

	// HasContact reports whether the relation already exists.
	HasContact(ctx context.Context, ownerID, contactUserID string) (bool, error)

	// ListContacts returns the owner's contact users filtered by an
	// optional name/email substring, paginated, plus the total count
	// before pagination.
	ListContacts(ctx context.Context, ownerID, search string, offset, limit int) ([]*models.User, int, error)

	// CreateExpense persists an expense and its splits as one
	// transaction. IDs and CreatedAt are populated.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense with its splits loaded.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// UpdateExpense rewrites the expense fields and, when replaceSplits
	// is set, replaces the full split set, as one transaction.
	UpdateExpense(ctx context.Context, expense *models.Expense, replaceSplits bool) error

	// DeleteExpense removes the expense and its splits as one
	// transaction, splits first.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpensesForUser returns expenses the user paid or appears in
	// a split of, newest first, splits loaded.
	ListExpensesForUser(ctx context.Context, userID string) ([]*models.Expense, error)

	// ListExpensesForGroup returns a group's expenses, newest first,
	// splits loaded.
	ListExpensesForGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// UserStats computes the user's summary figures against a single
	// consistent snapshot.
	UserStats(ctx context.Context, userID string) (*models.UserStats, error)

	// Close releases any resources held by the store.
	Close() error
}
