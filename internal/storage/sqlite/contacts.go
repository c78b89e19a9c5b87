package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Hariksh/Expense-tracker/internal/models"
)

// CreateContact persists a directed owner -> contact relation.
func (s *SQLiteStore) CreateContact(ctx context.Context, contact *models.Contact) error {
	if contact.CreatedAt == 0 {
		contact.CreatedAt = time.Now().Unix()
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO contacts (owner_id, contact_user_id, created_at) VALUES (?, ?, ?)",
		contact.OwnerID, contact.ContactUserID, contact.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// HasContact reports whether the owner already has the user as a contact.
func (s *SQLiteStore) HasContact(ctx context.Context, ownerID, contactUserID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM contacts WHERE owner_id = ? AND contact_user_id = ?",
		ownerID, contactUserID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check contact: %w", err)
	}
	return true, nil
}

// ListContacts returns the owner's contact users matching an optional
// name/email substring, ordered by name, paginated. The second return value
// is the total match count before pagination.
func (s *SQLiteStore) ListContacts(ctx context.Context, ownerID, search string, offset, limit int) ([]*models.User, int, error) {
	where := "c.owner_id = ?"
	args := []any{ownerID}
	if search != "" {
		where += " AND (u.name LIKE ? OR u.email LIKE ?)"
		pattern := "%" + search + "%"
		args = append(args, pattern, pattern)
	}

	var total int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM contacts c JOIN users u ON u.id = c.contact_user_id WHERE "+where,
		args...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count contacts: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.email, u.created_at
		 FROM contacts c JOIN users u ON u.id = c.contact_user_id
		 WHERE `+where+` ORDER BY u.name LIMIT ? OFFSET ?`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan contact: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate contacts: %w", err)
	}
	return users, total, nil
}
