package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Hariksh/Expense-tracker/internal/models"
)

// CreateGroup persists a group and its initial member slots in one
// transaction.
func (s *SQLiteStore) CreateGroup(ctx context.Context, group *models.Group, members []models.GroupMember) error {
	if group.ID == "" {
		group.ID = uuid.New().String()
	}
	if group.CreatedAt == 0 {
		group.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO groups (id, name, created_by, created_at) VALUES (?, ?, ?, ?)",
		group.ID, group.Name, group.CreatedBy, group.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert group: %w", err)
	}

	inserted, err := insertMembers(ctx, tx, group.ID, members)
	if err != nil {
		return err
	}
	group.Members = inserted

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertMembers adds member slots inside an open transaction, skipping real
// members the group already has.
func insertMembers(ctx context.Context, tx *sql.Tx, groupID string, members []models.GroupMember) ([]models.GroupMember, error) {
	var inserted []models.GroupMember
	for _, m := range members {
		m.GroupID = groupID
		if m.ID == "" {
			m.ID = uuid.New().String()
		}

		var userID, name any
		if m.UserID != "" {
			var exists int
			err := tx.QueryRowContext(ctx,
				"SELECT 1 FROM group_members WHERE group_id = ? AND user_id = ?",
				groupID, m.UserID,
			).Scan(&exists)
			if err == nil {
				continue // already a member, existing row wins
			}
			if err != sql.ErrNoRows {
				return nil, fmt.Errorf("failed to check member existence: %w", err)
			}
			userID = m.UserID
		} else {
			name = m.Name
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO group_members (id, group_id, user_id, name) VALUES (?, ?, ?, ?)",
			m.ID, groupID, userID, name,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert group member: %w", err)
		}
		inserted = append(inserted, m)
	}
	return inserted, nil
}

// GetGroup retrieves a group with its members loaded.
func (s *SQLiteStore) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	group := &models.Group{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, created_at FROM groups WHERE id = ?",
		groupID,
	).Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Group not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	group.Members, err = s.ListGroupMembers(ctx, groupID)
	if err != nil {
		return nil, err
	}
	return group, nil
}

// ListGroupMembers returns the member slots of a group.
func (s *SQLiteStore) ListGroupMembers(ctx context.Context, groupID string) ([]models.GroupMember, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, group_id, user_id, name FROM group_members WHERE group_id = ?",
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list group members: %w", err)
	}
	defer rows.Close()

	var members []models.GroupMember
	for rows.Next() {
		var m models.GroupMember
		var userID, name sql.NullString
		if err := rows.Scan(&m.ID, &m.GroupID, &userID, &name); err != nil {
			return nil, fmt.Errorf("failed to scan group member: %w", err)
		}
		m.UserID = userID.String
		m.Name = name.String
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate group members: %w", err)
	}
	return members, nil
}

// ListGroupsForUser returns groups the user created or belongs to as a real
// member, newest first.
func (s *SQLiteStore) ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT DISTINCT g.id, g.name, g.created_by, g.created_at
		 FROM groups g
		 LEFT JOIN group_members m ON m.group_id = g.id
		 WHERE g.created_by = ? OR m.user_id = ?
		 ORDER BY g.created_at DESC`,
		userID, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	defer rows.Close()

	var groups []*models.Group
	for rows.Next() {
		group := &models.Group{}
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedBy, &group.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate groups: %w", err)
	}

	for _, group := range groups {
		group.Members, err = s.ListGroupMembers(ctx, group.ID)
		if err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// AddGroupMembers inserts member slots in one transaction and returns the
// rows actually inserted.
func (s *SQLiteStore) AddGroupMembers(ctx context.Context, groupID string, members []models.GroupMember) ([]models.GroupMember, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	inserted, err := insertMembers(ctx, tx, groupID, members)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

// DeleteGroup removes the group, its member slots, and every expense and
// split recorded against it, in referential order inside one transaction.
func (s *SQLiteStore) DeleteGroup(ctx context.Context, groupID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM expense_splits WHERE expense_id IN (SELECT id FROM expenses WHERE group_id = ?)",
		groupID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete group expense splits: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM expenses WHERE group_id = ?", groupID); err != nil {
		return fmt.Errorf("failed to delete group expenses: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM group_members WHERE group_id = ?", groupID); err != nil {
		return fmt.Errorf("failed to delete group members: %w", err)
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM groups WHERE id = ?", groupID); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
