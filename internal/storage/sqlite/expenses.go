package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Hariksh/Expense-tracker/internal/models"
)

// CreateExpense persists an expense and all of its splits as a single
// all-or-nothing transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID any
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, title, amount, type, date, paid_by, group_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Title, expense.Amount, expense.Type, expense.Date,
		expense.PaidBy, groupID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertSplits(ctx, tx, expense); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertSplits writes the expense's split rows inside an open transaction.
func insertSplits(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	for i := range expense.Splits {
		split := &expense.Splits[i]
		split.ExpenseID = expense.ID
		if split.ID == "" {
			split.ID = uuid.New().String()
		}

		var userID, memberID any
		if id, ok := split.Participant.UserID(); ok {
			userID = id
		}
		if id, ok := split.Participant.MemberID(); ok {
			memberID = id
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO expense_splits (id, expense_id, user_id, group_member_id, share_amount)
			 VALUES (?, ?, ?, ?, ?)`,
			split.ID, expense.ID, userID, memberID, split.ShareAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}
	return nil
}

// GetExpense retrieves an expense with its splits loaded.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var groupID sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, amount, type, date, paid_by, group_id, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.Title, &expense.Amount, &expense.Type,
		&expense.Date, &expense.PaidBy, &groupID, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil // Expense not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expense.GroupID = groupID.String

	expense.Splits, err = s.listSplits(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	return expense, nil
}

func (s *SQLiteStore) listSplits(ctx context.Context, expenseID string) ([]models.ExpenseSplit, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expense_id, user_id, group_member_id, share_amount
		 FROM expense_splits WHERE expense_id = ?`,
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense splits: %w", err)
	}
	defer rows.Close()

	var splits []models.ExpenseSplit
	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			return nil, err
		}
		splits = append(splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return splits, nil
}

func scanSplit(rows *sql.Rows) (models.ExpenseSplit, error) {
	var split models.ExpenseSplit
	var userID, memberID sql.NullString
	if err := rows.Scan(&split.ID, &split.ExpenseID, &userID, &memberID, &split.ShareAmount); err != nil {
		return split, fmt.Errorf("failed to scan expense split: %w", err)
	}
	if userID.Valid {
		split.Participant = models.UserParticipant(userID.String)
	} else {
		split.Participant = models.MemberParticipant(memberID.String)
	}
	return split, nil
}

// UpdateExpense rewrites the expense row and, when replaceSplits is set,
// swaps the full split set, inside one transaction. An update never leaves
// a mix of old and new splits.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense, replaceSplits bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var groupID any
	if expense.GroupID != "" {
		groupID = expense.GroupID
	}
	res, err := tx.ExecContext(ctx,
		"UPDATE expenses SET title = ?, amount = ?, type = ?, date = ?, group_id = ? WHERE id = ?",
		expense.Title, expense.Amount, expense.Type, expense.Date, groupID, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("expense not found: %s", expense.ID)
	}

	if replaceSplits {
		if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expense.ID); err != nil {
			return fmt.Errorf("failed to delete old splits: %w", err)
		}
		for i := range expense.Splits {
			expense.Splits[i].ID = ""
		}
		if err := insertSplits(ctx, tx, expense); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes the expense and its splits, splits first, inside
// one transaction.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete expense splits: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ListExpensesForUser returns expenses the user paid or appears in a split
// of, newest first.
func (s *SQLiteStore) ListExpensesForUser(ctx context.Context, userID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT DISTINCT e.id, e.title, e.amount, e.type, e.date, e.paid_by, e.group_id, e.created_at
		 FROM expenses e
		 LEFT JOIN expense_splits sp ON sp.expense_id = e.id
		 WHERE e.paid_by = ? OR sp.user_id = ?
		 ORDER BY e.created_at DESC`,
		userID, userID,
	)
}

// ListExpensesForGroup returns a group's expenses, newest first.
func (s *SQLiteStore) ListExpensesForGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	return s.listExpenses(ctx,
		`SELECT id, title, amount, type, date, paid_by, group_id, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC`,
		groupID,
	)
}

func (s *SQLiteStore) listExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var groupID sql.NullString
		if err := rows.Scan(&expense.ID, &expense.Title, &expense.Amount, &expense.Type,
			&expense.Date, &expense.PaidBy, &groupID, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.GroupID = groupID.String
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := s.loadSplits(ctx, expenses); err != nil {
		return nil, err
	}
	return expenses, nil
}

// loadSplits fetches the splits for every listed expense in one IN query and
// attaches them to their parents.
func (s *SQLiteStore) loadSplits(ctx context.Context, expenses []*models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	byID := make(map[string]*models.Expense, len(expenses))
	args := make([]any, len(expenses))
	for i, expense := range expenses {
		byID[expense.ID] = expense
		args[i] = expense.ID
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, expense_id, user_id, group_member_id, share_amount
		 FROM expense_splits WHERE expense_id IN (?`+repeatPlaceholder(len(args)-1)+`)`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to list expense splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			return err
		}
		expense := byID[split.ExpenseID]
		expense.Splits = append(expense.Splits, split)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate expense splits: %w", err)
	}
	return nil
}
