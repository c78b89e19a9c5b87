package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Hariksh/Expense-tracker/internal/models"
)

// UserStats computes the user's summary figures. All four aggregates run
// inside one read-only transaction so they reflect the same snapshot.
func (s *SQLiteStore) UserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: true})
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stats := &models.UserStats{}

	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM group_members WHERE user_id = ?",
		userID,
	).Scan(&stats.TotalGroups)
	if err != nil {
		return nil, fmt.Errorf("failed to count groups: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT e.id)
		 FROM expenses e
		 LEFT JOIN expense_splits sp ON sp.expense_id = e.id
		 WHERE e.paid_by = ? OR sp.user_id = ?`,
		userID, userID,
	).Scan(&stats.TotalExpenses)
	if err != nil {
		return nil, fmt.Errorf("failed to count expenses: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE paid_by = ?",
		userID,
	).Scan(&stats.TotalPaid)
	if err != nil {
		return nil, fmt.Errorf("failed to sum paid amounts: %w", err)
	}

	// A user's own share of an expense they paid is already in TotalPaid,
	// so only shares of other payers' expenses count as owed.
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(sp.share_amount), 0)
		 FROM expense_splits sp
		 JOIN expenses e ON e.id = sp.expense_id
		 WHERE sp.user_id = ? AND e.paid_by <> ?`,
		userID, userID,
	).Scan(&stats.TotalOwed)
	if err != nil {
		return nil, fmt.Errorf("failed to sum owed amounts: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return stats, nil
}
