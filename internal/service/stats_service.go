package service

import (
	"context"

	"github.com/Hariksh/Expense-tracker/internal/apperr"
	"github.com/Hariksh/Expense-tracker/internal/models"
	"github.com/Hariksh/Expense-tracker/internal/storage"
)

// StatsService is the balance aggregator: it turns a user's full expense
// history into summary figures.
type StatsService struct {
	store storage.Store
}

// NewStatsService creates a StatsService with the given storage backend.
func NewStatsService(store storage.Store) *StatsService {
	return &StatsService{store: store}
}

// ComputeUserStats returns the user's group count, expense count, total
// paid and total owed, all read from one consistent snapshot.
func (s *StatsService) ComputeUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	stats, err := s.store.UserStats(ctx, userID)
	if err != nil {
		return nil, apperr.Transactionf("compute user stats: %v", err)
	}
	return stats, nil
}
