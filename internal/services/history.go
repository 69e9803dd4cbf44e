package services

import (
	"context"

	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/models"
)

// DefaultHistoryLimit is how many transactions the history view shows.
const DefaultHistoryLimit = 5

// RecentTransactionsReader reads transaction history.
type RecentTransactionsReader interface {
	GetRecentByUserID(ctx context.Context, userID int64, limit int) ([]models.TransactionDB, error)
}

// HistoryService exposes the recent-transactions view.
type HistoryService struct {
	reader RecentTransactionsReader
}

// NewHistoryService creates a new HistoryService.
func NewHistoryService(reader RecentTransactionsReader) *HistoryService {
	return &HistoryService{reader: reader}
}

// Recent returns the user's most recent transactions, newest first.
func (s *HistoryService) Recent(ctx context.Context, userID int64) ([]models.TransactionDB, error) {
	txns, err := s.reader.GetRecentByUserID(ctx, userID, DefaultHistoryLimit)
	if err != nil {
		logger.Log.Errorw("failed to read history", "user_id", userID, "error", err)
		return nil, err
	}
	return txns, nil
}
