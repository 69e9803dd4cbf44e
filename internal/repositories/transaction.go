package repositories

import (
	"context"
	"strings"

	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/jmoiron/sqlx"
)

// TransactionWriteRepository appends transaction records. The table is
// append-only: there are no update or delete operations here, and none
// should be added.
type TransactionWriteRepository struct {
	db *sqlx.DB
}

func NewTransactionWriteRepository(db *sqlx.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Append inserts one completed transaction record.
func (r *TransactionWriteRepository) Append(ctx context.Context, txn models.TransactionDB) error {
	query := `
		INSERT INTO transactions (
			transaction_id, user_id, direction,
			source_amount, source_currency,
			dest_amount, dest_currency,
			reference, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	args := []any{
		txn.TransactionID, txn.UserID, txn.Direction,
		txn.SourceAmount, txn.SourceCurrency,
		txn.DestAmount, txn.DestCurrency,
		txn.Reference, txn.CreatedAt,
	}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Debugw("transaction append",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"error", err,
	)

	return err
}

// TransactionReadRepository reads transaction history.
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// GetRecentByUserID returns the most recent transactions for a user in
// reverse-chronological order.
func (r *TransactionReadRepository) GetRecentByUserID(ctx context.Context, userID int64, limit int) ([]models.TransactionDB, error) {
	const query = `
		SELECT transaction_id, user_id, direction,
		       source_amount, source_currency,
		       dest_amount, dest_currency,
		       reference, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query, userID, limit)

	logger.Log.Debugw("transaction history read",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID, limit},
		"count", len(txns),
		"error", err,
	)

	return txns, err
}
