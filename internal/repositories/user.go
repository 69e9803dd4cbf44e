package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/jmoiron/sqlx"
)

// UserReadRepository reads user profiles.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// GetByUserID returns the profile for a chat user, or nil when the user
// has not interacted before.
func (r *UserReadRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserDB, error) {
	const query = `
		SELECT user_id, username, wallet, auth_token, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, userID)

	logger.Log.Debugw("user read",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// UserWriteRepository writes user profiles.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Upsert creates the profile on first interaction or refreshes the
// display name. An empty username keeps the stored one. A wallet address
// is only ever written into a NULL column: once set it is immutable for
// the profile's lifetime.
func (r *UserWriteRepository) Upsert(ctx context.Context, userID int64, username, wallet string) error {
	query := `
		INSERT INTO users (user_id, username, wallet, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), NOW(), NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET username = COALESCE(NULLIF(EXCLUDED.username, ''), users.username),
		    wallet = COALESCE(users.wallet, EXCLUDED.wallet),
		    updated_at = NOW()
	`
	args := []any{userID, username, wallet}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Debugw("user upsert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// UpdateToken stores a fresh ramp API token for an existing profile.
// Only the token changes; the wallet address is never touched here.
func (r *UserWriteRepository) UpdateToken(ctx context.Context, userID int64, authToken string) error {
	query := `
		UPDATE users
		SET auth_token = $2, updated_at = NOW()
		WHERE user_id = $1
	`
	args := []any{userID, authToken}

	_, err := r.db.ExecContext(ctx, query, args...)

	logger.Log.Debugw("user token update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"error", err,
	)

	return err
}
