package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/redis/go-redis/v9"
)

// SessionRepository stores in-flight conversation sessions in Redis.
// Each save refreshes the idle TTL, so abandoned flows expire on their
// own without a reaper.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository creates a session store with the given idle TTL.
func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

// Get returns the user's active session, or nil when no flow is in
// progress.
func (r *SessionRepository) Get(ctx context.Context, userID int64) (*models.Session, error) {
	val, err := r.client.Get(ctx, sessionKey(userID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logger.Log.Errorw("session get failed", "user_id", userID, "error", err)
		return nil, err
	}

	var session models.Session
	if err := json.Unmarshal([]byte(val), &session); err != nil {
		logger.Log.Errorw("session decode failed", "user_id", userID, "error", err)
		return nil, err
	}

	return &session, nil
}

// Save persists the session and refreshes its idle TTL.
func (r *SessionRepository) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		logger.Log.Errorw("session encode failed", "user_id", session.UserID, "error", err)
		return err
	}

	if err := r.client.Set(ctx, sessionKey(session.UserID), data, r.ttl).Err(); err != nil {
		logger.Log.Errorw("session save failed", "user_id", session.UserID, "error", err)
		return err
	}

	return nil
}

// Delete discards the session on completion, cancellation, or failure
// abandonment.
func (r *SessionRepository) Delete(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, sessionKey(userID)).Err(); err != nil {
		logger.Log.Errorw("session delete failed", "user_id", userID, "error", err)
		return err
	}
	return nil
}
