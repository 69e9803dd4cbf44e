package models

import (
	"database/sql"
	"time"
)

// UserDB represents a bot user profile in the database, keyed by the
// stable numeric chat identifier.
type UserDB struct {
	UserID    int64          `json:"user_id" db:"user_id"`       // Chat platform user identifier (primary key)
	Username  string         `json:"username" db:"username"`     // Display name
	Wallet    sql.NullString `json:"wallet" db:"wallet"`         // Wallet address, NULL until provisioned
	AuthToken sql.NullString `json:"auth_token" db:"auth_token"` // Ramp API bearer token, NULL means unauthenticated
	CreatedAt time.Time      `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time      `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// HasWallet reports whether a wallet address has been provisioned.
func (u *UserDB) HasWallet() bool {
	return u != nil && u.Wallet.Valid && u.Wallet.String != ""
}

// Token returns the ramp API token, or empty string when the user is
// unauthenticated.
func (u *UserDB) Token() string {
	if u == nil || !u.AuthToken.Valid {
		return ""
	}
	return u.AuthToken.String
}
