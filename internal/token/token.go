// Package token inspects bearer tokens issued by the ramp API. The bot
// never mints tokens; it only needs to know whether a stored token is
// still worth presenting before falling back to re-authentication.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IsUsable reports whether the stored token looks usable: non-empty and,
// when it carries an exp claim, not expired. The signature is not
// checked here; the ramp API is the verifier, this is only a cheap local
// filter to avoid calls that are guaranteed to be rejected.
func IsUsable(tokenString string, now time.Time) bool {
	if tokenString == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		// Opaque non-JWT tokens are passed through as-is.
		return true
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}

	return now.Before(exp.Time)
}
