package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return s
}

func TestIsUsable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"empty token", "", false},
		{"opaque token", "not-a-jwt", true},
		{
			"valid exp",
			signed(t, jwt.MapClaims{"exp": now.Add(time.Hour).Unix()}),
			true,
		},
		{
			"expired",
			signed(t, jwt.MapClaims{"exp": now.Add(-time.Hour).Unix()}),
			false,
		},
		{
			"no exp claim",
			signed(t, jwt.MapClaims{"sub": "0xabc"}),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUsable(tt.token, now))
		})
	}
}
