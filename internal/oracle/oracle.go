// Package oracle supplies asset balances for user wallets. The mock
// implementation mirrors the demo balance generator of the original
// service; a real priced source plugs in behind the same interface
// without touching the workflow engine.
package oracle

import (
	"context"
	"math/rand"

	"github.com/abokixyz/ramp-bot/internal/models"
)

// BalanceReader reports asset balances for a wallet address.
type BalanceReader interface {
	BalanceOf(ctx context.Context, wallet, token string) (float64, error)
	Balances(ctx context.Context, wallet string) (map[string]float64, error)
}

// MockOracle generates pseudo-random demo balances. The rand source is
// injectable so tests stay deterministic.
type MockOracle struct {
	rnd *rand.Rand
}

// NewMockOracle creates a MockOracle seeded from the given source. A nil
// source falls back to a fixed seed.
func NewMockOracle(rnd *rand.Rand) *MockOracle {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}
	return &MockOracle{rnd: rnd}
}

// BalanceOf returns a demo balance in [0, 20) for any token.
func (o *MockOracle) BalanceOf(ctx context.Context, wallet, token string) (float64, error) {
	return o.rnd.Float64() * 20, nil
}

// Balances returns demo balances for every supported asset.
func (o *MockOracle) Balances(ctx context.Context, wallet string) (map[string]float64, error) {
	out := make(map[string]float64, len(models.SupportedCrypto))
	for _, token := range models.SupportedCrypto {
		out[token] = o.rnd.Float64() * 100
	}
	return out, nil
}
