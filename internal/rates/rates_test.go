package rates

import (
	"testing"

	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestProvider_Rate(t *testing.T) {
	p := NewProvider(nil)

	tests := []struct {
		name string
		from string
		to   string
		want float64
	}{
		{"identity", "USDC", "USDC", 1},
		{"direct", "BTC", "USD", 65000},
		{"inverse", "USD", "BTC", 1.0 / 65000},
		{"crypto to fiat via USD", "USDC", "NGN", 1500},
		{"eth to ngn via USD", "ETH", "NGN", 3500 * 1500},
		{"fiat to crypto via USD", "NGN", "USDC", 1.0 / 1500},
		{"no path", "BTC", "JPY", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, p.Rate(tt.from, tt.to), 1e-12)
		})
	}
}

func TestProvider_Rate_InverseConsistency(t *testing.T) {
	p := NewProvider(nil)

	pairs := [][2]string{
		{"BTC", "USD"},
		{"ETH", "USD"},
		{"USD", "NGN"},
		{"USD", "GBP"},
	}

	for _, pair := range pairs {
		forward := p.Rate(pair[0], pair[1])
		backward := p.Rate(pair[1], pair[0])
		assert.InDelta(t, 1/forward, backward, 1e-12,
			"rate(%s/%s) should be 1/rate(%s/%s)", pair[1], pair[0], pair[0], pair[1])
	}
}

func TestProvider_Rate_TriangulationProduct(t *testing.T) {
	p := NewProvider(nil)

	for _, crypto := range []string{"USDC", "USDT", "ETH", "BTC"} {
		got := p.Rate(crypto, "NGN")
		want := p.Rate(crypto, "USD") * p.Rate("USD", "NGN")
		assert.InDelta(t, want, got, want*1e-9)
	}
}

func TestProvider_Quote(t *testing.T) {
	p := NewProvider(nil)

	t.Run("sell 10 USDC to NGN", func(t *testing.T) {
		q := p.Quote(10, models.USDC, models.NGN)
		assert.Equal(t, 10.0, q.SourceAmount)
		assert.Equal(t, models.USDC, q.SourceCurrency)
		assert.Equal(t, models.NGN, q.DestCurrency)
		assert.Equal(t, 1500.0, q.Rate)
		assert.Equal(t, 15000.00, q.DestAmount)
		assert.False(t, q.Zero())
	})

	t.Run("buy USDC with NGN rounds to 6dp", func(t *testing.T) {
		q := p.Quote(5000, models.NGN, models.USDC)
		assert.InDelta(t, 3.333333, q.DestAmount, 1e-6)
	})

	t.Run("no path yields zero quote", func(t *testing.T) {
		q := p.Quote(10, "BTC", "JPY")
		assert.True(t, q.Zero())
		assert.Equal(t, 0.0, q.DestAmount)
	})
}
