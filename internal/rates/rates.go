package rates

import (
	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/shopspring/decimal"
)

// Provider computes exchange quotes from a static rate table. Pairs are
// keyed "FROM/TO". Conversion falls back from a direct pair to the
// inverse pair, and finally to triangulation through USD when both legs
// exist.
type Provider struct {
	table map[string]float64
}

// DefaultTable holds the quoted rates for supported pairs.
var DefaultTable = map[string]float64{
	"BTC/USD":  65000,
	"ETH/USD":  3500,
	"USDC/USD": 1,
	"USDT/USD": 1,
	"XRP/USD":  0.6,
	"USD/NGN":  1500,
	"USD/GBP":  0.79,
	"USD/KSH":  131,
	"USD/GCD":  13.5,
}

// NewProvider creates a Provider. A nil table uses DefaultTable.
func NewProvider(table map[string]float64) *Provider {
	if table == nil {
		table = DefaultTable
	}
	return &Provider{table: table}
}

// Rate returns the conversion rate from one currency to another, or 0
// when no conversion path exists.
func (p *Provider) Rate(from, to string) float64 {
	if from == to {
		return 1
	}

	if rate, ok := p.table[from+"/"+to]; ok {
		return rate
	}

	if rate, ok := p.table[to+"/"+from]; ok && rate != 0 {
		return 1 / rate
	}

	// Triangulate through USD.
	fromUSD, ok1 := p.legToUSD(from)
	usdTo, ok2 := p.legFromUSD(to)
	if ok1 && ok2 {
		return fromUSD * usdTo
	}

	return 0
}

// legToUSD returns the FROM->USD rate via direct or inverse pair.
func (p *Provider) legToUSD(from string) (float64, bool) {
	if from == models.USD {
		return 1, true
	}
	if rate, ok := p.table[from+"/"+models.USD]; ok {
		return rate, true
	}
	if rate, ok := p.table[models.USD+"/"+from]; ok && rate != 0 {
		return 1 / rate, true
	}
	return 0, false
}

// legFromUSD returns the USD->TO rate via direct or inverse pair.
func (p *Provider) legFromUSD(to string) (float64, bool) {
	if to == models.USD {
		return 1, true
	}
	if rate, ok := p.table[models.USD+"/"+to]; ok {
		return rate, true
	}
	if rate, ok := p.table[to+"/"+models.USD]; ok && rate != 0 {
		return 1 / rate, true
	}
	return 0, false
}

// Quote converts an amount between currencies. A zero-rate Quote means
// no conversion path exists; callers must reject it rather than trade at
// zero. Destination amounts are rounded to the currency's precision.
func (p *Provider) Quote(amount float64, from, to string) models.Quote {
	return quoteAtRate(amount, from, to, p.Rate(from, to))
}

// quoteAtRate builds a Quote for a known rate.
func quoteAtRate(amount float64, from, to string, rate float64) models.Quote {
	q := models.Quote{
		SourceAmount:   amount,
		SourceCurrency: from,
		DestCurrency:   to,
		Rate:           rate,
	}
	if rate == 0 {
		return q
	}

	dest := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate))
	q.DestAmount, _ = dest.Round(precisionFor(to)).Float64()
	return q
}

// precisionFor returns decimal places for display amounts: 2 for fiat,
// 6 for crypto.
func precisionFor(currency string) int32 {
	if models.IsSupportedFiat(currency) || currency == models.USD ||
		currency == models.GBP || currency == models.KSH || currency == models.GCD {
		return 2
	}
	return 6
}
