package models

// Reference currency used for triangulated conversions.
const USD = "USD"

// Fiat currency codes.
const (
	NGN = "NGN"
	GBP = "GBP"
	KSH = "KSH"
	GCD = "GCD"
)

// Crypto asset symbols.
const (
	USDC = "USDC"
	USDT = "USDT"
	ETH  = "ETH"
	BTC  = "BTC"
	XRP  = "XRP"
)

// SupportedCrypto lists the assets a user can buy or sell.
var SupportedCrypto = []string{USDC, USDT, ETH, BTC}

// SupportedFiat lists the payout currencies for the sell flow.
var SupportedFiat = []string{NGN}

// Banks available for payout selection.
var Banks = []string{
	"Access Bank",
	"Zenith Bank",
	"Guaranty Trust Bank",
	"First Bank",
	"United Bank for Africa",
	"Wema Bank",
	"Sterling Bank",
	"Unity Bank",
	"Kuda Bank",
	"Other",
}

// Flow minimums. Buy amounts are fiat-denominated, sell amounts are
// asset-denominated.
const (
	MinBuyAmountNGN = 100.0
	MinSellAmount   = 0.0001
)

// IsSupportedCrypto reports whether the symbol is a tradable asset.
func IsSupportedCrypto(symbol string) bool {
	for _, c := range SupportedCrypto {
		if c == symbol {
			return true
		}
	}
	return false
}

// IsSupportedFiat reports whether the currency is a payout option.
func IsSupportedFiat(currency string) bool {
	for _, f := range SupportedFiat {
		if f == currency {
			return true
		}
	}
	return false
}
