package validation

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	accountNumberRe = regexp.MustCompile(`^\d{10}$`)
	walletAddressRe = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
)

// ParseAmount parses a user-entered amount. Thousands separators are
// tolerated. Returns ok=false for non-numeric input or amounts <= 0.
func ParseAmount(text string) (float64, bool) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// IsValidAccountNumber reports whether the input is exactly 10 digits.
func IsValidAccountNumber(accountNumber string) bool {
	return accountNumberRe.MatchString(strings.TrimSpace(accountNumber))
}

// IsValidAccountName reports whether the input is a plausible account
// holder name.
func IsValidAccountName(name string) bool {
	return len(strings.TrimSpace(name)) >= 2
}

// IsValidWalletAddress reports whether the input looks like a hex wallet
// address (0x followed by 40 hex characters).
func IsValidWalletAddress(address string) bool {
	return walletAddressRe.MatchString(address)
}
