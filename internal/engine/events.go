package engine

import "strings"

// EventKind distinguishes the two input shapes the engine accepts.
type EventKind int

const (
	// EventText is a free-text message.
	EventText EventKind = iota
	// EventAction is a discrete button selection.
	EventAction
)

// Event is one user input delivered to the engine. Exactly one of Text
// or Action is meaningful, depending on Kind.
type Event struct {
	Kind   EventKind
	Text   string
	Action string
}

// TextEvent builds a free-text event.
func TextEvent(text string) Event {
	return Event{Kind: EventText, Text: text}
}

// ActionEvent builds a button-selection event.
func ActionEvent(action string) Event {
	return Event{Kind: EventAction, Action: action}
}

// Button actions understood by the engine. Parameterized selections use
// a prefix plus the selected value.
const (
	ActionConfirm            = "CONFIRM"
	ActionCancel             = "CANCEL"
	ActionRetry              = "RETRY"
	ActionMainMenu           = "MAIN_MENU"
	ActionReEnterAccount     = "RE_ENTER_ACCOUNT"
	ActionContinueUnverified = "CONTINUE_UNVERIFIED"

	actionAssetPrefix = "ASSET_"
	actionFiatPrefix  = "FIAT_"
	actionBankPrefix  = "BANK_"
)

// AssetAction builds the selection action for a crypto asset.
func AssetAction(symbol string) string { return actionAssetPrefix + symbol }

// FiatAction builds the selection action for a payout currency.
func FiatAction(currency string) string { return actionFiatPrefix + currency }

// BankAction builds the selection action for a bank.
func BankAction(bank string) string { return actionBankPrefix + bank }

func assetFromAction(action string) (string, bool) {
	return valueFromPrefix(action, actionAssetPrefix)
}

func fiatFromAction(action string) (string, bool) {
	return valueFromPrefix(action, actionFiatPrefix)
}

func bankFromAction(action string) (string, bool) {
	return valueFromPrefix(action, actionBankPrefix)
}

func valueFromPrefix(action, prefix string) (string, bool) {
	if !strings.HasPrefix(action, prefix) {
		return "", false
	}
	return strings.TrimPrefix(action, prefix), true
}
