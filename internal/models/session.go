package models

import "time"

// Flow identifies which conversational flow a session belongs to.
type Flow string

const (
	FlowBuy  Flow = "buy"
	FlowSell Flow = "sell"
)

// State represents the current step of a conversational flow.
type State string

const (
	// Buy flow
	StateSelectAsset          State = "select_asset"
	StateAwaitingAmount       State = "awaiting_amount"
	StateAwaitingConfirmation State = "awaiting_confirmation"

	// Sell flow
	StateEnterAmountAndToken   State = "enter_amount_and_token"
	StateSelectPayoutCurrency  State = "select_payout_currency"
	StateConfirmRate           State = "confirm_rate"
	StateSelectBank            State = "select_bank"
	StateAwaitingAccountNumber State = "awaiting_account_number"
	StateAwaitingAccountName   State = "awaiting_account_name"
	StateAwaitingVerifyChoice  State = "awaiting_verify_choice"

	// StateFailed keeps the session alive awaiting a retry decision.
	StateFailed State = "failed"

	// Terminal states; the engine discards the session on reaching them.
	StateCompleted State = "completed"
	StateCancelled State = "cancelled"
)

// Terminal reports whether the state ends the conversation.
func (s State) Terminal() bool {
	return s == StateCompleted || s == StateCancelled
}

// Session stores the state of one in-flight buy or sell attempt for a
// single user. It is ephemeral: created on flow entry, discarded on
// completion or cancellation, expired by the store when abandoned.
type Session struct {
	UserID        int64     `json:"user_id"`
	Flow          Flow      `json:"flow"`
	State         State     `json:"state"`
	Asset         string    `json:"asset,omitempty"`          // Selected crypto symbol
	AssetAmount   float64   `json:"asset_amount,omitempty"`   // Amount denominated in Asset
	FiatCurrency  string    `json:"fiat_currency,omitempty"`  // Payout/spend fiat currency
	FiatAmount    float64   `json:"fiat_amount,omitempty"`    // Amount denominated in FiatCurrency
	Rate          float64   `json:"rate,omitempty"`           // Quoted rate at confirmation time
	Bank          string    `json:"bank,omitempty"`           // Selected payout bank
	AccountNumber string    `json:"account_number,omitempty"` // Payout account number
	AccountName   string    `json:"account_name,omitempty"`   // Payout account name
	Balance       float64   `json:"balance,omitempty"`        // Asset balance snapshot at amount entry
	StartedAt     time.Time `json:"started_at"`
}

// The engine expects exactly one input shape per state. These helpers
// expose the single outstanding expectation without keeping redundant
// boolean flags that could drift apart.

// AwaitingFiatAmount reports whether the session expects a fiat amount text.
func (s *Session) AwaitingFiatAmount() bool {
	return s != nil && s.State == StateAwaitingAmount
}

// AwaitingAccountNumber reports whether the session expects an account number text.
func (s *Session) AwaitingAccountNumber() bool {
	return s != nil && s.State == StateAwaitingAccountNumber
}

// AwaitingAccountName reports whether the session expects an account name text.
func (s *Session) AwaitingAccountName() bool {
	return s != nil && s.State == StateAwaitingAccountName
}

// AwaitingText reports whether the current state consumes free text
// rather than a button selection.
func (s *Session) AwaitingText() bool {
	if s == nil {
		return false
	}
	switch s.State {
	case StateAwaitingAmount, StateEnterAmountAndToken,
		StateAwaitingAccountNumber, StateAwaitingAccountName:
		return true
	}
	return false
}
