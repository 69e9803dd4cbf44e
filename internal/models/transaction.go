package models

import "time"

// Transaction directions.
const (
	DirectionBuy  = "buy"
	DirectionSell = "sell"
)

// TransactionDB represents a completed ramp transaction. Rows are
// append-only: once written they are never updated or deleted.
type TransactionDB struct {
	TransactionID  string    `json:"transaction_id" db:"transaction_id"`   // Unique identifier
	UserID         int64     `json:"user_id" db:"user_id"`                 // Owner of the transaction
	Direction      string    `json:"direction" db:"direction"`             // "buy" or "sell"
	SourceAmount   float64   `json:"source_amount" db:"source_amount"`     // Amount given
	SourceCurrency string    `json:"source_currency" db:"source_currency"` // Currency given
	DestAmount     float64   `json:"dest_amount" db:"dest_amount"`         // Amount received
	DestCurrency   string    `json:"dest_currency" db:"dest_currency"`     // Currency received
	Reference      string    `json:"reference" db:"reference"`             // External payment/tx reference, may be empty
	CreatedAt      time.Time `json:"created_at" db:"created_at"`           // Creation timestamp
}
