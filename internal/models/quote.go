package models

// Quote is a computed exchange result for a specific amount and currency
// pair at a point in time. It is derived and never persisted.
type Quote struct {
	SourceAmount   float64 `json:"source_amount"`
	SourceCurrency string  `json:"source_currency"`
	DestAmount     float64 `json:"dest_amount"`
	DestCurrency   string  `json:"dest_currency"`
	Rate           float64 `json:"rate"`
}

// Zero reports whether no conversion path existed for the requested pair.
func (q Quote) Zero() bool {
	return q.Rate == 0
}
