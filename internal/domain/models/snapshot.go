package models

import "time"

// StockSnapshot is a single point-in-time read of a ticker's quoted fields.
// Absent fields are nil; the snapshot is discarded after one render.
type StockSnapshot struct {
	Symbol        string    `json:"symbol"`
	Currency      string    `json:"currency,omitempty"`
	Name          *string   `json:"name,omitempty"`
	CurrentPrice  *float64  `json:"current_price,omitempty"`
	PreviousClose *float64  `json:"previous_close,omitempty"`
	MarketCap     *float64  `json:"market_cap,omitempty"`
	Industry      *string   `json:"industry,omitempty"`
	Website       *string   `json:"website,omitempty"`
	Summary       *string   `json:"summary,omitempty"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// HasName reports whether the provider returned a usable display name.
func (s *StockSnapshot) HasName() bool {
	return s != nil && s.Name != nil && *s.Name != ""
}
