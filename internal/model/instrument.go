package model

import "time"

// Instrument represents a tradable security identified by its exchange code.
// Identity is immutable; display fields are refreshed on each ingestion run.
type Instrument struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	IconURL string `json:"iconUrl,omitempty"`
}

// PriceSnapshot represents one append-only price observation for an instrument.
// ID is the SQLite rowid and doubles as the insertion-order tiebreak when two
// snapshots share the same ingestion timestamp.
type PriceSnapshot struct {
	ID             int64     `json:"id"`
	InstrumentCode string    `json:"instrumentCode"`
	Price          float64   `json:"price"`
	ChangePct      float64   `json:"changePct"`
	Volume         *float64  `json:"volume,omitempty"`
	MinPrice       *float64  `json:"minPrice,omitempty"`
	MaxPrice       *float64  `json:"maxPrice,omitempty"`
	ExchangeTime   string    `json:"exchangeTime"` // exchange-reported time label, e.g. "18:05"
	CreatedAt      time.Time `json:"createdAt"`
}

// IsPositive reports whether the snapshot's percent change is non-negative.
func (s PriceSnapshot) IsPositive() bool {
	return s.ChangePct >= 0
}

// InstrumentQuote is an instrument enriched with its latest snapshot for API responses.
type InstrumentQuote struct {
	Instrument
	LatestPrice     float64   `json:"latestPrice"`
	LatestChangePct float64   `json:"latestChangePct"`
	LatestAt        time.Time `json:"latestAt"`
}
