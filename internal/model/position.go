package model

import "time"

// Position represents the net holding of one instrument within one portfolio.
// It is wholly derived from the ordered transaction history for the pair and
// is rewritten by the propagation chain; it is never independently authoritative.
type Position struct {
	ID             string    `json:"id"`
	PortfolioID    string    `json:"portfolioId"`
	InstrumentCode string    `json:"instrumentCode"`
	Quantity       float64   `json:"quantity"`
	AverageCost    float64   `json:"averageCost"`
	IsOpen         bool      `json:"isOpen"`
	OpenDate       time.Time `json:"openDate"`
}

// PositionValuation is a position enriched with the latest market price for
// API responses. ProfitLossPct is 0 when TotalCost is 0.
type PositionValuation struct {
	Position
	InstrumentName string  `json:"instrumentName"`
	CurrentPrice   float64 `json:"currentPrice"`
	CurrentValue   float64 `json:"currentValue"`
	TotalCost      float64 `json:"totalCost"`
	ProfitLoss     float64 `json:"profitLoss"`
	ProfitLossPct  float64 `json:"profitLossPct"`
}
