package model

import "time"

// Portfolio represents a portfolio from the database
type Portfolio struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	InvestorID  *string   `json:"investorId,omitempty"`
	FundID      *string   `json:"fundId,omitempty"`
	Currency    string    `json:"currency"`
	RiskLevel   string    `json:"riskLevel"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// PortfolioFilter for querying portfolios
type PortfolioFilter struct {
	IncludeInactive bool
}

// PortfolioSummary represents the current state of a portfolio.
// All aggregate fields are computed at read time from the portfolio's
// positions and the latest price snapshot per instrument; nothing here
// is stored as a column.
type PortfolioSummary struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Currency      string  `json:"currency"`
	TotalValue    float64 `json:"totalValue"`    // Current market value
	TotalCost     float64 `json:"totalCost"`     // Current cost basis
	ProfitLoss    float64 `json:"profitLoss"`    // TotalValue - TotalCost
	ProfitLossPct float64 `json:"profitLossPct"` // 0 when TotalCost is 0
	IsActive      bool    `json:"isActive"`
}
