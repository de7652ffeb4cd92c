package model

import "time"

// Source-of-truth values for an investor's total_invested projection.
// The duality is deliberate configuration, not reconciliation: each investor
// names which ledger feeds the cached total.
const (
	InvestedSourceTransactions = "transactions"
	InvestedSourceInvestments  = "investments"
)

// Investment type values.
const (
	InvestmentInitial    = "initial"
	InvestmentAdditional = "additional"
	InvestmentMonthly    = "monthly"
	InvestmentDividend   = "dividend"
	InvestmentBonus      = "bonus"
)

// Investor represents an investor from the database. TotalInvested is a cached
// projection recomputed by the propagation chain from the source named by
// InvestedSource; it is never hand-edited.
type Investor struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email,omitempty"`
	Phone               string     `json:"phone,omitempty"`
	TaxID               string     `json:"taxId,omitempty"`
	RiskProfile         string     `json:"riskProfile"`
	InvestedSource      string     `json:"investedSource"`
	TotalInvested       float64    `json:"totalInvested"`
	MonthlyContribution float64    `json:"monthlyContribution"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	CreatedAt           time.Time  `json:"createdAt,omitempty"`
}

// InvestorSummary is an investor enriched with the read-time value of their
// fund shares. ProfitLossPct is 0 when TotalInvested is 0.
type InvestorSummary struct {
	ID                    string  `json:"id"`
	Name                  string  `json:"name"`
	InvestedSource        string  `json:"investedSource"`
	TotalInvested         float64 `json:"totalInvested"`
	CurrentPortfolioValue float64 `json:"currentPortfolioValue"`
	ProfitLoss            float64 `json:"profitLoss"`
	ProfitLossPct         float64 `json:"profitLossPct"`
}

// Investment represents a cash contribution by an investor, independent of any
// fund or portfolio.
type Investment struct {
	ID         string    `json:"id"`
	InvestorID string    `json:"investorId"`
	Amount     float64   `json:"amount"`
	Date       time.Time `json:"date"`
	Type       string    `json:"type"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}
