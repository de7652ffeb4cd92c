package model

import "time"

// Fund represents a pooled vehicle aggregating linked portfolios' value on
// behalf of multiple investors. CurrentValue is a cached projection: it is
// recomputed from linked portfolios by the propagation chain, or mutated
// directly by share issuance/redemption when no portfolios are linked.
type Fund struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Currency      string    `json:"currency"`
	ManagementFee float64   `json:"managementFee"`
	RiskLevel     string    `json:"riskLevel"`
	TargetReturn  *float64  `json:"targetReturn,omitempty"`
	InitialValue  float64   `json:"initialValue"`
	CurrentValue  float64   `json:"currentValue"`
	TotalShares   float64   `json:"totalShares"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
}

// ShareValue returns the fund's unit share price, 0 when no shares are outstanding.
func (f Fund) ShareValue() float64 {
	if f.TotalShares == 0 {
		return 0
	}
	return f.CurrentValue / f.TotalShares
}

// TotalReturn returns the fund's total return percentage, 0 when InitialValue is 0.
func (f Fund) TotalReturn() float64 {
	if f.InitialValue == 0 {
		return 0
	}
	return ((f.CurrentValue - f.InitialValue) / f.InitialValue) * 100
}

// FundShare represents an investor's proportional claim on a fund.
// SharesCount is derived at write time from the prevailing share price and is
// never accepted as caller input.
type FundShare struct {
	ID                string    `json:"id"`
	FundID            string    `json:"fundId"`
	InvestorID        string    `json:"investorId"`
	SharesCount       float64   `json:"sharesCount"`
	InitialInvestment float64   `json:"initialInvestment"`
	EntryDate         time.Time `json:"entryDate"`
	Notes             string    `json:"notes,omitempty"`
}

// FundShareValue is a fund share enriched with its read-time valuation.
// CurrentValue is SharesCount times the fund's current share value, 0 when the
// fund has no shares outstanding.
type FundShareValue struct {
	FundShare
	FundName      string  `json:"fundName"`
	InvestorName  string  `json:"investorName"`
	CurrentValue  float64 `json:"currentValue"`
	ProfitLoss    float64 `json:"profitLoss"`
	ProfitLossPct float64 `json:"profitLossPct"`
}
