package request

// CreateInvestorRequest is the request body for creating an investor.
// InvestedSource picks which ledger feeds the cached total_invested:
// "transactions" or "investments" (the default).
type CreateInvestorRequest struct {
	Name                string  `json:"name"`
	Email               string  `json:"email,omitempty"`
	Phone               string  `json:"phone,omitempty"`
	TaxID               string  `json:"taxId,omitempty"`
	RiskProfile         string  `json:"riskProfile,omitempty"`
	InvestedSource      string  `json:"investedSource,omitempty"`
	MonthlyContribution float64 `json:"monthlyContribution,omitempty"`
	StartDate           string  `json:"startDate,omitempty"`
	Notes               string  `json:"notes,omitempty"`
}

// UpdateInvestorRequest is the request body for updating an investor.
// total_invested is never accepted; it is recomputed from the configured source.
type UpdateInvestorRequest struct {
	Name                *string  `json:"name,omitempty"`
	Email               *string  `json:"email,omitempty"`
	Phone               *string  `json:"phone,omitempty"`
	TaxID               *string  `json:"taxId,omitempty"`
	RiskProfile         *string  `json:"riskProfile,omitempty"`
	InvestedSource      *string  `json:"investedSource,omitempty"`
	MonthlyContribution *float64 `json:"monthlyContribution,omitempty"`
	StartDate           *string  `json:"startDate,omitempty"`
	Notes               *string  `json:"notes,omitempty"`
}

// CreateInvestmentRequest is the request body for recording a cash contribution.
type CreateInvestmentRequest struct {
	InvestorID string  `json:"investorId"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
	Type       string  `json:"type"`
	Notes      string  `json:"notes,omitempty"`
}

// UpdateInvestmentRequest is the request body for correcting a contribution.
type UpdateInvestmentRequest struct {
	Amount *float64 `json:"amount,omitempty"`
	Date   *string  `json:"date,omitempty"`
	Type   *string  `json:"type,omitempty"`
	Notes  *string  `json:"notes,omitempty"`
}

// BulkDeleteInvestmentsRequest is the request body for deleting several
// contributions at once.
type BulkDeleteInvestmentsRequest struct {
	IDs []string `json:"ids"`
}
