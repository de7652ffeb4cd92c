package request

// CreatePortfolioRequest is the request body for creating a portfolio.
type CreatePortfolioRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	InvestorID  *string `json:"investorId,omitempty"`
	FundID      *string `json:"fundId,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	RiskLevel   string  `json:"riskLevel,omitempty"`
}

// UpdatePortfolioRequest is the request body for updating a portfolio.
// All fields are optional; only provided fields are updated.
type UpdatePortfolioRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	InvestorID  *string `json:"investorId,omitempty"`
	FundID      *string `json:"fundId,omitempty"`
	Currency    *string `json:"currency,omitempty"`
	RiskLevel   *string `json:"riskLevel,omitempty"`
	IsActive    *bool   `json:"isActive,omitempty"`
}
