package request

// CreateFundRequest is the request body for creating a fund.
type CreateFundRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Currency      string   `json:"currency,omitempty"`
	ManagementFee float64  `json:"managementFee,omitempty"`
	RiskLevel     string   `json:"riskLevel,omitempty"`
	TargetReturn  *float64 `json:"targetReturn,omitempty"`
	InitialValue  float64  `json:"initialValue,omitempty"`
}

// UpdateFundRequest is the request body for updating fund metadata.
// Value columns (initial_value, current_value, total_shares) are never accepted
// here; they are maintained by aggregation and share issuance.
type UpdateFundRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Currency      *string  `json:"currency,omitempty"`
	ManagementFee *float64 `json:"managementFee,omitempty"`
	RiskLevel     *string  `json:"riskLevel,omitempty"`
	TargetReturn  *float64 `json:"targetReturn,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

// CreateFundShareRequest is the request body for issuing fund shares to an
// investor. SharesCount is not accepted; it is derived from the investment
// amount at the prevailing share price.
type CreateFundShareRequest struct {
	FundID            string  `json:"fundId"`
	InvestorID        string  `json:"investorId"`
	InitialInvestment float64 `json:"initialInvestment"`
	EntryDate         string  `json:"entryDate,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// UpdateFundShareRequest is the request body for adjusting a fund share's
// recorded investment. Shares are recomputed at the current share price.
type UpdateFundShareRequest struct {
	InitialInvestment *float64 `json:"initialInvestment,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}
