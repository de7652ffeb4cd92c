package request

// CreateTransactionRequest is the request body for recording a transaction.
// Date is YYYY-MM-DD. For splits and mergers the price field carries the ratio.
type CreateTransactionRequest struct {
	PortfolioID    string  `json:"portfolioId"`
	InstrumentCode string  `json:"instrumentCode"`
	InvestorID     *string `json:"investorId,omitempty"`
	Type           string  `json:"type"`
	Date           string  `json:"date"`
	Price          float64 `json:"price"`
	Quantity       float64 `json:"quantity"`
	Commission     float64 `json:"commission,omitempty"`
	Tax            float64 `json:"tax,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

// UpdateTransactionRequest is the request body for correcting a transaction.
// The portfolio and instrument of a transaction cannot be changed; delete and
// re-create instead.
type UpdateTransactionRequest struct {
	Type       *string  `json:"type,omitempty"`
	Date       *string  `json:"date,omitempty"`
	Price      *float64 `json:"price,omitempty"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Commission *float64 `json:"commission,omitempty"`
	Tax        *float64 `json:"tax,omitempty"`
	Notes      *string  `json:"notes,omitempty"`
}
