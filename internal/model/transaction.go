package model

import "time"

// Transaction type values. Split and merger carry their ratio in the Price field.
const (
	TransactionBuy      = "buy"
	TransactionSell     = "sell"
	TransactionDividend = "dividend"
	TransactionSplit    = "split"
	TransactionMerger   = "merger"
	TransactionRights   = "rights"
)

// Transaction represents a single portfolio transaction for an instrument.
// Used internally for calculations and data processing.
type Transaction struct {
	ID             string    `json:"id"`
	PortfolioID    string    `json:"portfolioId"`
	InvestorID     *string   `json:"investorId,omitempty"`
	InstrumentCode string    `json:"instrumentCode"`
	Type           string    `json:"type"`
	Date           time.Time `json:"date"`
	Price          float64   `json:"price"`
	Quantity       float64   `json:"quantity"`
	Commission     float64   `json:"commission"`
	Tax            float64   `json:"tax"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// TotalAmount returns the transaction's total cash amount including commission
// and tax: buys cost price*quantity plus fees, sells yield price*quantity minus fees.
func (t Transaction) TotalAmount() float64 {
	amount := t.Price * t.Quantity
	if t.Type == TransactionBuy {
		return amount + t.Commission + t.Tax
	}
	return amount - t.Commission - t.Tax
}

// TransactionResponse represents a transaction with enriched data for API responses.
type TransactionResponse struct {
	Transaction
	InstrumentName string `json:"instrumentName"`
	PortfolioName  string `json:"portfolioName"`
}
