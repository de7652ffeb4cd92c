package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

// InstrumentBuilder provides a fluent interface for creating test instruments.
//
// Example usage:
//
//	instrument := testutil.NewInstrument().WithCode("THYAO").Build(t, db)
type InstrumentBuilder struct {
	Code    string
	Name    string
	IconURL string
}

// NewInstrument creates an InstrumentBuilder with sensible defaults.
func NewInstrument() *InstrumentBuilder {
	return &InstrumentBuilder{
		Code: MakeInstrumentCode("TST"),
		Name: "Test Instrument",
	}
}

// WithCode sets a custom instrument code.
func (b *InstrumentBuilder) WithCode(code string) *InstrumentBuilder {
	b.Code = code
	return b
}

// WithName sets a custom display name.
func (b *InstrumentBuilder) WithName(name string) *InstrumentBuilder {
	b.Name = name
	return b
}

// Build creates the instrument in the database and returns it.
func (b *InstrumentBuilder) Build(t *testing.T, db *sql.DB) model.Instrument {
	t.Helper()

	query := `INSERT INTO instrument (code, name, icon_url) VALUES (?, ?, ?)`

	_, err := db.Exec(query, b.Code, b.Name, b.IconURL)
	if err != nil {
		t.Fatalf("Failed to create test instrument: %v", err)
	}

	return model.Instrument{
		Code:    b.Code,
		Name:    b.Name,
		IconURL: b.IconURL,
	}
}

// SnapshotBuilder provides a fluent interface for creating test price snapshots.
type SnapshotBuilder struct {
	InstrumentCode string
	Price          float64
	ChangePct      float64
	ExchangeTime   string
	CreatedAt      time.Time
}

// NewSnapshot creates a SnapshotBuilder for the given instrument code.
func NewSnapshot(instrumentCode string) *SnapshotBuilder {
	return &SnapshotBuilder{
		InstrumentCode: instrumentCode,
		Price:          100,
		ChangePct:      0.5,
		ExchangeTime:   "18:05",
		CreatedAt:      time.Now().UTC(),
	}
}

// WithPrice sets a custom price.
func (b *SnapshotBuilder) WithPrice(price float64) *SnapshotBuilder {
	b.Price = price
	return b
}

// WithChangePct sets a custom percent change.
func (b *SnapshotBuilder) WithChangePct(pct float64) *SnapshotBuilder {
	b.ChangePct = pct
	return b
}

// WithCreatedAt sets a custom observation timestamp.
func (b *SnapshotBuilder) WithCreatedAt(at time.Time) *SnapshotBuilder {
	b.CreatedAt = at
	return b
}

// Build creates the snapshot in the database and returns it.
func (b *SnapshotBuilder) Build(t *testing.T, db *sql.DB) model.PriceSnapshot {
	t.Helper()

	query := `
		INSERT INTO price_snapshot (instrument_code, price, change_pct, exchange_time, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := db.Exec(query, b.InstrumentCode, b.Price, b.ChangePct, b.ExchangeTime, b.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		t.Fatalf("Failed to create test snapshot: %v", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("Failed to read snapshot id: %v", err)
	}

	return model.PriceSnapshot{
		ID:             id,
		InstrumentCode: b.InstrumentCode,
		Price:          b.Price,
		ChangePct:      b.ChangePct,
		ExchangeTime:   b.ExchangeTime,
		CreatedAt:      b.CreatedAt,
	}
}

// InvestorBuilder provides a fluent interface for creating test investors.
type InvestorBuilder struct {
	ID             string
	Name           string
	RiskProfile    string
	InvestedSource string
	TotalInvested  float64
}

// NewInvestor creates an InvestorBuilder with sensible defaults.
func NewInvestor() *InvestorBuilder {
	return &InvestorBuilder{
		ID:             MakeID(),
		Name:           MakeName("Test Investor"),
		RiskProfile:    "medium",
		InvestedSource: model.InvestedSourceInvestments,
	}
}

// WithName sets a custom name.
func (b *InvestorBuilder) WithName(name string) *InvestorBuilder {
	b.Name = name
	return b
}

// WithInvestedSource sets the source feeding the total_invested projection.
func (b *InvestorBuilder) WithInvestedSource(source string) *InvestorBuilder {
	b.InvestedSource = source
	return b
}

// WithTotalInvested seeds the cached total_invested value.
func (b *InvestorBuilder) WithTotalInvested(total float64) *InvestorBuilder {
	b.TotalInvested = total
	return b
}

// Build creates the investor in the database and returns it.
func (b *InvestorBuilder) Build(t *testing.T, db *sql.DB) model.Investor {
	t.Helper()

	query := `
		INSERT INTO investor (id, name, risk_profile, invested_source, total_invested)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.RiskProfile, b.InvestedSource, b.TotalInvested)
	if err != nil {
		t.Fatalf("Failed to create test investor: %v", err)
	}

	return model.Investor{
		ID:             b.ID,
		Name:           b.Name,
		RiskProfile:    b.RiskProfile,
		InvestedSource: b.InvestedSource,
		TotalInvested:  b.TotalInvested,
	}
}

// FundBuilder provides a fluent interface for creating test funds.
type FundBuilder struct {
	ID           string
	Name         string
	Currency     string
	RiskLevel    string
	InitialValue float64
	CurrentValue float64
	TotalShares  float64
	IsActive     bool
}

// NewFund creates a FundBuilder with sensible defaults.
func NewFund() *FundBuilder {
	return &FundBuilder{
		ID:        MakeID(),
		Name:      MakeName("Test Fund"),
		Currency:  "TRY",
		RiskLevel: "medium",
		IsActive:  true,
	}
}

// WithName sets a custom name.
func (b *FundBuilder) WithName(name string) *FundBuilder {
	b.Name = name
	return b
}

// WithValues sets the fund's value and share columns.
func (b *FundBuilder) WithValues(initial, current, shares float64) *FundBuilder {
	b.InitialValue = initial
	b.CurrentValue = current
	b.TotalShares = shares
	return b
}

// Build creates the fund in the database and returns it.
func (b *FundBuilder) Build(t *testing.T, db *sql.DB) model.Fund {
	t.Helper()

	query := `
		INSERT INTO fund (id, name, currency, risk_level, initial_value, current_value, total_shares, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.Currency, b.RiskLevel, b.InitialValue, b.CurrentValue, b.TotalShares, b.IsActive)
	if err != nil {
		t.Fatalf("Failed to create test fund: %v", err)
	}

	return model.Fund{
		ID:           b.ID,
		Name:         b.Name,
		Currency:     b.Currency,
		RiskLevel:    b.RiskLevel,
		InitialValue: b.InitialValue,
		CurrentValue: b.CurrentValue,
		TotalShares:  b.TotalShares,
		IsActive:     b.IsActive,
	}
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
type PortfolioBuilder struct {
	ID         string
	Name       string
	InvestorID *string
	FundID     *string
	Currency   string
	RiskLevel  string
	IsActive   bool
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio() *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:        MakeID(),
		Name:      MakeName("Test Portfolio"),
		Currency:  "TRY",
		RiskLevel: "medium",
		IsActive:  true,
	}
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithInvestor links the portfolio to an investor.
func (b *PortfolioBuilder) WithInvestor(investorID string) *PortfolioBuilder {
	b.InvestorID = &investorID
	return b
}

// WithFund links the portfolio to a fund.
func (b *PortfolioBuilder) WithFund(fundID string) *PortfolioBuilder {
	b.FundID = &fundID
	return b
}

// Inactive marks the portfolio as inactive.
func (b *PortfolioBuilder) Inactive() *PortfolioBuilder {
	b.IsActive = false
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	query := `
		INSERT INTO portfolio (id, name, investor_id, fund_id, currency, risk_level, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.Name, b.InvestorID, b.FundID, b.Currency, b.RiskLevel, b.IsActive)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:         b.ID,
		Name:       b.Name,
		InvestorID: b.InvestorID,
		FundID:     b.FundID,
		Currency:   b.Currency,
		RiskLevel:  b.RiskLevel,
		IsActive:   b.IsActive,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
type TransactionBuilder struct {
	ID             string
	PortfolioID    string
	InvestorID     *string
	InstrumentCode string
	Type           string
	Date           time.Time
	Price          float64
	Quantity       float64
	Commission     float64
	Tax            float64
}

// NewTransaction creates a TransactionBuilder for the given portfolio and instrument.
func NewTransaction(portfolioID, instrumentCode string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:             MakeID(),
		PortfolioID:    portfolioID,
		InstrumentCode: instrumentCode,
		Type:           model.TransactionBuy,
		Date:           time.Now().UTC().Truncate(24 * time.Hour),
		Price:          100,
		Quantity:       10,
	}
}

// WithType sets the transaction type.
func (b *TransactionBuilder) WithType(txType string) *TransactionBuilder {
	b.Type = txType
	return b
}

// WithDate sets the transaction date.
func (b *TransactionBuilder) WithDate(date time.Time) *TransactionBuilder {
	b.Date = date
	return b
}

// WithPrice sets price per unit, or the ratio for splits and mergers.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// WithQuantity sets the quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithFees sets commission and tax.
func (b *TransactionBuilder) WithFees(commission, tax float64) *TransactionBuilder {
	b.Commission = commission
	b.Tax = tax
	return b
}

// WithInvestor attributes the transaction to an investor.
func (b *TransactionBuilder) WithInvestor(investorID string) *TransactionBuilder {
	b.InvestorID = &investorID
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, portfolio_id, investor_id, instrument_code, type, date, price, quantity, commission, tax)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.PortfolioID, b.InvestorID, b.InstrumentCode, b.Type, b.Date.Format("2006-01-02"), b.Price, b.Quantity, b.Commission, b.Tax)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:             b.ID,
		PortfolioID:    b.PortfolioID,
		InvestorID:     b.InvestorID,
		InstrumentCode: b.InstrumentCode,
		Type:           b.Type,
		Date:           b.Date,
		Price:          b.Price,
		Quantity:       b.Quantity,
		Commission:     b.Commission,
		Tax:            b.Tax,
	}
}

// FundShareBuilder provides a fluent interface for creating test fund shares.
type FundShareBuilder struct {
	ID                string
	FundID            string
	InvestorID        string
	SharesCount       float64
	InitialInvestment float64
	EntryDate         time.Time
}

// NewFundShare creates a FundShareBuilder for the given fund and investor.
func NewFundShare(fundID, investorID string) *FundShareBuilder {
	return &FundShareBuilder{
		ID:                MakeID(),
		FundID:            fundID,
		InvestorID:        investorID,
		SharesCount:       100,
		InitialInvestment: 100,
		EntryDate:         time.Now().UTC().Truncate(24 * time.Hour),
	}
}

// WithShares sets the issued share count and the investment it came from.
func (b *FundShareBuilder) WithShares(shares, investment float64) *FundShareBuilder {
	b.SharesCount = shares
	b.InitialInvestment = investment
	return b
}

// Build creates the fund share in the database and returns it.
func (b *FundShareBuilder) Build(t *testing.T, db *sql.DB) model.FundShare {
	t.Helper()

	query := `
		INSERT INTO fund_share (id, fund_id, investor_id, shares_count, initial_investment, entry_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.FundID, b.InvestorID, b.SharesCount, b.InitialInvestment, b.EntryDate.Format("2006-01-02"))
	if err != nil {
		t.Fatalf("Failed to create test fund share: %v", err)
	}

	return model.FundShare{
		ID:                b.ID,
		FundID:            b.FundID,
		InvestorID:        b.InvestorID,
		SharesCount:       b.SharesCount,
		InitialInvestment: b.InitialInvestment,
		EntryDate:         b.EntryDate,
	}
}

// InvestmentBuilder provides a fluent interface for creating test investments.
type InvestmentBuilder struct {
	ID         string
	InvestorID string
	Amount     float64
	Date       time.Time
	Type       string
}

// NewInvestment creates an InvestmentBuilder for the given investor.
func NewInvestment(investorID string) *InvestmentBuilder {
	return &InvestmentBuilder{
		ID:         MakeID(),
		InvestorID: investorID,
		Amount:     1000,
		Date:       time.Now().UTC().Truncate(24 * time.Hour),
		Type:       model.InvestmentAdditional,
	}
}

// WithAmount sets the contribution amount.
func (b *InvestmentBuilder) WithAmount(amount float64) *InvestmentBuilder {
	b.Amount = amount
	return b
}

// WithType sets the contribution type.
func (b *InvestmentBuilder) WithType(invType string) *InvestmentBuilder {
	b.Type = invType
	return b
}

// Build creates the investment in the database and returns it.
func (b *InvestmentBuilder) Build(t *testing.T, db *sql.DB) model.Investment {
	t.Helper()

	query := `
		INSERT INTO investment (id, investor_id, amount, date, type)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.InvestorID, b.Amount, b.Date.Format("2006-01-02"), b.Type)
	if err != nil {
		t.Fatalf("Failed to create test investment: %v", err)
	}

	return model.Investment{
		ID:         b.ID,
		InvestorID: b.InvestorID,
		Amount:     b.Amount,
		Date:       b.Date,
		Type:       b.Type,
	}
}
