package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrInstrumentNotFound indicates that an instrument with the given code does not exist.
	ErrInstrumentNotFound = errors.New("instrument not found")

	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrPositionNotFound indicates no position row for a portfolio/instrument pair.
	ErrPositionNotFound = errors.New("position not found")

	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrFundNotFound indicates that a fund with the given ID does not exist.
	ErrFundNotFound = errors.New("fund not found")

	// ErrFundShareNotFound indicates that a fund share record does not exist.
	ErrFundShareNotFound = errors.New("fund share not found")

	// ErrInvestorNotFound indicates that an investor with the given ID does not exist.
	ErrInvestorNotFound = errors.New("investor not found")

	// ErrInvestmentNotFound indicates that an investment record does not exist.
	ErrInvestmentNotFound = errors.New("investment not found")

	// ErrSettingNotFound indicates that a system setting key has not been stored.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInsufficientHoldings indicates that a sell transaction cannot be completed
	// because the portfolio does not hold enough of the instrument.
	ErrInsufficientHoldings = errors.New("insufficient holdings for sale")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInstrumentInUse indicates that an instrument cannot be deleted because
	// positions or transactions still reference it.
	ErrInstrumentInUse = errors.New("instrument is in use")

	// ErrSharesNotSettable indicates an attempt to supply shares_count directly.
	// The server always recomputes it from the prevailing share price.
	ErrSharesNotSettable = errors.New("shares count is derived and cannot be set")

	// ErrAPIKeyMissing indicates no market-data API key is configured.
	ErrAPIKeyMissing = errors.New("market-data API key not configured")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveInstruments  = errors.New("failed to retrieve instruments")
	ErrFailedToRetrieveSnapshots    = errors.New("failed to retrieve price snapshots")
	ErrFailedToRetrievePortfolios   = errors.New("failed to retrieve portfolios")
	ErrFailedToRetrievePositions    = errors.New("failed to retrieve positions")
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveFunds        = errors.New("failed to retrieve funds")
	ErrFailedToRetrieveFundShares   = errors.New("failed to retrieve fund shares")
	ErrFailedToRetrieveInvestors    = errors.New("failed to retrieve investors")
	ErrFailedToRetrieveInvestments  = errors.New("failed to retrieve investments")
	ErrFailedToGetVersionInfo       = errors.New("failed to get version information")
	ErrIngestFailed                 = errors.New("market-data ingestion failed")
	ErrRetentionFailed              = errors.New("snapshot retention pruning failed")
)

// Consistency errors represent a propagation chain that could not complete.
// The chain is rolled back as a unit; the data is never left half-updated.
var (
	// ErrPropagationFailed indicates that a derived-aggregate recompute failed
	// and the entire triggering write was rolled back.
	ErrPropagationFailed = errors.New("propagation chain failed")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
