package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a copy of the repository that runs against the given transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{db: r.db, tx: tx}
}

func (r *TransactionRepository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const transactionColumns = `id, portfolio_id, investor_id, instrument_code, type, date, price, quantity, commission, tax, COALESCE(notes, ''), created_at`

func scanTransaction(scan func(dest ...any) error) (model.Transaction, error) {
	var t model.Transaction
	var investorID sql.NullString
	var dateStr, createdAtStr string

	err := scan(
		&t.ID,
		&t.PortfolioID,
		&investorID,
		&t.InstrumentCode,
		&t.Type,
		&dateStr,
		&t.Price,
		&t.Quantity,
		&t.Commission,
		&t.Tax,
		&t.Notes,
		&createdAtStr,
	)
	if err != nil {
		return model.Transaction{}, err
	}

	if investorID.Valid {
		t.InvestorID = &investorID.String
	}

	t.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Transaction{}, err
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// GetHistory retrieves the complete transaction history for one
// (portfolio, instrument) pair, ordered ascending by date with equal-date ties
// broken by insertion order. This is the exact input contract of the ledger replay.
func (r *TransactionRepository) GetHistory(portfolioID, instrumentCode string) ([]model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE portfolio_id = ? AND instrument_code = ?
		ORDER BY date ASC, created_at ASC, id ASC
	`

	rows, err := r.q().Query(query, portfolioID, instrumentCode)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	history := []model.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		history = append(history, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return history, nil
}

// GetTransaction retrieves a single transaction by its ID.
func (r *TransactionRepository) GetTransaction(transactionID string) (model.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE id = ?
	`

	t, err := scanTransaction(r.q().QueryRow(query, transactionID).Scan)
	if err == sql.ErrNoRows {
		return model.Transaction{}, apperrors.ErrTransactionNotFound
	}
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to query transaction: %w", err)
	}

	return t, nil
}

// GetTransactionsPerPortfolio retrieves enriched transactions for a specific
// portfolio, or across all portfolios when portfolioID is empty, oldest first.
func (r *TransactionRepository) GetTransactionsPerPortfolio(portfolioID string) ([]model.TransactionResponse, error) {
	query := `
		SELECT
			t.id, t.portfolio_id, t.investor_id, t.instrument_code, t.type, t.date,
			t.price, t.quantity, t.commission, t.tax, COALESCE(t.notes, ''), t.created_at,
			i.name, p.name
		FROM "transaction" t
		JOIN portfolio p ON t.portfolio_id = p.id
		JOIN instrument i ON t.instrument_code = i.code
	`
	var args []any

	if portfolioID != "" {
		query += ` WHERE t.portfolio_id = ?`
		args = append(args, portfolioID)
	}
	query += ` ORDER BY t.date ASC, t.created_at ASC, t.id ASC`

	rows, err := r.q().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.TransactionResponse{}

	for rows.Next() {
		var t model.TransactionResponse
		var investorID sql.NullString
		var dateStr, createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.PortfolioID,
			&investorID,
			&t.InstrumentCode,
			&t.Type,
			&dateStr,
			&t.Price,
			&t.Quantity,
			&t.Commission,
			&t.Tax,
			&t.Notes,
			&createdAtStr,
			&t.InstrumentName,
			&t.PortfolioName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		if investorID.Valid {
			t.InvestorID = &investorID.String
		}
		t.Date, err = ParseTime(dateStr)
		if err != nil {
			return nil, err
		}
		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, err
		}

		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// GetTransactionsByInvestorPortfolios retrieves every transaction across the
// given portfolio IDs. Feeds the transaction-sourced investor rollup.
// Returns an empty slice when portfolioIDs is empty.
func (r *TransactionRepository) GetTransactionsByInvestorPortfolios(portfolioIDs []string) ([]model.Transaction, error) {
	if len(portfolioIDs) == 0 {
		return []model.Transaction{}, nil
	}

	placeholders := make([]string, len(portfolioIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT ` + transactionColumns + `
		FROM "transaction"
		WHERE portfolio_id IN (` + strings.Join(placeholders, ",") + `)
	`

	args := make([]any, len(portfolioIDs))
	for i, id := range portfolioIDs {
		args[i] = id
	}

	rows, err := r.q().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}

	for rows.Next() {
		t, err := scanTransaction(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

// InsertTransaction creates a new transaction row.
func (r *TransactionRepository) InsertTransaction(t *model.Transaction) error {
	query := `
		INSERT INTO "transaction" (id, portfolio_id, investor_id, instrument_code, type, date, price, quantity, commission, tax, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.q().Exec(
		query,
		t.ID,
		t.PortfolioID,
		nullString(t.InvestorID),
		t.InstrumentCode,
		t.Type,
		t.Date.Format("2006-01-02"),
		t.Price,
		t.Quantity,
		t.Commission,
		t.Tax,
		t.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// UpdateTransaction overwrites a transaction's economic fields.
func (r *TransactionRepository) UpdateTransaction(t *model.Transaction) error {
	query := `
		UPDATE "transaction"
		SET type = ?, date = ?, price = ?, quantity = ?, commission = ?, tax = ?, notes = ?
		WHERE id = ?
	`

	result, err := r.q().Exec(
		query,
		t.Type,
		t.Date.Format("2006-01-02"),
		t.Price,
		t.Quantity,
		t.Commission,
		t.Tax,
		t.Notes,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}

// DeleteTransaction removes a transaction row.
func (r *TransactionRepository) DeleteTransaction(transactionID string) error {
	result, err := r.q().Exec(`DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTransactionNotFound
	}

	return nil
}
