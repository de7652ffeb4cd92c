package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

// InvestmentRepository provides data access methods for the investment table.
type InvestmentRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewInvestmentRepository creates a new InvestmentRepository with the provided database connection.
func NewInvestmentRepository(db *sql.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

// WithTx returns a copy of the repository that runs against the given transaction.
func (r *InvestmentRepository) WithTx(tx *sql.Tx) *InvestmentRepository {
	return &InvestmentRepository{db: r.db, tx: tx}
}

func (r *InvestmentRepository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const investmentColumns = `id, investor_id, amount, date, type, COALESCE(notes, ''), created_at`

func scanInvestment(scan func(dest ...any) error) (model.Investment, error) {
	var inv model.Investment
	var dateStr, createdAtStr string

	err := scan(
		&inv.ID,
		&inv.InvestorID,
		&inv.Amount,
		&dateStr,
		&inv.Type,
		&inv.Notes,
		&createdAtStr,
	)
	if err != nil {
		return model.Investment{}, err
	}

	inv.Date, err = ParseTime(dateStr)
	if err != nil {
		return model.Investment{}, err
	}
	inv.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Investment{}, err
	}

	return inv, nil
}

// GetInvestmentsByInvestorID retrieves an investor's cash contributions, newest first.
func (r *InvestmentRepository) GetInvestmentsByInvestorID(investorID string) ([]model.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investment
		WHERE investor_id = ?
		ORDER BY date DESC, id DESC
	`

	rows, err := r.q().Query(query, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	investments := []model.Investment{}

	for rows.Next() {
		inv, err := scanInvestment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investment table results: %w", err)
		}
		investments = append(investments, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investments, nil
}

// GetInvestment retrieves a single investment by ID.
func (r *InvestmentRepository) GetInvestment(investmentID string) (model.Investment, error) {
	query := `
		SELECT ` + investmentColumns + `
		FROM investment
		WHERE id = ?
	`

	inv, err := scanInvestment(r.q().QueryRow(query, investmentID).Scan)
	if err == sql.ErrNoRows {
		return model.Investment{}, apperrors.ErrInvestmentNotFound
	}
	if err != nil {
		return model.Investment{}, fmt.Errorf("failed to query investment: %w", err)
	}

	return inv, nil
}

// GetInvestorIDsForInvestments returns the distinct investor IDs owning the
// given investment rows. Bulk deletion uses this to recompute each affected
// investor exactly once rather than once per deleted row.
func (r *InvestmentRepository) GetInvestorIDsForInvestments(investmentIDs []string) ([]string, error) {
	if len(investmentIDs) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(investmentIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT DISTINCT investor_id
		FROM investment
		WHERE id IN (` + strings.Join(placeholders, ",") + `)
	`

	args := make([]any, len(investmentIDs))
	for i, id := range investmentIDs {
		args[i] = id
	}

	rows, err := r.q().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query investment table: %w", err)
	}
	defer rows.Close()

	var investorIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan investor id: %w", err)
		}
		investorIDs = append(investorIDs, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investment table: %w", err)
	}

	return investorIDs, nil
}

// SumAmountsByInvestorID returns the total of an investor's cash contributions.
func (r *InvestmentRepository) SumAmountsByInvestorID(investorID string) (float64, error) {
	var total float64
	err := r.q().QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM investment WHERE investor_id = ?`, investorID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum investments: %w", err)
	}
	return total, nil
}

// InsertInvestment creates a new investment row.
func (r *InvestmentRepository) InsertInvestment(inv *model.Investment) error {
	query := `
		INSERT INTO investment (id, investor_id, amount, date, type, notes)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.q().Exec(
		query,
		inv.ID,
		inv.InvestorID,
		inv.Amount,
		inv.Date.Format("2006-01-02"),
		inv.Type,
		inv.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert investment: %w", err)
	}

	return nil
}

// UpdateInvestment overwrites an investment's mutable fields.
func (r *InvestmentRepository) UpdateInvestment(inv *model.Investment) error {
	query := `
		UPDATE investment
		SET amount = ?, date = ?, type = ?, notes = ?
		WHERE id = ?
	`

	result, err := r.q().Exec(query, inv.Amount, inv.Date.Format("2006-01-02"), inv.Type, inv.Notes, inv.ID)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestmentNotFound
	}

	return nil
}

// DeleteInvestments removes the given investment rows in one statement and
// returns the number of rows deleted.
func (r *InvestmentRepository) DeleteInvestments(investmentIDs []string) (int64, error) {
	if len(investmentIDs) == 0 {
		return 0, nil
	}

	placeholders := make([]string, len(investmentIDs))
	for i := range placeholders {
		placeholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `DELETE FROM investment WHERE id IN (` + strings.Join(placeholders, ",") + `)`

	args := make([]any, len(investmentIDs))
	for i, id := range investmentIDs {
		args[i] = id
	}

	result, err := r.q().Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete investments: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return deleted, nil
}
