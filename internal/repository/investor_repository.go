package repository

import (
	"database/sql"
	"fmt"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

// InvestorRepository provides data access methods for the investor table.
type InvestorRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewInvestorRepository creates a new InvestorRepository with the provided database connection.
func NewInvestorRepository(db *sql.DB) *InvestorRepository {
	return &InvestorRepository{db: db}
}

// WithTx returns a copy of the repository that runs against the given transaction.
func (r *InvestorRepository) WithTx(tx *sql.Tx) *InvestorRepository {
	return &InvestorRepository{db: r.db, tx: tx}
}

func (r *InvestorRepository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const investorColumns = `id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(tax_id, ''), risk_profile, invested_source, total_invested, monthly_contribution, start_date, COALESCE(notes, '')`

func scanInvestor(scan func(dest ...any) error) (model.Investor, error) {
	var inv model.Investor
	var startDate sql.NullString

	err := scan(
		&inv.ID,
		&inv.Name,
		&inv.Email,
		&inv.Phone,
		&inv.TaxID,
		&inv.RiskProfile,
		&inv.InvestedSource,
		&inv.TotalInvested,
		&inv.MonthlyContribution,
		&startDate,
		&inv.Notes,
	)
	if err != nil {
		return model.Investor{}, err
	}

	if startDate.Valid {
		parsed, err := ParseTime(startDate.String)
		if err != nil {
			return model.Investor{}, err
		}
		inv.StartDate = &parsed
	}

	return inv, nil
}

// GetInvestors retrieves all investors ordered by name.
func (r *InvestorRepository) GetInvestors() ([]model.Investor, error) {
	query := `
		SELECT ` + investorColumns + `
		FROM investor
		ORDER BY name ASC
	`

	rows, err := r.q().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query investor table: %w", err)
	}
	defer rows.Close()

	investors := []model.Investor{}

	for rows.Next() {
		inv, err := scanInvestor(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan investor table results: %w", err)
		}
		investors = append(investors, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating investor table: %w", err)
	}

	return investors, nil
}

// GetInvestor retrieves a single investor by ID.
func (r *InvestorRepository) GetInvestor(investorID string) (model.Investor, error) {
	query := `
		SELECT ` + investorColumns + `
		FROM investor
		WHERE id = ?
	`

	inv, err := scanInvestor(r.q().QueryRow(query, investorID).Scan)
	if err == sql.ErrNoRows {
		return model.Investor{}, apperrors.ErrInvestorNotFound
	}
	if err != nil {
		return model.Investor{}, fmt.Errorf("failed to query investor: %w", err)
	}

	return inv, nil
}

// InsertInvestor creates a new investor row.
func (r *InvestorRepository) InsertInvestor(inv *model.Investor) error {
	query := `
		INSERT INTO investor (id, name, email, phone, tax_id, risk_profile, invested_source, total_invested, monthly_contribution, start_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var startDate any
	if inv.StartDate != nil {
		startDate = inv.StartDate.Format("2006-01-02")
	}

	_, err := r.q().Exec(
		query,
		inv.ID,
		inv.Name,
		inv.Email,
		inv.Phone,
		inv.TaxID,
		inv.RiskProfile,
		inv.InvestedSource,
		inv.TotalInvested,
		inv.MonthlyContribution,
		startDate,
		inv.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert investor: %w", err)
	}

	return nil
}

// UpdateInvestor overwrites an investor's profile fields. total_invested is
// excluded: the cached projection belongs to the rollup recompute alone.
func (r *InvestorRepository) UpdateInvestor(inv *model.Investor) error {
	query := `
		UPDATE investor
		SET name = ?, email = ?, phone = ?, tax_id = ?, risk_profile = ?, invested_source = ?, monthly_contribution = ?, start_date = ?, notes = ?
		WHERE id = ?
	`

	var startDate any
	if inv.StartDate != nil {
		startDate = inv.StartDate.Format("2006-01-02")
	}

	result, err := r.q().Exec(
		query,
		inv.Name,
		inv.Email,
		inv.Phone,
		inv.TaxID,
		inv.RiskProfile,
		inv.InvestedSource,
		inv.MonthlyContribution,
		startDate,
		inv.Notes,
		inv.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update investor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestorNotFound
	}

	return nil
}

// UpdateTotalInvested persists only the total_invested projection.
func (r *InvestorRepository) UpdateTotalInvested(investorID string, total float64) error {
	result, err := r.q().Exec(`UPDATE investor SET total_invested = ? WHERE id = ?`, total, investorID)
	if err != nil {
		return fmt.Errorf("failed to update investor total: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestorNotFound
	}

	return nil
}

// DeleteInvestor removes an investor. Portfolio and transaction references are
// nulled by the schema; fund shares and investments cascade.
func (r *InvestorRepository) DeleteInvestor(investorID string) error {
	result, err := r.q().Exec(`DELETE FROM investor WHERE id = ?`, investorID)
	if err != nil {
		return fmt.Errorf("failed to delete investor: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInvestorNotFound
	}

	return nil
}
