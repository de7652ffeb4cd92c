package repository

import (
	"database/sql"
	"fmt"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
type PortfolioRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// WithTx returns a copy of the repository that runs against the given transaction.
func (r *PortfolioRepository) WithTx(tx *sql.Tx) *PortfolioRepository {
	return &PortfolioRepository{db: r.db, tx: tx}
}

func (r *PortfolioRepository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const portfolioColumns = `id, name, COALESCE(description, ''), investor_id, fund_id, currency, risk_level, is_active`

func scanPortfolio(scan func(dest ...any) error) (model.Portfolio, error) {
	var p model.Portfolio
	var investorID, fundID sql.NullString

	err := scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&investorID,
		&fundID,
		&p.Currency,
		&p.RiskLevel,
		&p.IsActive,
	)
	if err != nil {
		return model.Portfolio{}, err
	}

	if investorID.Valid {
		p.InvestorID = &investorID.String
	}
	if fundID.Valid {
		p.FundID = &fundID.String
	}

	return p, nil
}

// GetPortfolios retrieves portfolios from the database based on filter criteria.
// Returns an empty slice if no portfolios match the filter criteria.
func (r *PortfolioRepository) GetPortfolios(filter model.PortfolioFilter) ([]model.Portfolio, error) {
	query := `
		SELECT ` + portfolioColumns + `
		FROM portfolio
		WHERE 1=1
	`
	var args []any

	if !filter.IncludeInactive {
		query += " AND is_active = ?"
		args = append(args, 1)
	}

	rows, err := r.q().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		p, err := scanPortfolio(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolioOnID retrieves a single portfolio by ID.
func (r *PortfolioRepository) GetPortfolioOnID(portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT ` + portfolioColumns + `
		FROM portfolio
		WHERE id = ?
	`

	p, err := scanPortfolio(r.q().QueryRow(query, portfolioID).Scan)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	return p, nil
}

// GetPortfoliosByFundID retrieves all portfolios linked to a fund.
// Returns an empty slice if the fund has no linked portfolios (not an error).
func (r *PortfolioRepository) GetPortfoliosByFundID(fundID string) ([]model.Portfolio, error) {
	query := `
		SELECT ` + portfolioColumns + `
		FROM portfolio
		WHERE fund_id = ?
	`

	rows, err := r.q().Query(query, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		p, err := scanPortfolio(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}
		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolioIDsByInvestorID returns the IDs of all portfolios owned by an investor.
func (r *PortfolioRepository) GetPortfolioIDsByInvestorID(investorID string) ([]string, error) {
	rows, err := r.q().Query(`SELECT id FROM portfolio WHERE investor_id = ?`, investorID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return ids, nil
}

// InsertPortfolio creates a new portfolio row.
func (r *PortfolioRepository) InsertPortfolio(p *model.Portfolio) error {
	query := `
		INSERT INTO portfolio (id, name, description, investor_id, fund_id, currency, risk_level, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.q().Exec(
		query,
		p.ID,
		p.Name,
		p.Description,
		nullString(p.InvestorID),
		nullString(p.FundID),
		p.Currency,
		p.RiskLevel,
		p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return nil
}

// UpdatePortfolio overwrites a portfolio's mutable fields.
func (r *PortfolioRepository) UpdatePortfolio(p *model.Portfolio) error {
	query := `
		UPDATE portfolio
		SET name = ?, description = ?, investor_id = ?, fund_id = ?, currency = ?, risk_level = ?, is_active = ?
		WHERE id = ?
	`

	result, err := r.q().Exec(
		query,
		p.Name,
		p.Description,
		nullString(p.InvestorID),
		nullString(p.FundID),
		p.Currency,
		p.RiskLevel,
		p.IsActive,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update portfolio: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}

// DeletePortfolio removes a portfolio; positions and transactions cascade.
func (r *PortfolioRepository) DeletePortfolio(portfolioID string) error {
	result, err := r.q().Exec(`DELETE FROM portfolio WHERE id = ?`, portfolioID)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPortfolioNotFound
	}

	return nil
}
