package repository

import (
	"database/sql"
	"fmt"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

// FundRepository provides data access methods for the fund table.
type FundRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewFundRepository creates a new FundRepository with the provided database connection.
func NewFundRepository(db *sql.DB) *FundRepository {
	return &FundRepository{db: db}
}

// WithTx returns a copy of the repository that runs against the given transaction.
func (r *FundRepository) WithTx(tx *sql.Tx) *FundRepository {
	return &FundRepository{db: r.db, tx: tx}
}

func (r *FundRepository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const fundColumns = `id, name, COALESCE(description, ''), currency, management_fee, risk_level, target_return, initial_value, current_value, total_shares, is_active`

func scanFund(scan func(dest ...any) error) (model.Fund, error) {
	var f model.Fund
	var targetReturn sql.NullFloat64

	err := scan(
		&f.ID,
		&f.Name,
		&f.Description,
		&f.Currency,
		&f.ManagementFee,
		&f.RiskLevel,
		&targetReturn,
		&f.InitialValue,
		&f.CurrentValue,
		&f.TotalShares,
		&f.IsActive,
	)
	if err != nil {
		return model.Fund{}, err
	}

	if targetReturn.Valid {
		f.TargetReturn = &targetReturn.Float64
	}

	return f, nil
}

// GetAllFunds retrieves all funds ordered by name.
func (r *FundRepository) GetAllFunds() ([]model.Fund, error) {
	query := `
		SELECT ` + fundColumns + `
		FROM fund
		ORDER BY name ASC
	`

	rows, err := r.q().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund table: %w", err)
	}
	defer rows.Close()

	funds := []model.Fund{}

	for rows.Next() {
		f, err := scanFund(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund table results: %w", err)
		}
		funds = append(funds, f)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund table: %w", err)
	}

	return funds, nil
}

// GetFund retrieves a single fund by ID.
func (r *FundRepository) GetFund(fundID string) (model.Fund, error) {
	query := `
		SELECT ` + fundColumns + `
		FROM fund
		WHERE id = ?
	`

	f, err := scanFund(r.q().QueryRow(query, fundID).Scan)
	if err == sql.ErrNoRows {
		return model.Fund{}, apperrors.ErrFundNotFound
	}
	if err != nil {
		return model.Fund{}, fmt.Errorf("failed to query fund: %w", err)
	}

	return f, nil
}

// InsertFund creates a new fund row.
func (r *FundRepository) InsertFund(f *model.Fund) error {
	query := `
		INSERT INTO fund (id, name, description, currency, management_fee, risk_level, target_return, initial_value, current_value, total_shares, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.q().Exec(
		query,
		f.ID,
		f.Name,
		f.Description,
		f.Currency,
		f.ManagementFee,
		f.RiskLevel,
		nullFloat(f.TargetReturn),
		f.InitialValue,
		f.CurrentValue,
		f.TotalShares,
		f.IsActive,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fund: %w", err)
	}

	return nil
}

// UpdateFundMetadata overwrites a fund's descriptive fields without touching
// the value columns, which belong to the aggregator and the share ledger.
func (r *FundRepository) UpdateFundMetadata(f *model.Fund) error {
	query := `
		UPDATE fund
		SET name = ?, description = ?, currency = ?, management_fee = ?, risk_level = ?, target_return = ?, is_active = ?
		WHERE id = ?
	`

	result, err := r.q().Exec(
		query,
		f.Name,
		f.Description,
		f.Currency,
		f.ManagementFee,
		f.RiskLevel,
		nullFloat(f.TargetReturn),
		f.IsActive,
		f.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update fund: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}

// UpdateCurrentValue persists only the current_value column. This is the
// partial write the fund aggregator performs; initial_value and total_shares
// are deliberately left untouched.
func (r *FundRepository) UpdateCurrentValue(fundID string, currentValue float64) error {
	result, err := r.q().Exec(`UPDATE fund SET current_value = ? WHERE id = ?`, currentValue, fundID)
	if err != nil {
		return fmt.Errorf("failed to update fund current value: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}

// UpdateValues persists the three value columns together. Used by the share
// ledger, whose issuance/redemption side effects touch all of them atomically.
func (r *FundRepository) UpdateValues(fundID string, initialValue, currentValue, totalShares float64) error {
	query := `
		UPDATE fund
		SET initial_value = ?, current_value = ?, total_shares = ?
		WHERE id = ?
	`

	result, err := r.q().Exec(query, initialValue, currentValue, totalShares, fundID)
	if err != nil {
		return fmt.Errorf("failed to update fund values: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}

// SumLinkedPortfolioValues computes the read-time market value of every
// portfolio linked to the fund: quantity times the latest snapshot price,
// summed over all their positions. Portfolios with no positions, and
// instruments with no snapshots, contribute 0.
func (r *FundRepository) SumLinkedPortfolioValues(fundID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(pos.quantity * COALESCE((
			SELECT ps.price FROM price_snapshot ps
			WHERE ps.instrument_code = pos.instrument_code
			ORDER BY ps.created_at DESC, ps.id DESC
			LIMIT 1
		), 0)), 0)
		FROM position pos
		JOIN portfolio p ON p.id = pos.portfolio_id
		WHERE p.fund_id = ?
	`

	var total float64
	if err := r.q().QueryRow(query, fundID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum linked portfolio values: %w", err)
	}

	return total, nil
}

// DeleteFund removes a fund; fund shares cascade and linked portfolios are unlinked.
func (r *FundRepository) DeleteFund(fundID string) error {
	result, err := r.q().Exec(`DELETE FROM fund WHERE id = ?`, fundID)
	if err != nil {
		return fmt.Errorf("failed to delete fund: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundNotFound
	}

	return nil
}
