package repository

import (
	"database/sql"
	"fmt"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

// FundShareRepository provides data access methods for the fund_share table.
type FundShareRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewFundShareRepository creates a new FundShareRepository with the provided database connection.
func NewFundShareRepository(db *sql.DB) *FundShareRepository {
	return &FundShareRepository{db: db}
}

// WithTx returns a copy of the repository that runs against the given transaction.
func (r *FundShareRepository) WithTx(tx *sql.Tx) *FundShareRepository {
	return &FundShareRepository{db: r.db, tx: tx}
}

func (r *FundShareRepository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const fundShareColumns = `id, fund_id, investor_id, shares_count, initial_investment, entry_date, COALESCE(notes, '')`

func scanFundShare(scan func(dest ...any) error) (model.FundShare, error) {
	var s model.FundShare
	var entryDateStr string

	err := scan(
		&s.ID,
		&s.FundID,
		&s.InvestorID,
		&s.SharesCount,
		&s.InitialInvestment,
		&entryDateStr,
		&s.Notes,
	)
	if err != nil {
		return model.FundShare{}, err
	}

	s.EntryDate, err = ParseTime(entryDateStr)
	if err != nil {
		return model.FundShare{}, err
	}

	return s, nil
}

// GetFundShare retrieves a single fund share by ID.
func (r *FundShareRepository) GetFundShare(shareID string) (model.FundShare, error) {
	query := `
		SELECT ` + fundShareColumns + `
		FROM fund_share
		WHERE id = ?
	`

	s, err := scanFundShare(r.q().QueryRow(query, shareID).Scan)
	if err == sql.ErrNoRows {
		return model.FundShare{}, apperrors.ErrFundShareNotFound
	}
	if err != nil {
		return model.FundShare{}, fmt.Errorf("failed to query fund_share: %w", err)
	}

	return s, nil
}

// GetSharesByFundID retrieves all shares of a fund enriched with read-time
// valuations: shares_count times the fund's current share value, 0 when the
// fund has no shares outstanding.
func (r *FundShareRepository) GetSharesByFundID(fundID string) ([]model.FundShareValue, error) {
	return r.getShareValues(`fs.fund_id = ?`, fundID)
}

// GetSharesByInvestorID retrieves all of an investor's fund shares with valuations.
func (r *FundShareRepository) GetSharesByInvestorID(investorID string) ([]model.FundShareValue, error) {
	return r.getShareValues(`fs.investor_id = ?`, investorID)
}

func (r *FundShareRepository) getShareValues(where string, arg any) ([]model.FundShareValue, error) {
	//#nosec G202 -- Safe: where clauses are hardcoded by the two callers above
	query := `
		SELECT
			fs.id, fs.fund_id, fs.investor_id, fs.shares_count, fs.initial_investment,
			fs.entry_date, COALESCE(fs.notes, ''),
			f.name, i.name,
			CASE WHEN f.total_shares > 0 THEN fs.shares_count * (f.current_value / f.total_shares) ELSE 0 END
		FROM fund_share fs
		JOIN fund f ON f.id = fs.fund_id
		JOIN investor i ON i.id = fs.investor_id
		WHERE ` + where + `
		ORDER BY fs.entry_date ASC
	`

	rows, err := r.q().Query(query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query fund_share table: %w", err)
	}
	defer rows.Close()

	shares := []model.FundShareValue{}

	for rows.Next() {
		var v model.FundShareValue
		var entryDateStr string

		err := rows.Scan(
			&v.ID,
			&v.FundID,
			&v.InvestorID,
			&v.SharesCount,
			&v.InitialInvestment,
			&entryDateStr,
			&v.Notes,
			&v.FundName,
			&v.InvestorName,
			&v.CurrentValue,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fund_share table results: %w", err)
		}

		v.EntryDate, err = ParseTime(entryDateStr)
		if err != nil {
			return nil, err
		}

		v.ProfitLoss = v.CurrentValue - v.InitialInvestment
		if v.InitialInvestment > 0 {
			v.ProfitLossPct = v.ProfitLoss / v.InitialInvestment * 100
		}

		shares = append(shares, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fund_share table: %w", err)
	}

	return shares, nil
}

// SumShareValuesByInvestorID returns the read-time value of all of an
// investor's fund shares. Feeds the investor summary.
func (r *FundShareRepository) SumShareValuesByInvestorID(investorID string) (float64, error) {
	query := `
		SELECT COALESCE(SUM(
			CASE WHEN f.total_shares > 0 THEN fs.shares_count * (f.current_value / f.total_shares) ELSE 0 END
		), 0)
		FROM fund_share fs
		JOIN fund f ON f.id = fs.fund_id
		WHERE fs.investor_id = ?
	`

	var total float64
	if err := r.q().QueryRow(query, investorID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum fund share values: %w", err)
	}

	return total, nil
}

// InsertFundShare creates a new fund share row.
func (r *FundShareRepository) InsertFundShare(s *model.FundShare) error {
	query := `
		INSERT INTO fund_share (id, fund_id, investor_id, shares_count, initial_investment, entry_date, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.q().Exec(
		query,
		s.ID,
		s.FundID,
		s.InvestorID,
		s.SharesCount,
		s.InitialInvestment,
		s.EntryDate.Format("2006-01-02"),
		s.Notes,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fund share: %w", err)
	}

	return nil
}

// UpdateFundShare overwrites a share's investment amount and recomputed count.
func (r *FundShareRepository) UpdateFundShare(s *model.FundShare) error {
	query := `
		UPDATE fund_share
		SET shares_count = ?, initial_investment = ?, notes = ?
		WHERE id = ?
	`

	result, err := r.q().Exec(query, s.SharesCount, s.InitialInvestment, s.Notes, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update fund share: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundShareNotFound
	}

	return nil
}

// DeleteFundShare removes a fund share row.
func (r *FundShareRepository) DeleteFundShare(shareID string) error {
	result, err := r.q().Exec(`DELETE FROM fund_share WHERE id = ?`, shareID)
	if err != nil {
		return fmt.Errorf("failed to delete fund share: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrFundShareNotFound
	}

	return nil
}
