package repository

import (
	"database/sql"
	"fmt"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

// PositionRepository provides data access methods for the position table.
// Position rows are derived state: they are only ever written by the
// propagation chain after a ledger replay, never by handlers directly.
type PositionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// WithTx returns a copy of the repository that runs against the given transaction.
func (r *PositionRepository) WithTx(tx *sql.Tx) *PositionRepository {
	return &PositionRepository{db: r.db, tx: tx}
}

func (r *PositionRepository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetPosition retrieves the position for a (portfolio, instrument) pair.
func (r *PositionRepository) GetPosition(portfolioID, instrumentCode string) (model.Position, error) {
	query := `
		SELECT id, portfolio_id, instrument_code, quantity, average_cost, is_open, open_date
		FROM position
		WHERE portfolio_id = ? AND instrument_code = ?
	`

	var p model.Position
	var openDateStr string

	err := r.q().QueryRow(query, portfolioID, instrumentCode).Scan(
		&p.ID,
		&p.PortfolioID,
		&p.InstrumentCode,
		&p.Quantity,
		&p.AverageCost,
		&p.IsOpen,
		&openDateStr,
	)
	if err == sql.ErrNoRows {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to query position: %w", err)
	}

	p.OpenDate, err = ParseTime(openDateStr)
	if err != nil {
		return model.Position{}, err
	}

	return p, nil
}

// GetPositionValuations retrieves all positions of a portfolio joined with the
// instrument name and the latest snapshot price per instrument. The latest
// snapshot is the one with the most recent created_at, ties broken by highest
// row id. Instruments without any snapshot value at price 0.
func (r *PositionRepository) GetPositionValuations(portfolioID string) ([]model.PositionValuation, error) {
	query := `
		SELECT
			pos.id, pos.portfolio_id, pos.instrument_code, pos.quantity,
			pos.average_cost, pos.is_open, pos.open_date,
			i.name,
			COALESCE((
				SELECT ps.price FROM price_snapshot ps
				WHERE ps.instrument_code = pos.instrument_code
				ORDER BY ps.created_at DESC, ps.id DESC
				LIMIT 1
			), 0)
		FROM position pos
		JOIN instrument i ON i.code = pos.instrument_code
		WHERE pos.portfolio_id = ?
		ORDER BY pos.instrument_code ASC
	`

	rows, err := r.q().Query(query, portfolioID)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	valuations := []model.PositionValuation{}

	for rows.Next() {
		var v model.PositionValuation
		var openDateStr string

		err := rows.Scan(
			&v.ID,
			&v.PortfolioID,
			&v.InstrumentCode,
			&v.Quantity,
			&v.AverageCost,
			&v.IsOpen,
			&openDateStr,
			&v.InstrumentName,
			&v.CurrentPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position table results: %w", err)
		}

		v.OpenDate, err = ParseTime(openDateStr)
		if err != nil {
			return nil, err
		}

		v.CurrentValue = v.Quantity * v.CurrentPrice
		v.TotalCost = v.Quantity * v.AverageCost
		v.ProfitLoss = v.CurrentValue - v.TotalCost
		if v.TotalCost != 0 {
			v.ProfitLossPct = v.ProfitLoss / v.TotalCost * 100
		}

		valuations = append(valuations, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return valuations, nil
}

// UpsertPosition writes the replayed state for a (portfolio, instrument) pair,
// inserting the row on first touch.
func (r *PositionRepository) UpsertPosition(p *model.Position) error {
	query := `
		INSERT INTO position (id, portfolio_id, instrument_code, quantity, average_cost, is_open, open_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(portfolio_id, instrument_code) DO UPDATE SET
			quantity = excluded.quantity,
			average_cost = excluded.average_cost,
			is_open = excluded.is_open,
			open_date = excluded.open_date
	`

	_, err := r.q().Exec(
		query,
		p.ID,
		p.PortfolioID,
		p.InstrumentCode,
		p.Quantity,
		p.AverageCost,
		p.IsOpen,
		p.OpenDate.Format("2006-01-02"),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert position: %w", err)
	}

	return nil
}

// DeletePosition removes the position row for a pair. Used when the pair's
// transaction history becomes empty; a missing row is not an error.
func (r *PositionRepository) DeletePosition(portfolioID, instrumentCode string) error {
	_, err := r.q().Exec(`DELETE FROM position WHERE portfolio_id = ? AND instrument_code = ?`, portfolioID, instrumentCode)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}
