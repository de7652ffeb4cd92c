package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

// InstrumentRepository provides data access methods for the instrument table.
type InstrumentRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewInstrumentRepository creates a new InstrumentRepository with the provided database connection.
func NewInstrumentRepository(db *sql.DB) *InstrumentRepository {
	return &InstrumentRepository{db: db}
}

// WithTx returns a copy of the repository that runs against the given transaction.
func (r *InstrumentRepository) WithTx(tx *sql.Tx) *InstrumentRepository {
	return &InstrumentRepository{db: r.db, tx: tx}
}

func (r *InstrumentRepository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetInstruments retrieves all instruments ordered by code.
// Returns an empty slice if no instruments exist.
func (r *InstrumentRepository) GetInstruments() ([]model.Instrument, error) {
	query := `
		SELECT code, name, COALESCE(icon_url, '')
		FROM instrument
		ORDER BY code ASC
	`

	rows, err := r.q().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query instrument table: %w", err)
	}
	defer rows.Close()

	instruments := []model.Instrument{}

	for rows.Next() {
		var i model.Instrument

		if err := rows.Scan(&i.Code, &i.Name, &i.IconURL); err != nil {
			return nil, fmt.Errorf("failed to scan instrument table results: %w", err)
		}

		instruments = append(instruments, i)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating instrument table: %w", err)
	}

	return instruments, nil
}

// GetInstrument retrieves a single instrument by its code.
func (r *InstrumentRepository) GetInstrument(code string) (model.Instrument, error) {
	query := `
		SELECT code, name, COALESCE(icon_url, '')
		FROM instrument
		WHERE code = ?
	`

	var i model.Instrument

	err := r.q().QueryRow(query, code).Scan(&i.Code, &i.Name, &i.IconURL)
	if err == sql.ErrNoRows {
		return model.Instrument{}, apperrors.ErrInstrumentNotFound
	}
	if err != nil {
		return model.Instrument{}, fmt.Errorf("failed to query instrument: %w", err)
	}

	return i, nil
}

// UpsertInstrument inserts an instrument or refreshes its display fields if the
// code already exists. Identity (the code) is immutable.
func (r *InstrumentRepository) UpsertInstrument(i model.Instrument) error {
	query := `
		INSERT INTO instrument (code, name, icon_url)
		VALUES (?, ?, ?)
		ON CONFLICT(code) DO UPDATE SET name = excluded.name, icon_url = excluded.icon_url
	`

	if _, err := r.q().Exec(query, i.Code, i.Name, i.IconURL); err != nil {
		return fmt.Errorf("failed to upsert instrument: %w", err)
	}

	return nil
}

// DeleteInstrument removes an instrument. Deletion is blocked by the RESTRICT
// foreign keys while positions, transactions, or snapshots reference the code;
// that constraint violation is surfaced as ErrInstrumentInUse.
func (r *InstrumentRepository) DeleteInstrument(code string) error {
	result, err := r.q().Exec(`DELETE FROM instrument WHERE code = ?`, code)
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return apperrors.ErrInstrumentInUse
		}
		return fmt.Errorf("failed to delete instrument: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrInstrumentNotFound
	}

	return nil
}
