package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ekaraca/bist-portfolio-backend/internal/model"
)

// SnapshotRepository provides data access methods for the price_snapshot table.
// The table is append-only: rows are inserted by ingestion and removed only by
// retention pruning, never updated.
type SnapshotRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// WithTx returns a copy of the repository that runs against the given transaction.
func (r *SnapshotRepository) WithTx(tx *sql.Tx) *SnapshotRepository {
	return &SnapshotRepository{db: r.db, tx: tx}
}

func (r *SnapshotRepository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const snapshotColumns = `id, instrument_code, price, change_pct, volume, min_price, max_price, COALESCE(exchange_time, ''), created_at`

func scanSnapshot(scan func(dest ...any) error) (model.PriceSnapshot, error) {
	var s model.PriceSnapshot
	var volume, minPrice, maxPrice sql.NullFloat64
	var createdAtStr string

	err := scan(
		&s.ID,
		&s.InstrumentCode,
		&s.Price,
		&s.ChangePct,
		&volume,
		&minPrice,
		&maxPrice,
		&s.ExchangeTime,
		&createdAtStr,
	)
	if err != nil {
		return model.PriceSnapshot{}, err
	}

	if volume.Valid {
		s.Volume = &volume.Float64
	}
	if minPrice.Valid {
		s.MinPrice = &minPrice.Float64
	}
	if maxPrice.Valid {
		s.MaxPrice = &maxPrice.Float64
	}

	s.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.PriceSnapshot{}, fmt.Errorf("failed to parse created_at: %w", err)
	}

	return s, nil
}

// GetSnapshots retrieves the snapshot history for an instrument, newest first,
// capped at limit rows (no cap when limit <= 0).
func (r *SnapshotRepository) GetSnapshots(instrumentCode string, limit int) ([]model.PriceSnapshot, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM price_snapshot
		WHERE instrument_code = ?
		ORDER BY created_at DESC, id DESC
	`
	args := []any{instrumentCode}

	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.q().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query price_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.PriceSnapshot{}

	for rows.Next() {
		s, err := scanSnapshot(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan price_snapshot table results: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating price_snapshot table: %w", err)
	}

	return snapshots, nil
}

// GetLatestSnapshot returns the most recent snapshot for an instrument.
// Most recent ingestion timestamp wins; ties are broken by highest row id.
// Returns (zero, false, nil) when the instrument has no snapshots yet.
func (r *SnapshotRepository) GetLatestSnapshot(instrumentCode string) (model.PriceSnapshot, bool, error) {
	query := `
		SELECT ` + snapshotColumns + `
		FROM price_snapshot
		WHERE instrument_code = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`

	s, err := scanSnapshot(r.q().QueryRow(query, instrumentCode).Scan)
	if err == sql.ErrNoRows {
		return model.PriceSnapshot{}, false, nil
	}
	if err != nil {
		return model.PriceSnapshot{}, false, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	return s, true, nil
}

// HasDuplicate reports whether a snapshot with the same exchange time label,
// price, and percent change already exists for the instrument. Ingestion uses
// this to keep the history append-only without re-recording unchanged quotes.
func (r *SnapshotRepository) HasDuplicate(s model.PriceSnapshot) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM price_snapshot
		WHERE instrument_code = ?
		AND COALESCE(exchange_time, '') = ?
		AND price = ?
		AND change_pct = ?
	`

	var count int
	err := r.q().QueryRow(query, s.InstrumentCode, s.ExchangeTime, s.Price, s.ChangePct).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check for duplicate snapshot: %w", err)
	}

	return count > 0, nil
}

// InsertSnapshot appends one snapshot row.
func (r *SnapshotRepository) InsertSnapshot(s model.PriceSnapshot) error {
	query := `
		INSERT INTO price_snapshot (instrument_code, price, change_pct, volume, min_price, max_price, exchange_time)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.q().Exec(
		query,
		s.InstrumentCode,
		s.Price,
		s.ChangePct,
		nullFloat(s.Volume),
		nullFloat(s.MinPrice),
		nullFloat(s.MaxPrice),
		s.ExchangeTime,
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// CountSnapshots returns the number of snapshot rows for an instrument.
func (r *SnapshotRepository) CountSnapshots(instrumentCode string) (int, error) {
	var count int
	err := r.q().QueryRow(`SELECT COUNT(*) FROM price_snapshot WHERE instrument_code = ?`, instrumentCode).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count, nil
}

// PruneOlderThan removes snapshot rows older than the cutoff subject to the
// retention rules: each instrument's single most recent row is unconditionally
// preserved, and when keepDaily is set the last row per (instrument, calendar
// day) among the pruned range survives as well. Returns the number of rows removed.
func (r *SnapshotRepository) PruneOlderThan(cutoff time.Time, keepDaily bool) (int64, error) {
	query := `
		DELETE FROM price_snapshot
		WHERE created_at < ?
		AND id NOT IN (
			SELECT MAX(id) FROM price_snapshot GROUP BY instrument_code
		)
	`
	args := []any{cutoff.UTC().Format("2006-01-02 15:04:05")}

	if keepDaily {
		query += `
		AND id NOT IN (
			SELECT MAX(id) FROM price_snapshot
			WHERE created_at < ?
			GROUP BY instrument_code, date(created_at)
		)
		`
		args = append(args, cutoff.UTC().Format("2006-01-02 15:04:05"))
	}

	result, err := r.q().Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return removed, nil
}
