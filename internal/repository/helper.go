package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// querier is the subset of *sql.DB / *sql.Tx the repositories run against.
// Repositories default to the DB and switch to a transaction via WithTx so the
// propagation chain can compose every derived write into one atomic unit.
type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ParseTime parses a stored date in "2006-01-02", RFC3339 or
// "2006-01-02 15:04:05" format, normalized to UTC.
func ParseTime(str string) (time.Time, error) {
	returnTime, err := time.Parse("2006-01-02", str)
	if err != nil {
		returnTime, err = time.Parse(time.RFC3339, str)
		if err != nil {
			returnTime, err = time.Parse("2006-01-02 15:04:05", str)
			if err != nil {
				return time.Time{}, fmt.Errorf("failed to parse date: %w", err)
			}
		}
	}
	return returnTime.UTC(), nil
}

// nullString converts an optional string pointer for a nullable column.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// nullFloat converts an optional float pointer for a nullable column.
func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
