package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ekaraca/bist-portfolio-backend/internal/apperrors"
)

// SettingRepository provides data access methods for the system_setting table.
type SettingRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSettingRepository creates a new SettingRepository with the provided database connection.
func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// WithTx returns a copy of the repository that runs against the given transaction.
func (r *SettingRepository) WithTx(tx *sql.Tx) *SettingRepository {
	return &SettingRepository{db: r.db, tx: tx}
}

func (r *SettingRepository) q() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetSetting returns the value stored under the given key.
func (r *SettingRepository) GetSetting(key string) (string, error) {
	var value string
	err := r.q().QueryRow(`SELECT value FROM system_setting WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query system_setting: %w", err)
	}
	return value, nil
}

// SetSetting stores a value under the given key, replacing any existing value.
func (r *SettingRepository) SetSetting(key, value string) error {
	query := `
		INSERT INTO system_setting (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	_, err := r.q().Exec(query, key, value, time.Now().UTC().Format("2006-01-02 15:04:05"))
	if err != nil {
		return fmt.Errorf("failed to upsert system_setting: %w", err)
	}

	return nil
}

// DeleteSetting removes a key. Missing keys are not an error.
func (r *SettingRepository) DeleteSetting(key string) error {
	_, err := r.q().Exec(`DELETE FROM system_setting WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("failed to delete system_setting: %w", err)
	}
	return nil
}
