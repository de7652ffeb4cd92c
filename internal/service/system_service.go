package service

import (
	"database/sql"

	"github.com/ekaraca/bist-portfolio-backend/internal/database"
	"github.com/ekaraca/bist-portfolio-backend/internal/model"
	"github.com/ekaraca/bist-portfolio-backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	settings *SettingsService
}

// NewSystemService creates a new SystemService
func NewSystemService(db *sql.DB, settings *SettingsService) *SystemService {
	return &SystemService{
		db:       db,
		settings: settings,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// GetVersion returns version information together with feature availability:
// market-data ingestion is only usable once an API key has been stored.
func (s *SystemService) GetVersion() (model.VersionInfo, error) {
	dbVersion, err := database.SchemaVersion(s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	return model.VersionInfo{
		AppVersion: version.Version,
		DbVersion:  dbVersion,
		Features: map[string]bool{
			"ingest": s.settings.HasAPIKey(),
		},
	}, nil
}
