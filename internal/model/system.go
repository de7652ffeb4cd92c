package model

// VersionInfo contains version and feature information for the application.
type VersionInfo struct {
	AppVersion string          `json:"app_version"`
	DbVersion  string          `json:"db_version"`
	Features   map[string]bool `json:"features"`
}

// IngestResult reports the outcome of one market-data ingestion run.
// Attempted counts every quote in the upstream payload; Succeeded counts new
// snapshot rows; Skipped counts duplicate-suppressed quotes. Failed quotes are
// logged and excluded from Succeeded without aborting the run.
type IngestResult struct {
	Succeeded int `json:"succeeded"`
	Attempted int `json:"attempted"`
	Skipped   int `json:"skipped"`
}
