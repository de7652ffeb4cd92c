package testutil

import (
	"database/sql"
	"math/rand"
	"testing"

	"github.com/google/uuid"

	"github.com/ekaraca/bist-portfolio-backend/internal/collectapi"
	"github.com/ekaraca/bist-portfolio-backend/internal/repository"
	"github.com/ekaraca/bist-portfolio-backend/internal/service"
)

// TestFernetKey is a fixed base64url-encoded 32-byte key for settings tests.
const TestFernetKey = "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

// NewTestPropagator wires a Propagator against the given test database.
func NewTestPropagator(t *testing.T, db *sql.DB) *service.Propagator {
	t.Helper()

	return service.NewPropagator(
		db,
		repository.NewTransactionRepository(db),
		repository.NewPositionRepository(db),
		repository.NewPortfolioRepository(db),
		repository.NewFundRepository(db),
		repository.NewInvestorRepository(db),
		repository.NewInvestmentRepository(db),
	)
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	return service.NewTransactionService(
		NewTestPropagator(t, db),
		repository.NewTransactionRepository(db),
		repository.NewPortfolioRepository(db),
		repository.NewInstrumentRepository(db),
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		NewTestPropagator(t, db),
		repository.NewPortfolioRepository(db),
		repository.NewPositionRepository(db),
	)
}

func NewTestFundService(t *testing.T, db *sql.DB) *service.FundService {
	t.Helper()

	return service.NewFundService(
		NewTestPropagator(t, db),
		repository.NewFundRepository(db),
		repository.NewFundShareRepository(db),
		repository.NewInvestorRepository(db),
	)
}

func NewTestInvestorService(t *testing.T, db *sql.DB) *service.InvestorService {
	t.Helper()

	return service.NewInvestorService(
		NewTestPropagator(t, db),
		repository.NewInvestorRepository(db),
		repository.NewFundShareRepository(db),
	)
}

func NewTestInvestmentService(t *testing.T, db *sql.DB) *service.InvestmentService {
	t.Helper()

	return service.NewInvestmentService(
		NewTestPropagator(t, db),
		repository.NewInvestmentRepository(db),
		repository.NewInvestorRepository(db),
	)
}

func NewTestInstrumentService(t *testing.T, db *sql.DB) *service.InstrumentService {
	t.Helper()

	return service.NewInstrumentService(
		repository.NewInstrumentRepository(db),
		repository.NewSnapshotRepository(db),
	)
}

func NewTestRetentionService(t *testing.T, db *sql.DB) *service.RetentionService {
	t.Helper()

	return service.NewRetentionService(repository.NewSnapshotRepository(db))
}

func NewTestSettingsService(t *testing.T, db *sql.DB) *service.SettingsService {
	t.Helper()

	settingsService, err := service.NewSettingsService(repository.NewSettingRepository(db), TestFernetKey)
	if err != nil {
		t.Fatalf("Failed to create settings service: %v", err)
	}
	return settingsService
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db, NewTestSettingsService(t, db))
}

// NewTestIngestService creates an IngestService backed by the given market-data
// client, typically a *MockCollectClient.
func NewTestIngestService(t *testing.T, db *sql.DB, client collectapi.Client) *service.IngestService {
	t.Helper()

	return service.NewIngestService(
		db,
		client,
		NewTestSettingsService(t, db),
		repository.NewInstrumentRepository(db),
		repository.NewSnapshotRepository(db),
		"",
	)
}

// MakeID generates a UUID string for use in tests.
func MakeID() string {
	return uuid.New().String()
}

// MakeInstrumentCode generates a BIST-style instrument code for testing.
//
// Example usage:
//
//	code := testutil.MakeInstrumentCode("TST")
//	// Returns: "TSTAB"
func MakeInstrumentCode(prefix string) string {
	if prefix == "" {
		prefix = "TST"
	}
	return prefix + randomAlphanumeric(2)
}

// MakeName generates a unique display name for testing.
func MakeName(base string) string {
	if base == "" {
		base = "Test"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
