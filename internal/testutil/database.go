package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the goose migrations.
//
//nolint:funlen // Database schema DDL
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Instrument table
		CREATE TABLE instrument (
			code VARCHAR(10) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			icon_url VARCHAR(255)
		);

		-- Price snapshot table
		CREATE TABLE price_snapshot (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			instrument_code VARCHAR(10) NOT NULL,
			price FLOAT NOT NULL,
			change_pct FLOAT NOT NULL,
			volume FLOAT,
			min_price FLOAT,
			max_price FLOAT,
			exchange_time VARCHAR(10),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(instrument_code) REFERENCES instrument(code) ON DELETE RESTRICT
		);

		-- Investor table
		CREATE TABLE investor (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			email VARCHAR(254),
			phone VARCHAR(20),
			tax_id VARCHAR(20),
			risk_profile VARCHAR(10) NOT NULL DEFAULT 'medium',
			invested_source VARCHAR(12) NOT NULL DEFAULT 'investments',
			total_invested FLOAT NOT NULL DEFAULT 0,
			monthly_contribution FLOAT NOT NULL DEFAULT 0,
			start_date DATE,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL
		);

		-- Fund table
		CREATE TABLE fund (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			currency VARCHAR(3) NOT NULL DEFAULT 'TRY',
			management_fee FLOAT NOT NULL DEFAULT 0,
			risk_level VARCHAR(10) NOT NULL DEFAULT 'medium',
			target_return FLOAT,
			initial_value FLOAT NOT NULL DEFAULT 0,
			current_value FLOAT NOT NULL DEFAULT 0,
			total_shares FLOAT NOT NULL DEFAULT 0,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL
		);

		-- Portfolio table
		CREATE TABLE portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			investor_id VARCHAR(36),
			fund_id VARCHAR(36),
			currency VARCHAR(3) NOT NULL DEFAULT 'TRY',
			risk_level VARCHAR(10) NOT NULL DEFAULT 'medium',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE SET NULL,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE SET NULL
		);

		-- Position table
		CREATE TABLE position (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			instrument_code VARCHAR(10) NOT NULL,
			quantity FLOAT NOT NULL DEFAULT 0,
			average_cost FLOAT NOT NULL DEFAULT 0,
			is_open BOOLEAN NOT NULL DEFAULT TRUE,
			open_date DATE NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE,
			FOREIGN KEY(instrument_code) REFERENCES instrument(code) ON DELETE RESTRICT,
			CONSTRAINT unique_portfolio_instrument UNIQUE (portfolio_id, instrument_code)
		);

		-- Transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			portfolio_id VARCHAR(36) NOT NULL,
			investor_id VARCHAR(36),
			instrument_code VARCHAR(10) NOT NULL,
			type VARCHAR(10) NOT NULL,
			date DATE NOT NULL,
			price FLOAT NOT NULL,
			quantity FLOAT NOT NULL,
			commission FLOAT NOT NULL DEFAULT 0,
			tax FLOAT NOT NULL DEFAULT 0,
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE SET NULL,
			FOREIGN KEY(instrument_code) REFERENCES instrument(code) ON DELETE RESTRICT
		);

		-- Fund share table
		CREATE TABLE fund_share (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fund_id VARCHAR(36) NOT NULL,
			investor_id VARCHAR(36) NOT NULL,
			shares_count FLOAT NOT NULL DEFAULT 0,
			initial_investment FLOAT NOT NULL,
			entry_date DATE NOT NULL,
			notes TEXT,
			FOREIGN KEY(fund_id) REFERENCES fund(id) ON DELETE CASCADE,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE,
			CONSTRAINT unique_fund_investor UNIQUE (fund_id, investor_id)
		);

		-- Investment (cash contribution) table
		CREATE TABLE investment (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			investor_id VARCHAR(36) NOT NULL,
			amount FLOAT NOT NULL,
			date DATE NOT NULL,
			type VARCHAR(20) NOT NULL DEFAULT 'additional',
			notes TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP NOT NULL,
			FOREIGN KEY(investor_id) REFERENCES investor(id) ON DELETE CASCADE
		);

		-- System setting table
		CREATE TABLE system_setting (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			"key" VARCHAR(32) NOT NULL UNIQUE,
			value VARCHAR(1024) NOT NULL,
			updated_at DATETIME
		);

		-- Goose bookkeeping table, seeded so schema version reads work
		CREATE TABLE goose_db_version (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			version_id INTEGER NOT NULL,
			is_applied INTEGER NOT NULL,
			tstamp DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO goose_db_version (version_id, is_applied) VALUES (0, 1);
		INSERT INTO goose_db_version (version_id, is_applied) VALUES (1, 1);

		-- Indexes for performance
		CREATE INDEX ix_price_snapshot_instrument ON price_snapshot(instrument_code);
		CREATE INDEX ix_price_snapshot_instrument_created ON price_snapshot(instrument_code, created_at);
		CREATE INDEX ix_position_portfolio_id ON position(portfolio_id);
		CREATE INDEX ix_transaction_portfolio_id ON "transaction"(portfolio_id);
		CREATE INDEX ix_transaction_portfolio_instrument ON "transaction"(portfolio_id, instrument_code);
		CREATE INDEX ix_transaction_date ON "transaction"(date);
		CREATE INDEX ix_fund_share_fund_id ON fund_share(fund_id);
		CREATE INDEX ix_fund_share_investor_id ON fund_share(investor_id);
		CREATE INDEX ix_investment_investor_id ON investment(investor_id);
		CREATE INDEX ix_portfolio_fund_id ON portfolio(fund_id);
	`

	_, err := db.Exec(schema)
	return err
}

// CleanDatabase truncates all tables in dependency order.
// Useful for reusing the same database across multiple tests.
func CleanDatabase(t *testing.T, db *sql.DB) {
	t.Helper()

	// Order matters: delete children before parents due to foreign keys
	tables := []string{
		"investment",
		"fund_share",
		`"transaction"`,
		"position",
		"portfolio",
		"fund",
		"investor",
		"price_snapshot",
		"instrument",
		"system_setting",
	}

	for _, table := range tables {
		//nolint:gosec // G202: Table names are from hardcoded slice, no SQL injection risk
		query := "DELETE FROM " + table
		if _, err := db.Exec(query); err != nil {
			t.Fatalf("Failed to clean table %s: %v", table, err)
		}
	}
}

// CountRows returns the number of rows in a table.
// Useful for assertions in tests.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()

	var count int
	query := "SELECT COUNT(*) FROM " + table
	err := db.QueryRow(query).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}

	return count
}

// AssertRowCount asserts that a table has the expected number of rows.
func AssertRowCount(t *testing.T, db *sql.DB, table string, expected int) {
	t.Helper()

	actual := CountRows(t, db, table)
	if actual != expected {
		t.Errorf("Expected %d rows in %s, got %d", expected, table, actual)
	}
}
