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

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA timezone = 'UTC'",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the embedded goose migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE asset (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			ticker VARCHAR(20),
			category VARCHAR(20) NOT NULL,
			sub_category VARCHAR(50),
			source VARCHAR(20) NOT NULL DEFAULT 'manual',
			current_price FLOAT NOT NULL DEFAULT 0 CHECK (current_price >= 0),
			include_in_net_worth BOOLEAN NOT NULL DEFAULT TRUE,
			is_favorite BOOLEAN NOT NULL DEFAULT FALSE,
			icon VARCHAR(50),
			manual_avg_cost FLOAT,
			external_id VARCHAR(100),
			last_updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX idx_asset_category ON asset(category);
		CREATE INDEX idx_asset_source ON asset(source);

		CREATE TABLE asset_transaction (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			asset_id VARCHAR(36) NOT NULL,
			amount FLOAT NOT NULL,
			unit_cost FLOAT NOT NULL DEFAULT 0,
			date DATE NOT NULL,
			is_transfer BOOLEAN NOT NULL DEFAULT FALSE,
			note VARCHAR(255),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(asset_id) REFERENCES asset(id) ON DELETE CASCADE
		);

		CREATE INDEX idx_transaction_asset_date ON asset_transaction(asset_id, date);

		CREATE TABLE net_worth_snapshot (
			date VARCHAR(10) NOT NULL PRIMARY KEY,
			value FLOAT NOT NULL,
			breakdown TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE goal (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			target_amount FLOAT NOT NULL,
			goal_type VARCHAR(20) NOT NULL,
			currency VARCHAR(3) NOT NULL DEFAULT 'TWD',
			description VARCHAR(255),
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE setting (
			key VARCHAR(100) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE integration (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			provider VARCHAR(50) NOT NULL,
			name VARCHAR(100) NOT NULL,
			api_key TEXT,
			api_secret TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			last_synced_at DATETIME,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
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
		"asset_transaction",
		"integration",
		"asset",
		"net_worth_snapshot",
		"goal",
		"setting",
	}

	for _, table := range tables {
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
