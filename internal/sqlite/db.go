package sqlite

import (
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" gets its own empty database.
	if isPrivateMemory(dataSourceName) {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return &DB{db}, nil
}

func isPrivateMemory(dsn string) bool {
	return dsn == ":memory:" || (strings.Contains(dsn, "mode=memory") && !strings.Contains(dsn, "cache=shared"))
}

// RunMigrations creates the journal schema if it is missing.
func (db *DB) RunMigrations() error {
	migration := `
-- Roster journal
CREATE TABLE IF NOT EXISTS roster_journal (
    id TEXT PRIMARY KEY,
    activity TEXT NOT NULL,
    email TEXT NOT NULL,
    entry_type TEXT NOT NULL CHECK(entry_type IN ('signup', 'removal')),
    summary TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    seq INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_journal_activity ON roster_journal(activity);
CREATE INDEX IF NOT EXISTS idx_journal_email ON roster_journal(email);
CREATE INDEX IF NOT EXISTS idx_journal_created_at ON roster_journal(created_at);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
