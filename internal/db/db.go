// Package db opens the local SQLite file shared by the site server and the
// CLI. It holds two kinds of data:
//
//   - client_state: the admin session and UI preferences (see clientstate)
//   - property_snapshot: the last catalog fetched from the agency API, used
//     when the API is down (see property.Repository)
//
// Neither is authoritative; the agency API owns every listing.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// busyTimeoutMS is how long a writer waits for the lock when the server
// and a CLI command touch the file at the same time.
const busyTimeoutMS = 5000

// Dir returns the per-user settings directory, ~/.config/realty. The CLI
// config file lives next to the database.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".config", "realty"), nil
}

// DefaultPath returns the default database path inside Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "state.db"), nil
}

// Open opens or creates the database at path and brings its schema up to
// date. The parent directory is created if needed.
func Open(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := migrate(db); err != nil {
		if cerr := db.Close(); cerr != nil {
			return nil, fmt.Errorf("running migrations: %w (also failed to close: %v)", err, cerr)
		}
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return db, nil
}

// dsn carries the pragmas as go-sqlite3 parameters so every pooled
// connection gets them, not just the first.
func dsn(path string) string {
	return fmt.Sprintf("%s?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=%d", path, busyTimeoutMS)
}
