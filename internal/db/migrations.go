package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS client_state (
		key        TEXT     PRIMARY KEY,
		value      TEXT     NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS property_snapshot (
		id          INTEGER PRIMARY KEY,
		position    INTEGER NOT NULL,
		title       TEXT    NOT NULL,
		price       TEXT    NOT NULL DEFAULT '',
		price_value REAL    NOT NULL CHECK (price_value >= 0),
		location    TEXT    NOT NULL DEFAULT '',
		bedrooms    INTEGER NOT NULL DEFAULT 0 CHECK (bedrooms >= 0),
		bathrooms   INTEGER NOT NULL DEFAULT 0 CHECK (bathrooms >= 0),
		area        TEXT    NOT NULL DEFAULT '',
		area_value  REAL    NOT NULL DEFAULT 0 CHECK (area_value >= 0),
		type        TEXT    NOT NULL CHECK (type IN ('apartment', 'house', 'land', 'commercial')),
		operation   TEXT    NOT NULL CHECK (operation IN ('buy', 'rent')),
		image       TEXT    NOT NULL DEFAULT '',
		badge       TEXT    NOT NULL DEFAULT '',
		is_new      INTEGER NOT NULL DEFAULT 0
	)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	// Column additions, skipped when the column already exists
	columnMigrations := []struct {
		table, column, definition string
	}{
		{"property_snapshot", "saved_at", "DATETIME"},
	}

	for _, cm := range columnMigrations {
		if err := addColumnIfNotExists(db, cm.table, cm.column, cm.definition); err != nil {
			return fmt.Errorf("adding %s.%s: %w", cm.table, cm.column, err)
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(db *sql.DB, table, column, definition string) error {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("checking table info: %w", err)
	}

	found := false
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("iterating columns: %w", err)
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("closing rows: %w", err)
	}
	if found {
		return nil
	}

	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}
