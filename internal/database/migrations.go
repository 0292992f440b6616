package database

import (
	"database/sql"
	"fmt"
)

// Migration is one versioned schema step.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations are applied in order; versions already recorded in the
// migrations table are skipped.
var migrations = []Migration{
	{
		Version: 1,
		Name:    "create_observations",
		SQL: `
			CREATE TABLE IF NOT EXISTS observations (
				station TEXT NOT NULL,
				date    TEXT NOT NULL,
				field   TEXT NOT NULL,
				value   REAL NOT NULL,
				PRIMARY KEY (station, date, field)
			);
			CREATE INDEX IF NOT EXISTS idx_observations_station_field
				ON observations (station, field, date);
		`,
	},
}

// Migrate brings the schema up to date.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("query migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return fmt.Errorf("scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("apply migration %d (%s): %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec(
				"INSERT INTO migrations (version, name) VALUES (?, ?)",
				m.Version, m.Name,
			); err != nil {
				return fmt.Errorf("record migration %d: %w", m.Version, err)
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}
