package database

import (
	"database/sql"
	"fmt"
	"log"
)

// Migration is one versioned schema change
type Migration struct {
	Version int
	Name    string
	SQL     string
}

// migrations is the ordered schema history of the tracking store
var migrations = []Migration{
	{
		Version: 1,
		Name:    "tracking_tables",
		SQL: `
			CREATE TABLE IF NOT EXISTS runs (
				id TEXT PRIMARY KEY,
				experiment TEXT NOT NULL,
				name TEXT NOT NULL,
				status TEXT NOT NULL,
				started_at TIMESTAMP NOT NULL,
				finished_at TIMESTAMP
			);
			CREATE TABLE IF NOT EXISTS params (
				run_id TEXT NOT NULL REFERENCES runs(id),
				key TEXT NOT NULL,
				value TEXT NOT NULL,
				PRIMARY KEY (run_id, key)
			);
			CREATE TABLE IF NOT EXISTS metrics (
				run_id TEXT NOT NULL REFERENCES runs(id),
				key TEXT NOT NULL,
				value REAL NOT NULL,
				PRIMARY KEY (run_id, key)
			);
			CREATE TABLE IF NOT EXISTS artifacts (
				run_id TEXT NOT NULL REFERENCES runs(id),
				path TEXT NOT NULL,
				PRIMARY KEY (run_id, path)
			);
		`,
	},
	{
		Version: 2,
		Name:    "model_registry",
		SQL: `
			CREATE TABLE IF NOT EXISTS model_registry (
				name TEXT NOT NULL,
				version INTEGER NOT NULL,
				stage TEXT NOT NULL DEFAULT 'None',
				run_id TEXT NOT NULL REFERENCES runs(id),
				artifact_path TEXT NOT NULL,
				created_at TIMESTAMP NOT NULL,
				PRIMARY KEY (name, version)
			);
			CREATE INDEX IF NOT EXISTS idx_registry_stage ON model_registry(name, stage);
		`,
	},
}

// Migrate applies every pending migration in version order
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied := make(map[int]bool)
	rows, err := db.Query("SELECT version FROM migrations ORDER BY version")
	if err != nil {
		return fmt.Errorf("failed to query migrations: %w", err)
	}
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			rows.Close()
			return fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	rows.Close()

	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}

		err := Transaction(db, func(tx *sql.Tx) error {
			if _, err := tx.Exec(m.SQL); err != nil {
				return fmt.Errorf("failed to apply migration %d_%s: %w", m.Version, m.Name, err)
			}
			if _, err := tx.Exec("INSERT INTO migrations (version, name) VALUES (?, ?)", m.Version, m.Name); err != nil {
				return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}

		log.Printf("[Database] Applied migration %d_%s", m.Version, m.Name)
	}

	return nil
}
