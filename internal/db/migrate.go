package db

import (
	"database/sql"
	"fmt"
	"strings"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schedule_documents (
		artifact_id TEXT PRIMARY KEY,
		revision    INTEGER NOT NULL DEFAULT 1,
		payload     TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_schedule_documents_updated_at
		ON schedule_documents(updated_at)`,
}

// Migrate runs all schema migrations. Statements are written to be
// re-runnable; "duplicate column name" errors from ALTER TABLE are
// tolerated since the migration system re-runs all statements.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
