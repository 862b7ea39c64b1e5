package db

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// ApplyMigrations applies the embedded schema SQL to the database and
// performs lightweight post-creation migrations (adding new columns when
// needed).
func ApplyMigrations(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	if err := ensurePipelineColumns(db); err != nil {
		return err
	}
	return nil
}

// ensurePipelineColumns checks for optional columns and adds them when
// missing, so databases created by older releases keep working.
func ensurePipelineColumns(db *sql.DB) error {
	rows, err := db.Query("PRAGMA table_info(pipelines)")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if !cols["pause_on_error"] {
		if _, err := db.Exec("ALTER TABLE pipelines ADD COLUMN pause_on_error INTEGER NOT NULL DEFAULT 0"); err != nil {
			return err
		}
	}
	if !cols["last_run"] {
		if _, err := db.Exec("ALTER TABLE pipelines ADD COLUMN last_run TEXT"); err != nil {
			return err
		}
	}
	return nil
}
