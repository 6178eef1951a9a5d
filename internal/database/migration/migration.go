// Package migration bootstraps the candidates schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is the table whose presence means the schema is already in place.
const sentinelTable = "public.candidates"

var steps = []migrationStep{
	{
		Name: "create_sequence_candidates_id",
		SQL:  `CREATE SEQUENCE IF NOT EXISTS candidates_id_seq AS BIGINT START WITH 1;`,
	},
	{
		Name: "create_table_candidates",
		SQL: `CREATE TABLE IF NOT EXISTS candidates (
  id               BIGINT      PRIMARY KEY,
  full_name        TEXT        NOT NULL,
  dob              TEXT        NOT NULL,
  contact_email    TEXT        NOT NULL,
  contact_number   TEXT        NOT NULL,
  contact_address  TEXT        NOT NULL DEFAULT '',
  education        TEXT        NOT NULL DEFAULT '',
  graduation_year  INTEGER     NOT NULL DEFAULT 0,
  experience       INTEGER     NOT NULL CHECK (experience >= 0),
  skills           JSONB       NOT NULL DEFAULT '[]'::jsonb,
  resume_file_path TEXT        NOT NULL UNIQUE,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "own_sequence_candidates_id",
		SQL:  `ALTER SEQUENCE candidates_id_seq OWNED BY candidates.id;`,
	},
	{
		Name: "create_index_candidates_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_candidates_created_at ON candidates (created_at, id);`,
	},
	{
		Name: "create_index_candidates_graduation_year",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_candidates_graduation_year ON candidates (graduation_year);`,
	},
	{
		Name: "create_index_candidates_experience",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_candidates_experience ON candidates (experience);`,
	},
	{
		Name: "create_index_candidates_skills",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_candidates_skills ON candidates USING GIN (skills);`,
	},
}

// EnsureMigrated creates the schema unless the candidates table already exists.
// Every step is logged through log with the component, event and duration.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *slog.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("component", "database", "db_host", dbHost)

	log.InfoContext(ctx, "db_migration_check", "status", "starting")

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists)
	if err != nil {
		log.ErrorContext(ctx, "db_migration_failed",
			"status", "error",
			"error_message", fmt.Sprintf("failed to check sentinel table: %v", err),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.InfoContext(ctx, "db_migration_skip",
			"status", "success",
			"reason", "schema already exists",
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return nil
	}

	log.InfoContext(ctx, "db_migration_start", "status", "in_progress", "steps", len(steps))

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.ErrorContext(ctx, "db_migration_failed",
				"status", "error",
				"migration_step", step.Name,
				"error_message", err.Error(),
				"duration_ms", time.Since(start).Milliseconds(),
				"step_duration_ms", time.Since(stepStart).Milliseconds(),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.InfoContext(ctx, "db_migration_step",
			"status", "success",
			"migration_step", step.Name,
			"step_duration_ms", time.Since(stepStart).Milliseconds(),
		)
	}

	log.InfoContext(ctx, "db_migration_success",
		"status", "success",
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
