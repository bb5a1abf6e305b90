package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

// Migration represents a database migration. Every statement is idempotent
// so the list can be replayed on each start.
type Migration struct {
	Name string
	SQL  string
}

// Migrations returns the schema steps in the order they run.
func Migrations() []Migration {
	return []Migration{
		{
			Name: "create_resume_sessions",
			SQL: `
		CREATE TABLE IF NOT EXISTS resume_sessions (
			id UUID PRIMARY KEY,
			document JSONB NOT NULL,
			language TEXT NOT NULL DEFAULT '',
			version INTEGER NOT NULL DEFAULT 1,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
		},
		{
			Name: "add_labels_to_resume_sessions",
			SQL: `
		ALTER TABLE resume_sessions
		ADD COLUMN IF NOT EXISTS labels JSONB NOT NULL DEFAULT '{}'::jsonb;`,
		},
		{
			Name: "index_resume_sessions_updated_at",
			SQL: `
		CREATE INDEX IF NOT EXISTS resume_sessions_updated_at_idx
		ON resume_sessions (updated_at);`,
		},
	}
}
