package migration

import (
	"context"

	"happydash/internal/errors"

	"github.com/jmoiron/sqlx"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

// MigrationRunner handles database schema migrations. The statements are
// portable between PostgreSQL and SQLite.
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{
		version: "1.0.0",
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createRecordsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create happiness_records table")
	}

	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}

	return nil
}

// createRecordsTable stores one row per source row; duplicates are kept and
// seq preserves source order
func (r *MigrationRunner) createRecordsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS happiness_records (
			seq INTEGER NOT NULL,
			country VARCHAR(255) NOT NULL,
			year INTEGER NOT NULL,
			life_eval DOUBLE PRECISION,
			gdp DOUBLE PRECISION,
			social_support DOUBLE PRECISION,
			healthy_life DOUBLE PRECISION,
			freedom DOUBLE PRECISION,
			generosity DOUBLE PRECISION,
			corruption DOUBLE PRECISION
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_happiness_records_seq ON happiness_records(seq)`,
		`CREATE INDEX IF NOT EXISTS idx_happiness_records_country_year ON happiness_records(country, year)`,
	}
	for _, stmt := range indexes {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
