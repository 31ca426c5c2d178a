package postgres

import (
	"context"
	"log"

	"happydash/internal/errors"
	"happydash/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Connect opens the database, checks it is reachable and applies migrations.
// driver is "postgres" or "sqlite".
func Connect(ctx context.Context, driver, url string) (*sqlx.DB, error) {
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required")
	}

	db, err := sqlx.ConnectContext(ctx, driver, url)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	if driver == "sqlite" {
		// SQLite allows one writer; a single connection avoids "database is locked"
		db.SetMaxOpenConns(1)
	}

	migrator := migration.NewRunner()
	if err := migrator.Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}

	log.Printf("[Database] Connected via %s (schema %s)", driver, migrator.Version())
	return db, nil
}
