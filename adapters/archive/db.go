// Package archive persists titration runs in SQLite or PostgreSQL.
package archive

import (
	"context"

	"titrate/internal/errors"
	"titrate/internal/migration"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Open connects to the archive database and applies migrations.
// driver is "sqlite3" or "postgres".
func Open(ctx context.Context, driver, url string) (*sqlx.DB, error) {
	if url == "" {
		return nil, errors.ConfigInvalid("DATABASE_URL is required when archiving is enabled")
	}

	db, err := sqlx.Connect(driver, url)
	if err != nil {
		return nil, errors.DatabaseError("failed to connect to database", err)
	}

	// an in-memory SQLite database lives only as long as its connection
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	if err := migration.NewRunner().Run(ctx, db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "database migration failed")
	}
	return db, nil
}
