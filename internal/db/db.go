// Package db owns the Postgres connection pool and the pgx/pgvector-backed
// repositories every component reads and writes through. Table shapes and
// the migration-runner wiring follow spec.md's data model; the
// constructor-injection-plus-logger-field repository shape follows the
// teacher's storage layer (internal/storage/badger).
package db

import (
	"context"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	pgxpool "github.com/jackc/pgx/v5/pgxpool"
	"github.com/ternarybob/arbor"

	"github.com/mageshboopath1/Live-ESG-sub001/internal/common"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// DB wraps the shared pgx pool every repository is constructed from.
type DB struct {
	Pool   *pgxpool.Pool
	logger arbor.ILogger
}

// Connect opens the pool against dsn. It does not run migrations; call
// Migrate explicitly so the migration step stays visible at call sites that
// own it (the catalog sync binary, by convention).
func Connect(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, common.Wrap(common.PermanentSystem, "db: new pool", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, common.Wrap(common.Transient, "db: ping", err)
	}
	return &DB{Pool: pool, logger: common.GetLogger()}, nil
}

// Migrate applies every pending migration under migrations/ using the
// embedded filesystem, so the binary carries its own schema and doesn't
// depend on a migrations directory existing on disk at deploy time.
func (d *DB) Migrate(dsn string) error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return common.Wrap(common.PermanentSystem, "db: open migration source", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, dsn)
	if err != nil {
		return common.Wrap(common.PermanentSystem, "db: build migrator", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return common.Wrap(common.PermanentSystem, "db: migrate up", err)
	}
	d.logger.Info().Msg("db: migrations applied")
	return nil
}

// Close releases the pool.
func (d *DB) Close() {
	d.Pool.Close()
}

func wrapQuery(op string, err error) error {
	if err == nil {
		return nil
	}
	return common.Wrap(common.Transient, fmt.Sprintf("db: %s", op), err)
}
