package sqlite

import (
	"context"
	"database/sql"

	"content-analytics-service/internal/analytics/adapters/sqlstore"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"
)

// Open opens the database at path. Use ":memory:" for tests; the pool is
// pinned to one connection so the in-memory database is shared.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite", goerr.V("path", path))
	}
	sqlstore.Pool{MaxOpenConns: 1, MaxIdleConns: 1}.Apply(db)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to ping sqlite", goerr.V("path", path))
	}
	return db, nil
}

// CreateSchema creates the content tables when missing.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return goerr.Wrap(err, "failed to create schema")
	}
	return nil
}

func NewRepository(db *sql.DB) *sqlstore.StatsRepository {
	d := Dialect{}
	return sqlstore.NewStatsRepository(sqlstore.NewSQLDB(db, d.Name()), d)
}
