package postgres

import (
	"context"
	"database/sql"

	"content-analytics-service/internal/analytics/adapters/sqlstore"

	_ "github.com/lib/pq"
	"github.com/m-mizutani/goerr/v2"
)

// Open connects to Postgres, sizes the pool and pings once.
func Open(ctx context.Context, dsn string, pool sqlstore.Pool) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open postgres")
	}
	pool.Apply(db)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, goerr.Wrap(err, "failed to ping postgres")
	}
	return db, nil
}

func NewRepository(db *sql.DB) *sqlstore.StatsRepository {
	d := Dialect{}
	return sqlstore.NewStatsRepository(sqlstore.NewSQLDB(db, d.Name()), d)
}
