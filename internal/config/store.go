package config

import (
	"context"
	"database/sql"
	"log/slog"
	"net/url"
	"time"

	"content-analytics-service/internal/analytics/adapters/postgres"
	"content-analytics-service/internal/analytics/adapters/sqlite"
	"content-analytics-service/internal/analytics/adapters/sqlstore"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Store holds content store configuration
type Store struct {
	Driver          string
	PostgresDSN     string
	SQLitePath      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Flags returns CLI flags for Store configuration
func (s *Store) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "store-driver",
			Usage:       "Content store driver (postgres, sqlite)",
			Category:    "Store",
			Value:       DriverPostgres,
			Sources:     cli.EnvVars("ANALYTICS_STORE_DRIVER"),
			Destination: &s.Driver,
		},
		&cli.StringFlag{
			Name:        "postgres-dsn",
			Usage:       "Postgres connection string",
			Category:    "Store",
			Sources:     cli.EnvVars("POSTGRES_DSN"),
			Destination: &s.PostgresDSN,
		},
		&cli.StringFlag{
			Name:        "sqlite-path",
			Usage:       "SQLite database file",
			Category:    "Store",
			Value:       "analytics.db",
			Sources:     cli.EnvVars("ANALYTICS_SQLITE_PATH"),
			Destination: &s.SQLitePath,
		},
		&cli.IntFlag{
			Name:        "db-max-open-conns",
			Usage:       "Maximum open connections",
			Category:    "Store",
			Value:       20,
			Sources:     cli.EnvVars("ANALYTICS_DB_MAX_OPEN_CONNS"),
			Destination: &s.MaxOpenConns,
		},
		&cli.IntFlag{
			Name:        "db-max-idle-conns",
			Usage:       "Maximum idle connections",
			Category:    "Store",
			Value:       10,
			Sources:     cli.EnvVars("ANALYTICS_DB_MAX_IDLE_CONNS"),
			Destination: &s.MaxIdleConns,
		},
		&cli.DurationFlag{
			Name:        "db-conn-max-lifetime",
			Usage:       "Maximum connection lifetime",
			Category:    "Store",
			Value:       30 * time.Minute,
			Sources:     cli.EnvVars("ANALYTICS_DB_CONN_MAX_LIFETIME"),
			Destination: &s.ConnMaxLifetime,
		},
	}
}

func (s *Store) Validate() error {
	switch s.Driver {
	case DriverPostgres:
		if s.PostgresDSN == "" {
			return goerr.New("POSTGRES_DSN is not set")
		}
	case DriverSQLite:
		if s.SQLitePath == "" {
			return goerr.New("sqlite path is required")
		}
	default:
		return goerr.New("invalid store driver", goerr.V("driver", s.Driver))
	}
	if s.MaxOpenConns < 0 || s.MaxIdleConns < 0 {
		return goerr.New("pool sizes must not be negative",
			goerr.V("max_open", s.MaxOpenConns),
			goerr.V("max_idle", s.MaxIdleConns))
	}
	return nil
}

// Open connects to the configured store.
func (s *Store) Open(ctx context.Context) (*sql.DB, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	if s.Driver == DriverSQLite {
		return sqlite.Open(ctx, s.SQLitePath)
	}
	return postgres.Open(ctx, s.PostgresDSN, sqlstore.Pool{
		MaxOpenConns:    s.MaxOpenConns,
		MaxIdleConns:    s.MaxIdleConns,
		ConnMaxLifetime: s.ConnMaxLifetime,
	})
}

// Repository returns the read adapter for db.
func (s *Store) Repository(db *sql.DB) *sqlstore.StatsRepository {
	if s.Driver == DriverSQLite {
		return sqlite.NewRepository(db)
	}
	return postgres.NewRepository(db)
}

// CreateSchema creates the content tables in the configured store.
func (s *Store) CreateSchema(ctx context.Context, db *sql.DB) error {
	if s.Driver == DriverSQLite {
		return sqlite.CreateSchema(ctx, db)
	}
	return postgres.CreateSchema(ctx, db)
}

// LogValue returns structured log value. Credentials are not logged.
func (s Store) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("driver", s.Driver)}
	switch s.Driver {
	case DriverSQLite:
		attrs = append(attrs, slog.String("path", s.SQLitePath))
	default:
		attrs = append(attrs,
			slog.String("dsn", redactDSN(s.PostgresDSN)),
			slog.Int("max_open_conns", s.MaxOpenConns),
			slog.Int("max_idle_conns", s.MaxIdleConns),
			slog.Duration("conn_max_lifetime", s.ConnMaxLifetime),
		)
	}
	return slog.GroupValue(attrs...)
}

func redactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.Scheme == "" {
		if dsn == "" {
			return ""
		}
		return "[redacted]"
	}
	return u.Redacted()
}
