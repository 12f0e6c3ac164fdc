package sqlstore

import (
	"context"
	"database/sql"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("content-analytics-service/sqlstore")

type RowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DB is the slice of *sql.DB the repository needs, so tests can swap in a fake.
type DB interface {
	QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error)
}

// sqlRows ends the query span once the caller is done iterating.
type sqlRows struct {
	rows *sql.Rows
	span trace.Span
}

func (r *sqlRows) Next() bool {
	return r.rows.Next()
}

func (r *sqlRows) Scan(dest ...any) error {
	return r.rows.Scan(dest...)
}

func (r *sqlRows) Err() error {
	return r.rows.Err()
}

func (r *sqlRows) Close() error {
	defer r.span.End()
	if err := r.rows.Err(); err != nil {
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, "row iteration failed")
	}
	return r.rows.Close()
}

type sqlDB struct {
	db     *sql.DB
	system string
}

// NewSQLDB wraps db; system names the engine on query spans ("postgresql", "sqlite").
func NewSQLDB(db *sql.DB, system string) DB {
	return &sqlDB{db: db, system: system}
}

func (s *sqlDB) QueryContext(ctx context.Context, query string, args ...any) (RowScanner, error) {
	ctx, span := tracer.Start(ctx, "sql.query", trace.WithAttributes(
		attribute.String("db.system", s.system),
		attribute.Int("db.args", len(args)),
	))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		span.End()
		return nil, err
	}
	return &sqlRows{rows: rows, span: span}, nil
}
