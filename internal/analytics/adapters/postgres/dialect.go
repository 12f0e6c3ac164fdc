package postgres

import (
	"fmt"
	"time"

	"content-analytics-service/internal/analytics/adapters/sqlstore"
	"content-analytics-service/internal/analytics/core/domain"

	"github.com/lib/pq"
)

// Dialect renders queries for PostgreSQL. Timestamp columns are TIMESTAMPTZ.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

func (Dialect) Name() string { return "postgresql" }

func (Dialect) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func (Dialect) TimeArg(t time.Time) any {
	return t.UTC()
}

// Bucket relies on mode being validated by the caller; it is interpolated.
func (Dialect) Bucket(mode domain.Mode, col string) string {
	return fmt.Sprintf("date_trunc('%s', %s AT TIME ZONE 'UTC')", mode, col)
}

func (Dialect) InIDs(col string, ids []int64, args *sqlstore.Args) string {
	return fmt.Sprintf("%s = ANY(%s)", col, args.Add(pq.Array(ids)))
}
