package sqlstore

import (
	"fmt"
	"time"

	"content-analytics-service/internal/analytics/core/domain"
)

// Dialect covers the few places where Postgres and SQLite disagree.
type Dialect interface {
	Name() string
	// Placeholder returns the n-th (1-based) bind parameter.
	Placeholder(n int) string
	// TimeArg converts a UTC bound into the driver's comparable form.
	TimeArg(t time.Time) any
	// Bucket returns an expression truncating col to the start of its mode unit, in UTC.
	Bucket(mode domain.Mode, col string) string
	// InIDs returns a predicate restricting col to ids, binding through args.
	InIDs(col string, ids []int64, args *Args) string
}

// Args accumulates bind parameters while a query is built.
type Args struct {
	dialect Dialect
	values  []any
}

func NewArgs(d Dialect) *Args {
	return &Args{dialect: d}
}

// Add binds v and returns its placeholder.
func (a *Args) Add(v any) string {
	a.values = append(a.values, v)
	return a.dialect.Placeholder(len(a.values))
}

func (a *Args) Values() []any {
	return a.values
}

// toTime accepts the shapes drivers hand back for timestamp expressions:
// time.Time from lib/pq, text from SQLite aggregates.
func toTime(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		return parseTime(t)
	case []byte:
		return parseTime(string(t))
	default:
		return time.Time{}, fmt.Errorf("unexpected timestamp type %T", v)
	}
}

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
