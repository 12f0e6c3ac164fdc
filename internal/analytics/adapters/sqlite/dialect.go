package sqlite

import (
	"fmt"
	"strings"
	"time"

	"content-analytics-service/internal/analytics/adapters/sqlstore"
	"content-analytics-service/internal/analytics/core/domain"
)

// TimeLayout is how timestamps are stored: UTC text that sorts lexically.
const TimeLayout = "2006-01-02 15:04:05"

// Dialect renders queries for SQLite.
type Dialect struct{}

var _ sqlstore.Dialect = Dialect{}

func (Dialect) Name() string { return "sqlite" }

func (Dialect) Placeholder(int) string { return "?" }

func (Dialect) TimeArg(t time.Time) any {
	return t.UTC().Format(TimeLayout)
}

// Bucket truncates with strftime; weeks step back to Monday.
func (Dialect) Bucket(mode domain.Mode, col string) string {
	switch mode {
	case domain.ModeWeek:
		return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s, 'weekday 0', '-6 days')", col)
	case domain.ModeMonth:
		return fmt.Sprintf("strftime('%%Y-%%m-01', %s)", col)
	case domain.ModeYear:
		return fmt.Sprintf("strftime('%%Y-01-01', %s)", col)
	default:
		return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", col)
	}
}

func (Dialect) InIDs(col string, ids []int64, args *sqlstore.Args) string {
	marks := make([]string, len(ids))
	for i, id := range ids {
		marks[i] = args.Add(id)
	}
	return fmt.Sprintf("%s IN (%s)", col, strings.Join(marks, ", "))
}
