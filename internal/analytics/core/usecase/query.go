package usecase

import (
	"time"

	"content-analytics-service/internal/analytics/core/domain"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// StatsQuery is the request shape shared by every facade operation.
// Point-in-time operations ignore Mode, Start and End.
type StatsQuery struct {
	Mode     domain.Mode
	Start    time.Time
	End      time.Time
	Limit    int    // 0 means the operation default
	EntityID *int64 // optional
	Metric   string // ranking metric, "" means the profile default
}

func (q StatsQuery) validateRange() error {
	if q.Start.IsZero() || q.End.IsZero() || !q.Start.Before(q.End) {
		return domain.ErrInvalidRange
	}
	return nil
}

func (q StatsQuery) validateLimit() error {
	if q.Limit < 0 || q.Limit > MaxLimit {
		return domain.ErrInvalidLimit
	}
	return nil
}

// buckets validates the bucketed part of the query before any read is issued.
func (q StatsQuery) buckets() ([]domain.TimeBucket, error) {
	if !q.Mode.Valid() {
		return nil, domain.ErrUnsupportedMode
	}
	if err := q.validateRange(); err != nil {
		return nil, err
	}
	if err := q.validateLimit(); err != nil {
		return nil, err
	}
	return domain.GenerateBuckets(q.Start, q.End, q.Mode)
}

// limitOr returns the requested limit, or def when none was given.
func (q StatsQuery) limitOr(def int) int {
	if q.Limit > 0 {
		return q.Limit
	}
	return def
}

func truncate[T any](items []T, n int) []T {
	if n > 0 && n < len(items) {
		return items[:n]
	}
	return items
}
