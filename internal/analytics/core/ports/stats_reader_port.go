package ports

import (
	"context"
	"time"

	"content-analytics-service/internal/analytics/core/domain"
)

// EventFilter bounds a bulk read. A zero From or To leaves that side open.
type EventFilter struct {
	Source   domain.MetricSource
	From     time.Time
	To       time.Time
	EntityID *int64 // optional
}

// EntityCountFilter groups a bulk read per entity (or per actor).
type EntityCountFilter struct {
	Source  domain.MetricSource
	From    time.Time
	To      time.Time
	GroupBy domain.Grouping
	IDs     []int64 // optional, restricts the grouped keys
}

// StatsReaderPort is the read-only query capability the engine needs from the
// content store. Every method is a single bulk query; failures are reported as
// *domain.StoreQueryError.
type StatsReaderPort interface {
	domain.WindowCounter

	// CountByBucket returns counts grouped by the mode-truncated event time.
	// Buckets without events are absent.
	CountByBucket(ctx context.Context, f EventFilter, mode domain.Mode) ([]domain.BucketCount, error)

	// CountByEntity returns counts keyed by entity (or actor) id.
	// Keys without events are absent.
	CountByEntity(ctx context.Context, f EntityCountFilter) (map[int64]int64, error)

	// LastActivity returns the latest qualifying event time keyed like
	// CountByEntity.
	LastActivity(ctx context.Context, f EntityCountFilter) (map[int64]time.Time, error)

	// ListEntities returns entities of kind ordered by id; nil ids lists all.
	ListEntities(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error)
}
