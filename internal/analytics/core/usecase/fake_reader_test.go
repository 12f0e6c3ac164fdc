package usecase_test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"content-analytics-service/internal/analytics/core/domain"
	"content-analytics-service/internal/analytics/core/ports"
)

// fakeStatsReader is a concurrency-safe StatsReaderPort fake. Unset Fn fields
// return empty results.
type fakeStatsReader struct {
	CountEventsFn   func(ctx context.Context, src domain.MetricSource, from, to time.Time, entityID *int64) (int64, error)
	CountByBucketFn func(ctx context.Context, f ports.EventFilter, mode domain.Mode) ([]domain.BucketCount, error)
	CountByEntityFn func(ctx context.Context, f ports.EntityCountFilter) (map[int64]int64, error)
	LastActivityFn  func(ctx context.Context, f ports.EntityCountFilter) (map[int64]time.Time, error)
	ListEntitiesFn  func(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error)

	mu            sync.Mutex
	bucketCalls   []ports.EventFilter
	entityCalls   []ports.EntityCountFilter
	activityCalls []ports.EntityCountFilter
	listCalls     [][]int64

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

func (f *fakeStatsReader) enter() func() {
	n := f.inFlight.Add(1)
	for {
		cur := f.maxInFlight.Load()
		if n <= cur || f.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	return func() { f.inFlight.Add(-1) }
}

func (f *fakeStatsReader) CountEvents(ctx context.Context, src domain.MetricSource, from, to time.Time, entityID *int64) (int64, error) {
	if f.CountEventsFn != nil {
		return f.CountEventsFn(ctx, src, from, to, entityID)
	}
	return 0, nil
}

func (f *fakeStatsReader) CountByBucket(ctx context.Context, flt ports.EventFilter, mode domain.Mode) ([]domain.BucketCount, error) {
	defer f.enter()()
	f.mu.Lock()
	f.bucketCalls = append(f.bucketCalls, flt)
	f.mu.Unlock()
	if f.CountByBucketFn != nil {
		return f.CountByBucketFn(ctx, flt, mode)
	}
	return nil, nil
}

func (f *fakeStatsReader) CountByEntity(ctx context.Context, flt ports.EntityCountFilter) (map[int64]int64, error) {
	defer f.enter()()
	f.mu.Lock()
	f.entityCalls = append(f.entityCalls, flt)
	f.mu.Unlock()
	if f.CountByEntityFn != nil {
		return f.CountByEntityFn(ctx, flt)
	}
	return map[int64]int64{}, nil
}

func (f *fakeStatsReader) LastActivity(ctx context.Context, flt ports.EntityCountFilter) (map[int64]time.Time, error) {
	defer f.enter()()
	f.mu.Lock()
	f.activityCalls = append(f.activityCalls, flt)
	f.mu.Unlock()
	if f.LastActivityFn != nil {
		return f.LastActivityFn(ctx, flt)
	}
	return map[int64]time.Time{}, nil
}

func (f *fakeStatsReader) ListEntities(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error) {
	defer f.enter()()
	f.mu.Lock()
	f.listCalls = append(f.listCalls, ids)
	f.mu.Unlock()
	if f.ListEntitiesFn != nil {
		return f.ListEntitiesFn(ctx, kind, ids)
	}
	return nil, nil
}

func (f *fakeStatsReader) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bucketCalls) + len(f.entityCalls) + len(f.activityCalls) + len(f.listCalls)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func id64(v int64) *int64 { return &v }

var _ ports.StatsReaderPort = (*fakeStatsReader)(nil)
