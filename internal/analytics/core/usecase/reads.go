package usecase

import (
	"context"
	"time"

	"content-analytics-service/internal/analytics/core/domain"
	"content-analytics-service/internal/analytics/core/ports"

	"golang.org/x/sync/errgroup"
)

// parallel runs fns on an errgroup capped at maxWorkers. The first failure
// cancels the rest.
func (f *StatisticsFacade) parallel(ctx context.Context, fns ...func(ctx context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.maxWorkers)
	for _, fn := range fns {
		g.Go(func() error { return fn(gctx) })
	}
	return g.Wait()
}

type entityWindow struct {
	from, to time.Time
	groupBy  domain.Grouping
	ids      []int64
}

func (w entityWindow) filter(src domain.MetricSource) ports.EntityCountFilter {
	return ports.EntityCountFilter{Source: src, From: w.from, To: w.to, GroupBy: w.groupBy, IDs: w.ids}
}

// countByEntity issues one bulk read per source and returns the summed counts
// along with the per-source breakdown.
func (f *StatisticsFacade) countByEntity(ctx context.Context, sources []domain.MetricSource, w entityWindow) (map[int64]int64, []map[int64]int64, error) {
	if w.ids != nil && len(w.ids) == 0 {
		return map[int64]int64{}, make([]map[int64]int64, len(sources)), nil
	}
	for _, src := range sources {
		if err := src.Validate(); err != nil {
			return nil, nil, err
		}
		if !src.SupportsGrouping(w.groupBy) {
			return nil, nil, domain.ErrUnsupportedSource
		}
	}

	perSource := make([]map[int64]int64, len(sources))
	fns := make([]func(context.Context) error, len(sources))
	for i, src := range sources {
		fns[i] = func(ctx context.Context) error {
			counts, err := f.reader.CountByEntity(ctx, w.filter(src))
			if err != nil {
				return err
			}
			perSource[i] = counts
			return nil
		}
	}
	if err := f.parallel(ctx, fns...); err != nil {
		return nil, nil, err
	}

	total := make(map[int64]int64)
	for _, counts := range perSource {
		for id, n := range counts {
			total[id] += n
		}
	}
	return total, perSource, nil
}

// lastActivity returns the most recent qualifying event per key across sources.
func (f *StatisticsFacade) lastActivity(ctx context.Context, sources []domain.MetricSource, w entityWindow) (map[int64]time.Time, error) {
	if w.ids != nil && len(w.ids) == 0 {
		return map[int64]time.Time{}, nil
	}
	perSource := make([]map[int64]time.Time, len(sources))
	fns := make([]func(context.Context) error, len(sources))
	for i, src := range sources {
		fns[i] = func(ctx context.Context) error {
			last, err := f.reader.LastActivity(ctx, w.filter(src))
			if err != nil {
				return err
			}
			perSource[i] = last
			return nil
		}
	}
	if err := f.parallel(ctx, fns...); err != nil {
		return nil, err
	}

	out := make(map[int64]time.Time)
	for _, last := range perSource {
		for id, ts := range last {
			if cur, ok := out[id]; !ok || ts.After(cur) {
				out[id] = ts
			}
		}
	}
	return out, nil
}

// names resolves display names for ids with a single bulk read.
func (f *StatisticsFacade) names(ctx context.Context, kind domain.EntityKind, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	records, err := f.reader.ListEntities(ctx, kind, ids)
	if err != nil {
		return nil, err
	}
	for _, r := range records {
		out[r.ID] = r.Name
	}
	return out, nil
}

func entityFilter(id *int64) []int64 {
	if id == nil {
		return nil
	}
	return []int64{*id}
}

func timePtr(m map[int64]time.Time, id int64) *time.Time {
	ts, ok := m[id]
	if !ok {
		return nil
	}
	return &ts
}
