package usecase

import (
	"context"
	"slices"
	"time"

	"content-analytics-service/internal/analytics/core/domain"
)

const trendMetric = "count"

// Overview returns one gap-filled row per bucket carrying every overview
// metric of the entity kind.
func (s *EntityStatistics) Overview(ctx context.Context, q StatsQuery) ([]domain.MetricRow, error) {
	return run(ctx, s, "overview", q, func(ctx context.Context) ([]domain.MetricRow, error) {
		if len(s.profile.overview) == 0 {
			return nil, domain.ErrUnsupportedOperation
		}
		if err := s.checkEntityFilter(q); err != nil {
			return nil, err
		}
		buckets, err := q.buckets()
		if err != nil {
			return nil, err
		}

		return s.facade.pipeline.Aggregate(ctx, AggregateRequest{
			Buckets:  buckets,
			Mode:     q.Mode,
			From:     q.Start,
			To:       q.End,
			Sources:  s.profile.overview,
			EntityID: q.EntityID,
		})
	})
}

// UsageTrend sums the usage streams per bucket and folds the series into
// bucket-over-bucket growth points.
func (s *EntityStatistics) UsageTrend(ctx context.Context, q StatsQuery) ([]domain.TrendPoint, error) {
	return run(ctx, s, "usage_trend", q, func(ctx context.Context) ([]domain.TrendPoint, error) {
		if len(s.profile.trend) == 0 {
			return nil, domain.ErrUnsupportedOperation
		}
		if err := s.checkEntityFilter(q); err != nil {
			return nil, err
		}
		buckets, err := q.buckets()
		if err != nil {
			return nil, err
		}

		rows, err := s.facade.pipeline.Aggregate(ctx, AggregateRequest{
			Buckets:  buckets,
			Mode:     q.Mode,
			From:     q.Start,
			To:       q.End,
			Sources:  s.profile.trend,
			EntityID: q.EntityID,
		})
		if err != nil {
			return nil, err
		}

		summed := make([]domain.MetricRow, len(rows))
		for i, row := range rows {
			var total int64
			for _, src := range s.profile.trend {
				total += row.Value(src.Name)
			}
			summed[i] = domain.MetricRow{Bucket: row.Bucket, Metrics: map[string]int64{trendMetric: total}}
		}
		return domain.GrowthSeries(summed, trendMetric), nil
	})
}

// Trending compares usage in the last bucket of the range, clipped to q.End,
// against the full bucket before it and returns the fastest growing entities.
func (s *EntityStatistics) Trending(ctx context.Context, q StatsQuery) ([]domain.EntityAnalyticsSnapshot, error) {
	return run(ctx, s, "trending", q, func(ctx context.Context) ([]domain.EntityAnalyticsSnapshot, error) {
		p := s.profile
		if len(p.trend) != 1 || p.listKind == "" {
			return nil, domain.ErrUnsupportedOperation
		}
		buckets, err := q.buckets()
		if err != nil {
			return nil, err
		}

		current := buckets[len(buckets)-1]
		if q.End.Before(current.End) {
			current.End = q.End
		}
		previous := domain.TimeBucket{
			Start: q.Mode.Truncate(current.Start.Add(-time.Nanosecond)),
			End:   current.Start,
		}
		sources := p.trend
		ids := entityFilter(q.EntityID)

		var cur, prev map[int64]int64
		err = s.facade.parallel(ctx,
			func(ctx context.Context) error {
				var err error
				cur, _, err = s.facade.countByEntity(ctx, sources, entityWindow{from: current.Start, to: current.End, groupBy: domain.GroupByEntity, ids: ids})
				return err
			},
			func(ctx context.Context) error {
				var err error
				prev, _, err = s.facade.countByEntity(ctx, sources, entityWindow{from: previous.Start, to: previous.End, groupBy: domain.GroupByEntity, ids: ids})
				return err
			},
		)
		if err != nil {
			return nil, err
		}

		snapshots := make([]domain.EntityAnalyticsSnapshot, 0, len(cur)+len(prev))
		for id := range union(cur, prev) {
			snapshots = append(snapshots, domain.EntityAnalyticsSnapshot{
				EntityID:      id,
				CurrentCount:  cur[id],
				PreviousCount: prev[id],
				GrowthRate:    domain.GrowthRate(cur[id], prev[id]),
			})
		}
		slices.SortFunc(snapshots, domain.CompareSnapshots)
		snapshots = truncate(snapshots, q.limitOr(DefaultLimit))

		top := make([]int64, len(snapshots))
		for i, snap := range snapshots {
			top[i] = snap.EntityID
		}

		var names map[int64]string
		var last map[int64]time.Time
		err = s.facade.parallel(ctx,
			func(ctx context.Context) error {
				var err error
				names, err = s.facade.names(ctx, p.listKind, top)
				return err
			},
			func(ctx context.Context) error {
				var err error
				last, err = s.facade.lastActivity(ctx, sources, entityWindow{to: current.End, groupBy: domain.GroupByEntity, ids: top})
				return err
			},
		)
		if err != nil {
			return nil, err
		}

		for i := range snapshots {
			snapshots[i].Name = names[snapshots[i].EntityID]
			snapshots[i].LastActivityDate = timePtr(last, snapshots[i].EntityID)
		}
		return snapshots, nil
	})
}

// checkEntityFilter rejects an entity filter on kinds that span several
// target tables, where a single id is ambiguous.
func (s *EntityStatistics) checkEntityFilter(q StatsQuery) error {
	if q.EntityID != nil && s.profile.listKind == "" {
		return domain.ErrUnsupportedOperation
	}
	return nil
}

func union(a, b map[int64]int64) map[int64]struct{} {
	out := make(map[int64]struct{}, len(a)+len(b))
	for id := range a {
		out[id] = struct{}{}
	}
	for id := range b {
		out[id] = struct{}{}
	}
	return out
}
