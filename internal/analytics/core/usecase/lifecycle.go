package usecase

import (
	"cmp"
	"context"
	"slices"
	"time"

	"content-analytics-service/internal/analytics/core/domain"
)

// Lifecycle reports, for every live entity, how long it stayed in use and
// how often it was used over its whole history.
func (s *EntityStatistics) Lifecycle(ctx context.Context, q StatsQuery) ([]domain.LifecycleItem, error) {
	return run(ctx, s, "lifecycle", q, func(ctx context.Context) ([]domain.LifecycleItem, error) {
		p := s.profile
		if p.usage == nil || p.listKind == "" {
			return nil, domain.ErrUnsupportedOperation
		}
		if err := q.validateLimit(); err != nil {
			return nil, err
		}

		records, totals, last, err := s.usageHistory(ctx, entityFilter(q.EntityID))
		if err != nil {
			return nil, err
		}

		items := make([]domain.LifecycleItem, 0, len(records))
		for _, r := range records {
			if r.IsDeleted {
				continue
			}
			lastUsed := timePtr(last, r.ID)
			items = append(items, domain.LifecycleItem{
				EntityID:      r.ID,
				Name:          r.Name,
				CreateDate:    r.CreateDate,
				LastUsedDate:  lastUsed,
				LifecycleDays: domain.LifecycleSpanDays(r.CreateDate, lastUsed),
				TotalUsage:    totals[r.ID],
				IsActive:      r.IsActive,
			})
		}

		slices.SortFunc(items, func(a, b domain.LifecycleItem) int {
			if c := cmp.Compare(b.TotalUsage, a.TotalUsage); c != 0 {
				return c
			}
			return cmp.Compare(a.EntityID, b.EntityID)
		})
		return truncate(items, q.Limit), nil
	})
}

// Efficiency relates usage inside [q.Start, q.End) to the current number of
// subscribers of each usable entity.
func (s *EntityStatistics) Efficiency(ctx context.Context, q StatsQuery) ([]domain.EfficiencyItem, error) {
	return run(ctx, s, "efficiency", q, func(ctx context.Context) ([]domain.EfficiencyItem, error) {
		p := s.profile
		if p.usage == nil || p.subscribers == nil || p.listKind == "" {
			return nil, domain.ErrUnsupportedOperation
		}
		if err := q.validateRange(); err != nil {
			return nil, err
		}
		if err := q.validateLimit(); err != nil {
			return nil, err
		}
		ids := entityFilter(q.EntityID)

		var (
			records     []domain.EntityRecord
			usage, subs map[int64]int64
		)
		err := s.facade.parallel(ctx,
			func(ctx context.Context) error {
				var err error
				records, err = s.facade.reader.ListEntities(ctx, p.listKind, ids)
				return err
			},
			func(ctx context.Context) error {
				var err error
				usage, _, err = s.facade.countByEntity(ctx, []domain.MetricSource{*p.usage},
					entityWindow{from: q.Start, to: q.End, groupBy: domain.GroupByEntity, ids: ids})
				return err
			},
			func(ctx context.Context) error {
				var err error
				subs, _, err = s.facade.countByEntity(ctx, []domain.MetricSource{*p.subscribers},
					entityWindow{groupBy: domain.GroupByEntity, ids: ids})
				return err
			},
		)
		if err != nil {
			return nil, err
		}

		items := make([]domain.EfficiencyItem, 0, len(records))
		for _, r := range records {
			if !r.Usable() {
				continue
			}
			items = append(items, domain.EfficiencyItem{
				EntityID:         r.ID,
				Name:             r.Name,
				UsageCount:       usage[r.ID],
				SubscriberCount:  subs[r.ID],
				EfficiencyRatio:  domain.EfficiencyRatio(usage[r.ID], subs[r.ID]),
				AverageFrequency: domain.AverageFrequency(usage[r.ID], q.Start, q.End),
			})
		}

		slices.SortFunc(items, func(a, b domain.EfficiencyItem) int {
			if c := cmp.Compare(b.EfficiencyRatio, a.EfficiencyRatio); c != 0 {
				return c
			}
			if c := cmp.Compare(b.UsageCount, a.UsageCount); c != 0 {
				return c
			}
			return cmp.Compare(a.EntityID, b.EntityID)
		})
		return truncate(items, q.limitOr(DefaultLimit)), nil
	})
}

var severity = map[domain.Recommendation]int{
	domain.RecommendDelete:  0,
	domain.RecommendArchive: 1,
	domain.RecommendKeep:    2,
}

// Cleanup classifies every live entity against the cleanup thresholds as of
// now. It never looks at a query range.
func (s *EntityStatistics) Cleanup(ctx context.Context, q StatsQuery) ([]domain.RecommendationItem, error) {
	return run(ctx, s, "cleanup", q, func(ctx context.Context) ([]domain.RecommendationItem, error) {
		p := s.profile
		if p.usage == nil || p.listKind == "" {
			return nil, domain.ErrUnsupportedOperation
		}
		if err := q.validateLimit(); err != nil {
			return nil, err
		}

		records, _, last, err := s.usageHistory(ctx, entityFilter(q.EntityID))
		if err != nil {
			return nil, err
		}

		now := s.facade.now().UTC()
		th := s.facade.thresholds

		items := make([]domain.RecommendationItem, 0, len(records))
		for _, r := range records {
			if r.IsDeleted {
				continue
			}
			lastUsed := timePtr(last, r.ID)
			rec, unused := th.Classify(r.CreateDate, lastUsed, now)
			items = append(items, domain.RecommendationItem{
				EntityID:       r.ID,
				Name:           r.Name,
				CreateDate:     r.CreateDate,
				LastUsedDate:   lastUsed,
				DaysUnused:     unused,
				Recommendation: rec,
			})
		}

		slices.SortFunc(items, func(a, b domain.RecommendationItem) int {
			if c := cmp.Compare(severity[a.Recommendation], severity[b.Recommendation]); c != 0 {
				return c
			}
			if c := cmp.Compare(b.DaysUnused, a.DaysUnused); c != 0 {
				return c
			}
			return cmp.Compare(a.EntityID, b.EntityID)
		})
		return truncate(items, q.Limit), nil
	})
}

// StatusDistribution partitions every entity of the kind by status.
func (s *EntityStatistics) StatusDistribution(ctx context.Context) ([]domain.StatusShare, error) {
	return run(ctx, s, "status_distribution", StatsQuery{}, func(ctx context.Context) ([]domain.StatusShare, error) {
		if s.profile.listKind == "" {
			return nil, domain.ErrUnsupportedOperation
		}
		records, err := s.facade.reader.ListEntities(ctx, s.profile.listKind, nil)
		if err != nil {
			return nil, err
		}
		return domain.StatusDistribution(records), nil
	})
}

// usageHistory loads the entities with their all-time usage totals and last
// usage, in three concurrent bulk reads.
func (s *EntityStatistics) usageHistory(ctx context.Context, ids []int64) ([]domain.EntityRecord, map[int64]int64, map[int64]time.Time, error) {
	p := s.profile
	sources := []domain.MetricSource{*p.usage}
	w := entityWindow{groupBy: domain.GroupByEntity, ids: ids}

	var (
		records []domain.EntityRecord
		totals  map[int64]int64
		last    map[int64]time.Time
	)
	err := s.facade.parallel(ctx,
		func(ctx context.Context) error {
			var err error
			records, err = s.facade.reader.ListEntities(ctx, p.listKind, ids)
			return err
		},
		func(ctx context.Context) error {
			var err error
			totals, _, err = s.facade.countByEntity(ctx, sources, w)
			return err
		},
		func(ctx context.Context) error {
			var err error
			last, err = s.facade.lastActivity(ctx, sources, w)
			return err
		},
	)
	if err != nil {
		return nil, nil, nil, err
	}
	return records, totals, last, nil
}
