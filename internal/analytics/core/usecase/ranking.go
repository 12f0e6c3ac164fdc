package usecase

import (
	"cmp"
	"context"
	"slices"

	"content-analytics-service/internal/analytics/core/domain"
)

// Top ranks entities by q.Metric over [q.Start, q.End).
func (s *EntityStatistics) Top(ctx context.Context, q StatsQuery) ([]domain.RankingItem, error) {
	return run(ctx, s, "top", q, func(ctx context.Context) ([]domain.RankingItem, error) {
		m, err := s.profile.ranking(q.Metric)
		if err != nil {
			return nil, err
		}
		return s.rank(ctx, m, q)
	})
}

// Creators ranks users by how many entities of this kind they created.
func (s *EntityStatistics) Creators(ctx context.Context, q StatsQuery) ([]domain.RankingItem, error) {
	return run(ctx, s, "creators", q, func(ctx context.Context) ([]domain.RankingItem, error) {
		if s.profile.creators == nil {
			return nil, domain.ErrUnsupportedOperation
		}
		return s.rank(ctx, *s.profile.creators, q)
	})
}

func (s *EntityStatistics) rank(ctx context.Context, m rankMetric, q StatsQuery) ([]domain.RankingItem, error) {
	if err := q.validateRange(); err != nil {
		return nil, err
	}
	if err := q.validateLimit(); err != nil {
		return nil, err
	}
	// Actor rankings have no single entity to filter on.
	if q.EntityID != nil && m.groupBy != domain.GroupByEntity {
		return nil, domain.ErrUnsupportedOperation
	}
	n := q.limitOr(DefaultLimit)

	w := entityWindow{from: q.Start, to: q.End, groupBy: m.groupBy, ids: entityFilter(q.EntityID)}

	totals, perSource, err := s.facade.countByEntity(ctx, m.sources, w)
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.RankingItem, 0, len(totals))
	for id, total := range totals {
		if total > 0 {
			candidates = append(candidates, domain.RankingItem{EntityID: id, PrimaryMetric: total})
		}
	}
	if len(candidates) == 0 {
		return []domain.RankingItem{}, nil
	}

	// Only candidates that can still make the cut need their last activity
	// for the tie-break: everything above the n-th count plus its ties.
	pool := contenders(candidates, n)

	last, err := s.facade.lastActivity(ctx, m.sources, entityWindow{from: q.Start, to: q.End, groupBy: m.groupBy, ids: itemIDs(pool)})
	if err != nil {
		return nil, err
	}
	for i := range pool {
		pool[i].LastActivityDate = timePtr(last, pool[i].EntityID)
	}

	top := domain.TopN(pool, n)
	topIDs := itemIDs(top)

	names, err := s.facade.names(ctx, m.nameKind, topIDs)
	if err != nil {
		return nil, err
	}
	secondary, err := s.secondaryMetrics(ctx, m, perSource, entityWindow{groupBy: m.groupBy, ids: topIDs})
	if err != nil {
		return nil, err
	}

	for i := range top {
		top[i].Name = names[top[i].EntityID]
		top[i].SecondaryMetrics = secondary[top[i].EntityID]
	}
	return top, nil
}

func contenders(candidates []domain.RankingItem, n int) []domain.RankingItem {
	if len(candidates) <= n {
		return candidates
	}
	byCount := slices.Clone(candidates)
	slices.SortFunc(byCount, func(a, b domain.RankingItem) int {
		return cmp.Compare(b.PrimaryMetric, a.PrimaryMetric)
	})
	cut := byCount[n-1].PrimaryMetric
	return slices.DeleteFunc(byCount, func(it domain.RankingItem) bool {
		return it.PrimaryMetric < cut
	})
}

// secondaryMetrics reports the per-source breakdown of a summed ranking plus
// the profile's other rankings that share the same key, read for w.ids only.
// The other rankings are all-time totals: w carries no range.
func (s *EntityStatistics) secondaryMetrics(ctx context.Context, m rankMetric, perSource []map[int64]int64, w entityWindow) (map[int64]map[string]int64, error) {
	out := make(map[int64]map[string]int64, len(w.ids))
	set := func(id int64, name string, v int64) {
		if out[id] == nil {
			out[id] = map[string]int64{}
		}
		out[id][name] = v
	}

	if len(m.sources) > 1 {
		for i, src := range m.sources {
			for _, id := range w.ids {
				set(id, src.Name, perSource[i][id])
			}
		}
	}

	var extra []domain.MetricSource
	for _, other := range s.profile.rankings {
		if other.groupBy != m.groupBy || other.nameKind != m.nameKind || len(other.sources) != 1 {
			continue
		}
		if slices.Contains(m.sources, other.sources[0]) {
			continue
		}
		extra = append(extra, other.sources[0])
	}
	slices.SortFunc(extra, func(a, b domain.MetricSource) int { return cmp.Compare(a.Name, b.Name) })
	if len(extra) == 0 || len(w.ids) == 0 {
		return out, nil
	}

	_, counts, err := s.facade.countByEntity(ctx, extra, w)
	if err != nil {
		return nil, err
	}
	for i, src := range extra {
		for _, id := range w.ids {
			set(id, src.Name, counts[i][id])
		}
	}
	return out, nil
}

func itemIDs(items []domain.RankingItem) []int64 {
	out := make([]int64, len(items))
	for i, it := range items {
		out[i] = it.EntityID
	}
	return out
}
