package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"content-analytics-service/internal/analytics/core/domain"
	"content-analytics-service/internal/analytics/core/ports"
	"content-analytics-service/internal/analytics/core/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	ops  []string
	errs []error
}

func (r *fakeRecorder) ObserveQuery(entity, op string, d time.Duration, err error) {
	r.ops = append(r.ops, entity+"."+op)
	r.errs = append(r.errs, err)
}

// ------------------------------------------------------------
// OVERVIEW (end-to-end tag scenario)
// ------------------------------------------------------------

func TestTagOverview_Scenario(t *testing.T) {
	reader := &fakeStatsReader{
		CountByBucketFn: func(ctx context.Context, f ports.EventFilter, mode domain.Mode) ([]domain.BucketCount, error) {
			switch {
			case f.Source.Event == domain.EventEntityCreated:
				return []domain.BucketCount{{BucketStart: date(2024, 1, 1), Count: 1}}, nil
			case f.Source.Event == domain.EventMappingCreated:
				return []domain.BucketCount{
					{BucketStart: date(2024, 1, 2), Count: 1},
					{BucketStart: date(2024, 1, 3), Count: 1},
					{BucketStart: date(2024, 1, 5), Count: 1},
				}, nil
			}
			return nil, nil
		},
	}
	rec := &fakeRecorder{}
	facade := usecase.NewStatisticsFacade(reader, usecase.WithRecorder(rec))

	rows, err := facade.Tags().Overview(context.Background(), usecase.StatsQuery{
		Mode:  domain.ModeDay,
		Start: date(2024, 1, 1),
		End:   date(2024, 1, 6),
	})
	require.NoError(t, err)
	require.Len(t, rows, 5)

	series := func(name string) []int64 {
		out := make([]int64, len(rows))
		for i, r := range rows {
			out[i] = r.Value(name)
		}
		return out
	}
	assert.Equal(t, []int64{0, 1, 1, 0, 1}, series("tag_mapping_count"))
	assert.Equal(t, []int64{1, 0, 0, 0, 0}, series("new_tag_count"))
	assert.Equal(t, []int64{0, 0, 0, 0, 0}, series("tag_unsubscription_count"))

	assert.Len(t, reader.bucketCalls, 6, "one read per overview metric")
	assert.Equal(t, []string{"tag.overview"}, rec.ops)
	assert.Nil(t, rec.errs[0])
}

func TestOverview_ValidationHappensBeforeReads(t *testing.T) {
	reader := &fakeStatsReader{}
	facade := usecase.NewStatisticsFacade(reader)

	_, err := facade.Tags().Overview(context.Background(), usecase.StatsQuery{
		Mode: domain.ModeDay, Start: date(2024, 1, 6), End: date(2024, 1, 1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = facade.Categories().Overview(context.Background(), usecase.StatsQuery{
		Mode: "quarter", Start: date(2024, 1, 1), End: date(2024, 1, 6),
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedMode)

	_, err = facade.Subscriptions().Overview(context.Background(), usecase.StatsQuery{
		Mode: domain.ModeDay, Start: date(2024, 1, 1), End: date(2024, 1, 6), EntityID: id64(1),
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	assert.Zero(t, reader.totalCalls())
}

func TestOverview_StoreErrorIsWrapped(t *testing.T) {
	reader := &fakeStatsReader{
		CountByBucketFn: func(ctx context.Context, f ports.EventFilter, mode domain.Mode) ([]domain.BucketCount, error) {
			return nil, &domain.StoreQueryError{Op: "count_by_bucket", Source: f.Source.String(), Err: errors.New("boom")}
		},
	}
	rec := &fakeRecorder{}
	facade := usecase.NewStatisticsFacade(reader, usecase.WithRecorder(rec))

	rows, err := facade.Users().Overview(context.Background(), usecase.StatsQuery{
		Mode: domain.ModeWeek, Start: date(2024, 1, 1), End: date(2024, 2, 1),
	})
	assert.Nil(t, rows)

	var sqe *domain.StoreQueryError
	assert.ErrorAs(t, err, &sqe)
	require.Len(t, rec.errs, 1)
	assert.Error(t, rec.errs[0])
}

// ------------------------------------------------------------
// TREND
// ------------------------------------------------------------

func TestSubscriptionTrend_SumsAddedStreams(t *testing.T) {
	reader := &fakeStatsReader{
		CountByBucketFn: func(ctx context.Context, f ports.EventFilter, mode domain.Mode) ([]domain.BucketCount, error) {
			assert.Equal(t, domain.EventSubscriptionAdded, f.Source.Event)
			return []domain.BucketCount{
				{BucketStart: date(2024, 1, 1), Count: 1},
				{BucketStart: date(2024, 2, 1), Count: 2},
			}, nil
		},
	}
	facade := usecase.NewStatisticsFacade(reader)

	points, err := facade.Subscriptions().UsageTrend(context.Background(), usecase.StatsQuery{
		Mode: domain.ModeMonth, Start: date(2024, 1, 1), End: date(2024, 3, 1),
	})
	require.NoError(t, err)
	require.Len(t, points, 2)

	assert.Equal(t, int64(3), points[0].Count)
	assert.Equal(t, 0.0, points[0].GrowthRate)
	assert.Equal(t, int64(6), points[1].Count)
	assert.Equal(t, int64(3), points[1].PreviousCount)
	assert.Equal(t, 1.0, points[1].GrowthRate)
	assert.Len(t, reader.bucketCalls, 3)
}

// ------------------------------------------------------------
// TRENDING
// ------------------------------------------------------------

func TestTagTrending_ComparesLastTwoBuckets(t *testing.T) {
	reader := &fakeStatsReader{
		CountByEntityFn: func(ctx context.Context, f ports.EntityCountFilter) (map[int64]int64, error) {
			assert.Equal(t, domain.GroupByEntity, f.GroupBy)
			if f.From.Equal(date(2024, 1, 8)) {
				assert.Equal(t, date(2024, 1, 10), f.To, "current bucket ends at the query end")
				return map[int64]int64{1: 4, 2: 6, 3: 2}, nil
			}
			assert.Equal(t, date(2024, 1, 1), f.From)
			assert.Equal(t, date(2024, 1, 8), f.To)
			return map[int64]int64{1: 2, 2: 6, 4: 5}, nil
		},
		ListEntitiesFn: func(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error) {
			assert.Equal(t, domain.EntityTag, kind)
			return []domain.EntityRecord{{ID: 1, Name: "go"}, {ID: 2, Name: "rust"}}, nil
		},
	}
	facade := usecase.NewStatisticsFacade(reader)

	// 2024-01-10 is a Wednesday: the last bucket is the week of Monday 2024-01-08.
	snaps, err := facade.Tags().Trending(context.Background(), usecase.StatsQuery{
		Mode: domain.ModeWeek, Start: date(2024, 1, 1), End: date(2024, 1, 10), Limit: 3,
	})
	require.NoError(t, err)
	require.Len(t, snaps, 3)

	assert.Equal(t, int64(1), snaps[0].EntityID)
	assert.Equal(t, 1.0, snaps[0].GrowthRate)
	assert.Equal(t, "go", snaps[0].Name)

	// 2 (no change) and 3 (no previous activity) both report 0; higher current count wins.
	assert.Equal(t, int64(2), snaps[1].EntityID)
	assert.Equal(t, int64(3), snaps[2].EntityID)
	assert.Equal(t, "", snaps[2].Name)

	require.Len(t, reader.listCalls, 1)
	assert.ElementsMatch(t, []int64{1, 2, 3}, reader.listCalls[0])

	require.Len(t, reader.activityCalls, 1)
	assert.Equal(t, date(2024, 1, 10), reader.activityCalls[0].To)
}

func TestUserTrending_Followers(t *testing.T) {
	reader := &fakeStatsReader{
		CountByEntityFn: func(ctx context.Context, f ports.EntityCountFilter) (map[int64]int64, error) {
			assert.Equal(t, domain.EntityUser, f.Source.Target)
			assert.Equal(t, domain.EventSubscriptionAdded, f.Source.Event)
			if f.From.Equal(date(2024, 2, 1)) {
				return map[int64]int64{5: 3}, nil
			}
			return map[int64]int64{5: 1}, nil
		},
	}
	facade := usecase.NewStatisticsFacade(reader)

	snaps, err := facade.Users().Trending(context.Background(), usecase.StatsQuery{
		Mode: domain.ModeMonth, Start: date(2024, 1, 1), End: date(2024, 3, 1),
	})
	require.NoError(t, err)
	require.Len(t, snaps, 1)
	assert.Equal(t, int64(3), snaps[0].CurrentCount)
	assert.Equal(t, 2.0, snaps[0].GrowthRate)
}

// ------------------------------------------------------------
// TOP-N
// ------------------------------------------------------------

func TestTagTop_EnrichesSelectedIDsOnly(t *testing.T) {
	counts := map[int64]int64{}
	for id := int64(1); id <= 20; id++ {
		counts[id] = id % 5
	}
	// ids 4, 9, 14, 19 have 4 each; ids 3, 8, 13, 18 have 3 each.

	lastSeen := date(2024, 1, 20)
	reader := &fakeStatsReader{
		CountByEntityFn: func(ctx context.Context, f ports.EntityCountFilter) (map[int64]int64, error) {
			if f.Source.Event == domain.EventMappingCreated {
				return counts, nil
			}
			out := map[int64]int64{}
			for _, id := range f.IDs {
				out[id] = 100 + id
			}
			return out, nil
		},
		LastActivityFn: func(ctx context.Context, f ports.EntityCountFilter) (map[int64]time.Time, error) {
			return map[int64]time.Time{13: lastSeen}, nil
		},
		ListEntitiesFn: func(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error) {
			out := make([]domain.EntityRecord, 0, len(ids))
			for _, id := range ids {
				out = append(out, domain.EntityRecord{ID: id, Name: "tag"})
			}
			return out, nil
		},
	}
	facade := usecase.NewStatisticsFacade(reader)

	top, err := facade.Tags().Top(context.Background(), usecase.StatsQuery{
		Start: date(2024, 1, 1), End: date(2024, 2, 1), Limit: 5,
	})
	require.NoError(t, err)
	require.Len(t, top, 5)

	assert.Equal(t, []int64{4, 9, 14, 19, 13}, []int64{top[0].EntityID, top[1].EntityID, top[2].EntityID, top[3].EntityID, top[4].EntityID})
	assert.Equal(t, 5, top[4].Rank)
	require.NotNil(t, top[4].LastActivityDate)
	assert.Equal(t, lastSeen, *top[4].LastActivityDate)
	assert.Equal(t, int64(109), top[1].SecondaryMetrics["subscriber_count"])

	require.Len(t, reader.activityCalls, 1)
	assert.ElementsMatch(t, []int64{4, 9, 14, 19, 3, 8, 13, 18}, reader.activityCalls[0].IDs, "only contenders for the cut")

	require.Len(t, reader.listCalls, 1)
	assert.ElementsMatch(t, []int64{4, 9, 14, 19, 13}, reader.listCalls[0])

	// one grouped read for the ranking, one for the secondary metric
	require.Len(t, reader.entityCalls, 2)
	assert.Equal(t, date(2024, 1, 1), reader.entityCalls[0].From)
	assert.Equal(t, domain.EventSubscriptionAdded, reader.entityCalls[1].Source.Event)
	assert.True(t, reader.entityCalls[1].From.IsZero() && reader.entityCalls[1].To.IsZero(), "secondary metrics are all-time")
}

func TestTop_UnknownMetricAndLimits(t *testing.T) {
	facade := usecase.NewStatisticsFacade(&fakeStatsReader{})
	q := usecase.StatsQuery{Start: date(2024, 1, 1), End: date(2024, 2, 1)}

	q.Metric = "views"
	_, err := facade.Tags().Top(context.Background(), q)
	assert.ErrorIs(t, err, domain.ErrUnknownMetric)

	q.Metric = ""
	q.Limit = usecase.MaxLimit + 1
	_, err = facade.Users().Top(context.Background(), q)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)

	q.Limit = 0
	top, err := facade.Posts().Top(context.Background(), q)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestUserTop_PostsGroupedByAuthor(t *testing.T) {
	reader := &fakeStatsReader{
		CountByEntityFn: func(ctx context.Context, f ports.EntityCountFilter) (map[int64]int64, error) {
			assert.Equal(t, domain.GroupByActor, f.GroupBy)
			assert.Equal(t, domain.EntityPost, f.Source.Target)
			return map[int64]int64{10: 2, 11: 7}, nil
		},
		ListEntitiesFn: func(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error) {
			assert.Equal(t, domain.EntityUser, kind)
			return []domain.EntityRecord{{ID: 10, Name: "ada"}, {ID: 11, Name: "linus"}}, nil
		},
	}
	facade := usecase.NewStatisticsFacade(reader)

	top, err := facade.Users().Top(context.Background(), usecase.StatsQuery{
		Start: date(2024, 1, 1), End: date(2024, 2, 1), Metric: "posts",
	})
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "linus", top[0].Name)
	assert.Equal(t, int64(7), top[0].PrimaryMetric)
}

func TestTop_ActorRankingsRejectEntityFilter(t *testing.T) {
	reader := &fakeStatsReader{}
	facade := usecase.NewStatisticsFacade(reader)
	ctx := context.Background()
	q := usecase.StatsQuery{Start: date(2024, 1, 1), End: date(2024, 2, 1), EntityID: id64(7)}

	_, err := facade.Tags().Creators(ctx, q)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	q.Metric = "posts"
	_, err = facade.Users().Top(ctx, q)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	q.Metric = ""
	_, err = facade.Subscriptions().Top(ctx, q)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	assert.Zero(t, reader.totalCalls())

	q.Metric = "followers"
	_, err = facade.Users().Top(ctx, q)
	require.NoError(t, err)
	require.Len(t, reader.entityCalls, 1)
	assert.Equal(t, []int64{7}, reader.entityCalls[0].IDs)
}

func TestCategoryCreators(t *testing.T) {
	reader := &fakeStatsReader{
		CountByEntityFn: func(ctx context.Context, f ports.EntityCountFilter) (map[int64]int64, error) {
			assert.Equal(t, domain.GroupByActor, f.GroupBy)
			assert.Equal(t, domain.EventEntityCreated, f.Source.Event)
			return map[int64]int64{7: 3}, nil
		},
	}
	facade := usecase.NewStatisticsFacade(reader)

	top, err := facade.Categories().Creators(context.Background(), usecase.StatsQuery{
		Start: date(2024, 1, 1), End: date(2024, 2, 1),
	})
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, int64(7), top[0].EntityID)

	_, err = facade.Users().Creators(context.Background(), usecase.StatsQuery{Start: date(2024, 1, 1), End: date(2024, 2, 1)})
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)
}

// ------------------------------------------------------------
// POINT-IN-TIME
// ------------------------------------------------------------

func TestTagCleanup_ClassifiesAgainstClock(t *testing.T) {
	now := date(2025, 6, 1)
	ago := func(days int) time.Time { return now.AddDate(0, 0, -days) }

	reader := &fakeStatsReader{
		ListEntitiesFn: func(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error) {
			return []domain.EntityRecord{
				{ID: 1, Name: "fresh", IsActive: true, CreateDate: ago(400)},
				{ID: 2, Name: "stale", IsActive: true, CreateDate: ago(400)},
				{ID: 3, Name: "never", IsActive: true, CreateDate: ago(10)},
				{ID: 4, Name: "ancient", IsActive: true, CreateDate: ago(900)},
				{ID: 5, Name: "gone", IsDeleted: true, CreateDate: ago(900)},
			}, nil
		},
		LastActivityFn: func(ctx context.Context, f ports.EntityCountFilter) (map[int64]time.Time, error) {
			assert.True(t, f.From.IsZero(), "cleanup looks at all-time usage")
			return map[int64]time.Time{1: ago(5), 2: ago(200), 4: ago(500)}, nil
		},
	}
	facade := usecase.NewStatisticsFacade(reader, usecase.WithClock(func() time.Time { return now }))

	items, err := facade.Tags().Cleanup(context.Background(), usecase.StatsQuery{})
	require.NoError(t, err)
	require.Len(t, items, 4, "deleted entities are not candidates")

	got := map[int64]domain.Recommendation{}
	for _, it := range items {
		got[it.EntityID] = it.Recommendation
	}
	assert.Equal(t, domain.RecommendKeep, got[1])
	assert.Equal(t, domain.RecommendArchive, got[2])
	assert.Equal(t, domain.RecommendDelete, got[3])
	assert.Equal(t, domain.RecommendDelete, got[4])

	assert.Equal(t, int64(4), items[0].EntityID, "most unused deletion first")
	assert.Equal(t, int64(3), items[1].EntityID)
	assert.Equal(t, 10, items[1].DaysUnused)
	assert.Nil(t, items[1].LastUsedDate)
}

func TestCleanup_CustomThresholds(t *testing.T) {
	now := date(2025, 6, 1)
	reader := &fakeStatsReader{
		ListEntitiesFn: func(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error) {
			return []domain.EntityRecord{{ID: 1, IsActive: true, CreateDate: date(2020, 1, 1)}}, nil
		},
		LastActivityFn: func(ctx context.Context, f ports.EntityCountFilter) (map[int64]time.Time, error) {
			return map[int64]time.Time{1: now.AddDate(0, 0, -40)}, nil
		},
	}
	facade := usecase.NewStatisticsFacade(reader,
		usecase.WithClock(func() time.Time { return now }),
		usecase.WithThresholds(domain.Thresholds{ArchiveAfterDays: 30, DeleteAfterDays: 60}),
	)

	items, err := facade.Categories().Cleanup(context.Background(), usecase.StatsQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.RecommendArchive, items[0].Recommendation)
}

func TestTagLifecycle(t *testing.T) {
	reader := &fakeStatsReader{
		ListEntitiesFn: func(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error) {
			return []domain.EntityRecord{
				{ID: 1, Name: "go", IsActive: true, CreateDate: date(2024, 1, 1)},
				{ID: 2, Name: "idle", IsActive: false, CreateDate: date(2024, 2, 1)},
				{ID: 3, Name: "gone", IsDeleted: true, CreateDate: date(2024, 1, 1)},
			}, nil
		},
		CountByEntityFn: func(ctx context.Context, f ports.EntityCountFilter) (map[int64]int64, error) {
			return map[int64]int64{1: 12}, nil
		},
		LastActivityFn: func(ctx context.Context, f ports.EntityCountFilter) (map[int64]time.Time, error) {
			return map[int64]time.Time{1: date(2024, 3, 1)}, nil
		},
	}
	facade := usecase.NewStatisticsFacade(reader)

	items, err := facade.Tags().Lifecycle(context.Background(), usecase.StatsQuery{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, int64(1), items[0].EntityID)
	assert.Equal(t, int64(12), items[0].TotalUsage)
	require.NotNil(t, items[0].LifecycleDays)
	assert.Equal(t, 60, *items[0].LifecycleDays)

	assert.Nil(t, items[1].LifecycleDays)
	assert.False(t, items[1].IsActive)

	items, err = facade.Tags().Lifecycle(context.Background(), usecase.StatsQuery{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestTagEfficiency(t *testing.T) {
	reader := &fakeStatsReader{
		ListEntitiesFn: func(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error) {
			return []domain.EntityRecord{
				{ID: 1, Name: "go", IsActive: true},
				{ID: 2, Name: "rust", IsActive: true},
				{ID: 3, Name: "off", IsActive: false},
			}, nil
		},
		CountByEntityFn: func(ctx context.Context, f ports.EntityCountFilter) (map[int64]int64, error) {
			if f.Source.Event == domain.EventSubscriptionAdded {
				assert.True(t, f.From.IsZero() && f.To.IsZero(), "subscribers are counted all-time")
				return map[int64]int64{1: 4, 3: 1}, nil
			}
			assert.Equal(t, date(2024, 1, 1), f.From)
			return map[int64]int64{1: 12, 2: 5, 3: 9}, nil
		},
	}
	facade := usecase.NewStatisticsFacade(reader)

	items, err := facade.Tags().Efficiency(context.Background(), usecase.StatsQuery{
		Start: date(2024, 1, 1), End: date(2024, 1, 6),
	})
	require.NoError(t, err)
	require.Len(t, items, 2, "inactive entities are skipped")

	assert.Equal(t, int64(1), items[0].EntityID)
	assert.Equal(t, 3.0, items[0].EfficiencyRatio)
	assert.Equal(t, 2.0, items[0].AverageFrequency)

	assert.Equal(t, 0.0, items[1].EfficiencyRatio, "no subscribers")
	assert.Equal(t, int64(5), items[1].UsageCount)
}

func TestUserStatusDistribution(t *testing.T) {
	reader := &fakeStatsReader{
		ListEntitiesFn: func(ctx context.Context, kind domain.EntityKind, ids []int64) ([]domain.EntityRecord, error) {
			assert.Nil(t, ids)
			return []domain.EntityRecord{
				{ID: 1, IsActive: true},
				{ID: 2, IsActive: true},
				{ID: 3, IsDeleted: true},
				{ID: 4},
			}, nil
		},
	}
	facade := usecase.NewStatisticsFacade(reader)

	shares, err := facade.Users().StatusDistribution(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.StatusShare{
		{Status: domain.StatusActive, Count: 2, Ratio: 0.5},
		{Status: domain.StatusInactive, Count: 1, Ratio: 0.25},
		{Status: domain.StatusDeleted, Count: 1, Ratio: 0.25},
	}, shares)
}

// ------------------------------------------------------------
// PROFILES
// ------------------------------------------------------------

func TestUnsupportedOperations(t *testing.T) {
	reader := &fakeStatsReader{}
	facade := usecase.NewStatisticsFacade(reader)
	ctx := context.Background()
	q := usecase.StatsQuery{Mode: domain.ModeDay, Start: date(2024, 1, 1), End: date(2024, 1, 2)}

	_, err := facade.Subscriptions().Cleanup(ctx, q)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	_, err = facade.Subscriptions().StatusDistribution(ctx)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	_, err = facade.Subscriptions().Trending(ctx, q)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	_, err = facade.Posts().Efficiency(ctx, q)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	_, err = facade.Users().Efficiency(ctx, q)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	_, err = facade.Users().Cleanup(ctx, q)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	_, err = facade.Users().Lifecycle(ctx, q)
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperation)

	assert.Zero(t, reader.totalCalls())
}

func TestFor(t *testing.T) {
	facade := usecase.NewStatisticsFacade(&fakeStatsReader{})

	s, err := facade.For(domain.EntityCategory)
	require.NoError(t, err)
	assert.Equal(t, domain.EntityCategory, s.Kind())

	_, err = facade.For("comment")
	assert.ErrorIs(t, err, domain.ErrUnknownEntity)
}
