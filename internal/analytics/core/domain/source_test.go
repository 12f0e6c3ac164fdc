package domain_test

import (
	"context"
	"testing"
	"time"

	"content-analytics-service/internal/analytics/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWindowCounter struct {
	CountFn func(ctx context.Context, src domain.MetricSource, from, to time.Time, entityID *int64) (int64, error)
	called  int
}

func (f *fakeWindowCounter) CountEvents(ctx context.Context, src domain.MetricSource, from, to time.Time, entityID *int64) (int64, error) {
	f.called++
	return f.CountFn(ctx, src, from, to, entityID)
}

func TestMetricSource_Validate(t *testing.T) {
	valid := []domain.MetricSource{
		domain.EntityCreated(domain.EntityTag, "new_tag_count"),
		domain.EntityDeleted(domain.EntityUser, "deleted_user_count"),
		domain.MappingCreated(domain.EntityPost, "post_tag_mapping_count"),
		domain.SubscriptionRemoved(domain.EntityUser, "unfollow_count"),
	}
	for _, s := range valid {
		assert.NoError(t, s.Validate(), s.String())
	}

	invalid := []domain.MetricSource{
		domain.MappingCreated(domain.EntityUser, "x"),
		domain.SubscriptionAdded(domain.EntityPost, "x"),
		domain.EntityCreated(domain.EntityTag, ""),
		{Name: "x", Event: "viewed", Target: domain.EntityTag},
	}
	for _, s := range invalid {
		assert.ErrorIs(t, s.Validate(), domain.ErrUnsupportedSource, s.String())
	}
}

func TestMetricSource_SupportsGrouping(t *testing.T) {
	assert.True(t, domain.EntityCreated(domain.EntityTag, "x").SupportsGrouping(domain.GroupByActor))
	assert.False(t, domain.EntityCreated(domain.EntityUser, "x").SupportsGrouping(domain.GroupByActor))
	assert.False(t, domain.MappingCreated(domain.EntityTag, "x").SupportsGrouping(domain.GroupByActor))
	assert.True(t, domain.SubscriptionAdded(domain.EntityTag, "x").SupportsGrouping(domain.GroupByActor))
	assert.True(t, domain.MappingCreated(domain.EntityTag, "x").SupportsGrouping(domain.GroupByEntity))
}

func TestMetricSource_Count(t *testing.T) {
	bucket := domain.TimeBucket{Start: date(2024, 1, 2), End: date(2024, 1, 3)}
	id := int64(7)

	counter := &fakeWindowCounter{
		CountFn: func(ctx context.Context, src domain.MetricSource, from, to time.Time, entityID *int64) (int64, error) {
			assert.Equal(t, domain.EventMappingCreated, src.Event)
			assert.Equal(t, bucket.Start, from)
			assert.Equal(t, bucket.End, to)
			require.NotNil(t, entityID)
			assert.Equal(t, id, *entityID)
			return 4, nil
		},
	}

	n, err := domain.MappingCreated(domain.EntityTag, "tag_mapping_count").Count(context.Background(), counter, bucket, &id)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, 1, counter.called)
}

func TestMetricSource_Count_InvalidSourceSkipsStore(t *testing.T) {
	counter := &fakeWindowCounter{}
	bucket := domain.TimeBucket{Start: date(2024, 1, 2), End: date(2024, 1, 3)}

	_, err := domain.MappingCreated(domain.EntityUser, "x").Count(context.Background(), counter, bucket, nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedSource)
	assert.Zero(t, counter.called)
}

func TestParseEntityKind(t *testing.T) {
	k, err := domain.ParseEntityKind("categories")
	require.NoError(t, err)
	assert.Equal(t, domain.EntityCategory, k)

	_, err = domain.ParseEntityKind("comments")
	assert.ErrorIs(t, err, domain.ErrUnknownEntity)
}
