package usecase

import (
	"fmt"

	"content-analytics-service/internal/analytics/core/domain"
)

// rankMetric is a per-entity ranking: the summed count of sources grouped by
// groupBy, with names resolved from nameKind.
type rankMetric struct {
	sources  []domain.MetricSource
	groupBy  domain.Grouping
	nameKind domain.EntityKind
}

// profile binds one entity kind to the streams each facade operation reads.
// A nil or empty field means the operation is not available for the kind.
type profile struct {
	kind     domain.EntityKind
	listKind domain.EntityKind

	overview    []domain.MetricSource
	trend       []domain.MetricSource
	usage       *domain.MetricSource
	subscribers *domain.MetricSource
	creators    *rankMetric

	rankings    map[string]rankMetric
	defaultRank string
}

func (p profile) ranking(name string) (rankMetric, error) {
	if len(p.rankings) == 0 {
		return rankMetric{}, domain.ErrUnsupportedOperation
	}
	if name == "" {
		name = p.defaultRank
	}
	m, ok := p.rankings[name]
	if !ok {
		return rankMetric{}, fmt.Errorf("%w: %q for %s", domain.ErrUnknownMetric, name, p.kind)
	}
	return m, nil
}

func ptr[T any](v T) *T { return &v }

func byEntity(nameKind domain.EntityKind, sources ...domain.MetricSource) rankMetric {
	return rankMetric{sources: sources, groupBy: domain.GroupByEntity, nameKind: nameKind}
}

func byActor(sources ...domain.MetricSource) rankMetric {
	return rankMetric{sources: sources, groupBy: domain.GroupByActor, nameKind: domain.EntityUser}
}

// taxonomyProfile covers tags and categories, which share every stream shape.
func taxonomyProfile(kind domain.EntityKind) profile {
	n := string(kind)
	usage := domain.MappingCreated(kind, "usage_count")
	subs := domain.SubscriptionAdded(kind, "subscriber_count")

	return profile{
		kind:     kind,
		listKind: kind,
		overview: []domain.MetricSource{
			domain.EntityCreated(kind, "new_"+n+"_count"),
			domain.EntityDeleted(kind, "deleted_"+n+"_count"),
			domain.MappingCreated(kind, n+"_mapping_count"),
			domain.MappingDeleted(kind, n+"_unmapping_count"),
			domain.SubscriptionAdded(kind, n+"_subscription_count"),
			domain.SubscriptionRemoved(kind, n+"_unsubscription_count"),
		},
		trend:       []domain.MetricSource{usage},
		usage:       &usage,
		subscribers: &subs,
		creators:    ptr(byActor(domain.EntityCreated(kind, "created_"+n+"_count"))),
		rankings: map[string]rankMetric{
			"usage":       byEntity(kind, usage),
			"subscribers": byEntity(kind, subs),
		},
		defaultRank: "usage",
	}
}

func postProfile() profile {
	usage := domain.MappingCreated(domain.EntityPost, "post_tag_mapping_count")

	return profile{
		kind:     domain.EntityPost,
		listKind: domain.EntityPost,
		overview: []domain.MetricSource{
			domain.EntityCreated(domain.EntityPost, "new_post_count"),
			domain.EntityDeleted(domain.EntityPost, "deleted_post_count"),
			domain.MappingCreated(domain.EntityPost, "post_tag_mapping_count"),
			domain.MappingDeleted(domain.EntityPost, "post_tag_unmapping_count"),
		},
		trend:    []domain.MetricSource{usage},
		usage:    &usage,
		creators: ptr(byActor(domain.EntityCreated(domain.EntityPost, "post_count"))),
		rankings: map[string]rankMetric{
			"tags": byEntity(domain.EntityPost, usage),
		},
		defaultRank: "tags",
	}
}

// userProfile trends on followers gained. Users have no usage stream, so
// lifecycle, efficiency and cleanup are unavailable.
func userProfile() profile {
	followers := domain.SubscriptionAdded(domain.EntityUser, "follower_count")

	return profile{
		kind:     domain.EntityUser,
		listKind: domain.EntityUser,
		overview: []domain.MetricSource{
			domain.EntityCreated(domain.EntityUser, "new_user_count"),
			domain.EntityDeleted(domain.EntityUser, "deleted_user_count"),
			domain.SubscriptionAdded(domain.EntityUser, "follow_count"),
			domain.SubscriptionRemoved(domain.EntityUser, "unfollow_count"),
		},
		trend: []domain.MetricSource{followers},
		rankings: map[string]rankMetric{
			"followers": byEntity(domain.EntityUser, followers),
			"posts":     byActor(domain.EntityCreated(domain.EntityPost, "post_count")),
			"subscriptions": byActor(
				domain.SubscriptionAdded(domain.EntityTag, "tag_subscription_count"),
				domain.SubscriptionAdded(domain.EntityCategory, "category_subscription_count"),
				domain.SubscriptionAdded(domain.EntityUser, "follow_count"),
			),
		},
		defaultRank: "followers",
	}
}

// subscriptionProfile has no entity table of its own: rankings resolve
// subscriber names from users and lifecycle operations are unavailable.
func subscriptionProfile() profile {
	added := []domain.MetricSource{
		domain.SubscriptionAdded(domain.EntityTag, "tag_subscription_count"),
		domain.SubscriptionAdded(domain.EntityCategory, "category_subscription_count"),
		domain.SubscriptionAdded(domain.EntityUser, "user_subscription_count"),
	}

	return profile{
		kind: domain.EntitySubscription,
		overview: append(append([]domain.MetricSource{}, added...),
			domain.SubscriptionRemoved(domain.EntityTag, "tag_unsubscription_count"),
			domain.SubscriptionRemoved(domain.EntityCategory, "category_unsubscription_count"),
			domain.SubscriptionRemoved(domain.EntityUser, "user_unsubscription_count"),
		),
		trend: added,
		rankings: map[string]rankMetric{
			"subscriptions": byActor(added...),
		},
		defaultRank: "subscriptions",
	}
}

func profiles() map[domain.EntityKind]profile {
	return map[domain.EntityKind]profile{
		domain.EntityTag:          taxonomyProfile(domain.EntityTag),
		domain.EntityCategory:     taxonomyProfile(domain.EntityCategory),
		domain.EntityPost:         postProfile(),
		domain.EntityUser:         userProfile(),
		domain.EntitySubscription: subscriptionProfile(),
	}
}
