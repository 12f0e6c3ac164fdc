package domain

import (
	"context"
	"fmt"
	"time"
)

// EntityKind names a content entity type.
type EntityKind string

const (
	EntityTag          EntityKind = "tag"
	EntityCategory     EntityKind = "category"
	EntityPost         EntityKind = "post"
	EntityUser         EntityKind = "user"
	EntitySubscription EntityKind = "subscription"
)

// ParseEntityKind accepts both singular and plural path segments ("tags").
func ParseEntityKind(s string) (EntityKind, error) {
	switch s {
	case "tag", "tags":
		return EntityTag, nil
	case "category", "categories":
		return EntityCategory, nil
	case "post", "posts":
		return EntityPost, nil
	case "user", "users":
		return EntityUser, nil
	case "subscription", "subscriptions":
		return EntitySubscription, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntity, s)
	}
}

// EventKind selects the event stream variant a MetricSource reads.
type EventKind string

const (
	EventEntityCreated       EventKind = "entity_created"
	EventEntityDeleted       EventKind = "entity_deleted"
	EventMappingCreated      EventKind = "mapping_created"
	EventMappingDeleted      EventKind = "mapping_deleted"
	EventSubscriptionAdded   EventKind = "subscription_added"
	EventSubscriptionRemoved EventKind = "subscription_removed"
)

// Grouping selects the key per-entity reads are grouped by.
type Grouping string

const (
	// GroupByEntity groups by the target entity id (tag id for tag mappings).
	GroupByEntity Grouping = "entity"
	// GroupByActor groups by the acting user: the creator for entity
	// streams and the subscriber for subscription streams.
	GroupByActor Grouping = "actor"
)

var validTargets = map[EventKind][]EntityKind{
	EventEntityCreated:       {EntityTag, EntityCategory, EntityPost, EntityUser},
	EventEntityDeleted:       {EntityTag, EntityCategory, EntityPost, EntityUser},
	EventMappingCreated:      {EntityTag, EntityCategory, EntityPost},
	EventMappingDeleted:      {EntityTag, EntityCategory, EntityPost},
	EventSubscriptionAdded:   {EntityTag, EntityCategory, EntityUser},
	EventSubscriptionRemoved: {EntityTag, EntityCategory, EntityUser},
}

// MetricSource describes one countable event stream and the metric name its
// counts are reported under.
type MetricSource struct {
	Name   string
	Event  EventKind
	Target EntityKind
}

func EntityCreated(target EntityKind, name string) MetricSource {
	return MetricSource{Name: name, Event: EventEntityCreated, Target: target}
}

func EntityDeleted(target EntityKind, name string) MetricSource {
	return MetricSource{Name: name, Event: EventEntityDeleted, Target: target}
}

func MappingCreated(target EntityKind, name string) MetricSource {
	return MetricSource{Name: name, Event: EventMappingCreated, Target: target}
}

func MappingDeleted(target EntityKind, name string) MetricSource {
	return MetricSource{Name: name, Event: EventMappingDeleted, Target: target}
}

func SubscriptionAdded(target EntityKind, name string) MetricSource {
	return MetricSource{Name: name, Event: EventSubscriptionAdded, Target: target}
}

func SubscriptionRemoved(target EntityKind, name string) MetricSource {
	return MetricSource{Name: name, Event: EventSubscriptionRemoved, Target: target}
}

func (s MetricSource) String() string {
	return fmt.Sprintf("%s:%s", s.Event, s.Target)
}

// Validate rejects event/target combinations no store stream exists for.
func (s MetricSource) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: empty metric name for %s", ErrUnsupportedSource, s)
	}
	for _, t := range validTargets[s.Event] {
		if t == s.Target {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedSource, s)
}

// SupportsGrouping reports whether per-entity reads can be grouped by g.
func (s MetricSource) SupportsGrouping(g Grouping) bool {
	switch g {
	case GroupByEntity:
		return true
	case GroupByActor:
		switch s.Event {
		case EventMappingCreated, EventMappingDeleted:
			return false
		case EventEntityCreated, EventEntityDeleted:
			return s.Target != EntityUser
		default:
			return true
		}
	default:
		return false
	}
}

// WindowCounter counts qualifying events of one source inside [from, to).
// A nil entityID counts across all entities of the target type.
type WindowCounter interface {
	CountEvents(ctx context.Context, src MetricSource, from, to time.Time, entityID *int64) (int64, error)
}

// Count returns the number of qualifying events inside bucket. Bucketed
// reads go through CountByBucket, one query per source for the whole series.
func (s MetricSource) Count(ctx context.Context, counter WindowCounter, bucket TimeBucket, entityID *int64) (int64, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}
	return counter.CountEvents(ctx, s, bucket.Start, bucket.End, entityID)
}
