package sqlstore

import (
	"fmt"

	"content-analytics-service/internal/analytics/core/domain"
)

// stream is the table-level shape of one event source.
type stream struct {
	table     string
	keyCol    string // target id, used for entity filters and GroupByEntity
	actorCol  string // creator or subscriber, "" when the stream has none
	timeCol   string
	predicate string
}

type entityTable struct {
	table      string
	nameCol    string
	creatorCol string // "" for users
}

var entityTables = map[domain.EntityKind]entityTable{
	domain.EntityTag:      {table: "tags", nameCol: "name", creatorCol: "creator_id"},
	domain.EntityCategory: {table: "categories", nameCol: "name", creatorCol: "creator_id"},
	domain.EntityPost:     {table: "posts", nameCol: "title", creatorCol: "creator_id"},
	domain.EntityUser:     {table: "users", nameCol: "username"},
}

type linkTable struct {
	table    string
	keyCol   string
	actorCol string
}

var mappingTables = map[domain.EntityKind]linkTable{
	domain.EntityTag:      {table: "post_tag_mappings", keyCol: "tag_id"},
	domain.EntityCategory: {table: "post_category_mappings", keyCol: "category_id"},
	domain.EntityPost:     {table: "post_tag_mappings", keyCol: "post_id"},
}

var subscriptionTables = map[domain.EntityKind]linkTable{
	domain.EntityTag:      {table: "tag_subscriptions", keyCol: "tag_id", actorCol: "user_id"},
	domain.EntityCategory: {table: "category_subscriptions", keyCol: "category_id", actorCol: "user_id"},
	domain.EntityUser:     {table: "user_subscriptions", keyCol: "target_user_id", actorCol: "user_id"},
}

const (
	liveRows    = "is_deleted = FALSE"
	deletedRows = "is_deleted = TRUE AND delete_date IS NOT NULL"
)

func streamFor(src domain.MetricSource) (stream, error) {
	if err := src.Validate(); err != nil {
		return stream{}, err
	}

	switch src.Event {
	case domain.EventEntityCreated, domain.EventEntityDeleted:
		t := entityTables[src.Target]
		s := stream{table: t.table, keyCol: "id", actorCol: t.creatorCol, timeCol: "create_date"}
		if src.Event == domain.EventEntityDeleted {
			s.timeCol, s.predicate = "delete_date", deletedRows
		}
		return s, nil

	case domain.EventMappingCreated, domain.EventMappingDeleted:
		return linkStream(mappingTables[src.Target], src.Event == domain.EventMappingCreated), nil

	case domain.EventSubscriptionAdded, domain.EventSubscriptionRemoved:
		return linkStream(subscriptionTables[src.Target], src.Event == domain.EventSubscriptionAdded), nil
	}

	return stream{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedSource, src)
}

func linkStream(t linkTable, added bool) stream {
	s := stream{table: t.table, keyCol: t.keyCol, actorCol: t.actorCol}
	if added {
		s.timeCol, s.predicate = "create_date", liveRows
	} else {
		s.timeCol, s.predicate = "delete_date", deletedRows
	}
	return s
}

func (s stream) groupCol(g domain.Grouping) (string, error) {
	switch {
	case g == domain.GroupByEntity:
		return s.keyCol, nil
	case g == domain.GroupByActor && s.actorCol != "":
		return s.actorCol, nil
	default:
		return "", fmt.Errorf("%w: cannot group %s by %s", domain.ErrUnsupportedSource, s.table, g)
	}
}
