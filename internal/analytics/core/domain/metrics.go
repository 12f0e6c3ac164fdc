package domain

import "time"

// MetricRow carries every requested metric for one bucket.
type MetricRow struct {
	Bucket  TimeBucket       `json:"bucket"`
	Metrics map[string]int64 `json:"metrics"`
}

// Value returns the metric count, 0 when the key is absent.
func (r MetricRow) Value(name string) int64 {
	return r.Metrics[name]
}

// BucketCount is one grouped row of a bulk per-bucket read.
type BucketCount struct {
	BucketStart time.Time
	Count       int64
}

// EntityRecord is the read-only projection of a content entity.
type EntityRecord struct {
	ID         int64
	Name       string
	IsActive   bool
	IsDeleted  bool
	CreateDate time.Time
	CreatorID  *int64
}

// Usable reports whether the entity is active and not deleted.
func (e EntityRecord) Usable() bool {
	return e.IsActive && !e.IsDeleted
}

type EntityAnalyticsSnapshot struct {
	EntityID         int64      `json:"entity_id"`
	Name             string     `json:"name"`
	CurrentCount     int64      `json:"current_count"`
	PreviousCount    int64      `json:"previous_count"`
	GrowthRate       float64    `json:"growth_rate"`
	LastActivityDate *time.Time `json:"last_activity_date"`
}

type RankingItem struct {
	Rank             int              `json:"rank"`
	EntityID         int64            `json:"entity_id"`
	Name             string           `json:"name"`
	PrimaryMetric    int64            `json:"primary_metric"`
	SecondaryMetrics map[string]int64 `json:"secondary_metrics,omitempty"`
	LastActivityDate *time.Time       `json:"last_activity_date"`
}

type Recommendation string

const (
	RecommendKeep    Recommendation = "KEEP"
	RecommendArchive Recommendation = "ARCHIVE"
	RecommendDelete  Recommendation = "DELETE"
)

type RecommendationItem struct {
	EntityID       int64          `json:"entity_id"`
	Name           string         `json:"name"`
	CreateDate     time.Time      `json:"create_date"`
	LastUsedDate   *time.Time     `json:"last_used_date"`
	DaysUnused     int            `json:"days_unused"`
	Recommendation Recommendation `json:"recommendation"`
}

type LifecycleItem struct {
	EntityID      int64      `json:"entity_id"`
	Name          string     `json:"name"`
	CreateDate    time.Time  `json:"create_date"`
	LastUsedDate  *time.Time `json:"last_used_date"`
	LifecycleDays *int       `json:"lifecycle_days"`
	TotalUsage    int64      `json:"total_usage"`
	IsActive      bool       `json:"is_active"`
}

type EfficiencyItem struct {
	EntityID         int64   `json:"entity_id"`
	Name             string  `json:"name"`
	UsageCount       int64   `json:"usage_count"`
	SubscriberCount  int64   `json:"subscriber_count"`
	EfficiencyRatio  float64 `json:"efficiency_ratio"`
	AverageFrequency float64 `json:"average_frequency"`
}

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
	StatusDeleted  Status = "DELETED"
)

type StatusShare struct {
	Status Status  `json:"status"`
	Count  int64   `json:"count"`
	Ratio  float64 `json:"ratio"`
}

type TrendPoint struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Count         int64     `json:"count"`
	PreviousCount int64     `json:"previous_count"`
	GrowthRate    float64   `json:"growth_rate"`
}
