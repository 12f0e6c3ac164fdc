package domain

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// GrowthRate is (current-previous)/previous, reported as 0 when there is no
// previous activity instead of +Inf.
func GrowthRate(current, previous int64) float64 {
	if previous == 0 {
		return 0
	}
	return float64(current-previous) / float64(previous)
}

// GrowthSeries folds bucket-ordered rows into trend points for metric.
// The first point has no predecessor and reports previous=0, rate=0.
func GrowthSeries(rows []MetricRow, metric string) []TrendPoint {
	points := make([]TrendPoint, 0, len(rows))

	var previous int64
	for i, row := range rows {
		current := row.Value(metric)
		p := TrendPoint{
			Start: row.Bucket.Start,
			End:   row.Bucket.End,
			Count: current,
		}
		if i > 0 {
			p.PreviousCount = previous
			p.GrowthRate = GrowthRate(current, previous)
		}
		points = append(points, p)
		previous = current
	}

	return points
}

// EfficiencyRatio is usage per subscriber, 0 without subscribers.
func EfficiencyRatio(usage, subscribers int64) float64 {
	if subscribers == 0 {
		return 0
	}
	return float64(usage) / float64(subscribers)
}

// ActiveDays is the inclusive day count of the queried range.
func ActiveDays(start, end time.Time) int {
	if end.Before(start) {
		return 1
	}
	return int(end.Sub(start)/day) + 1
}

// AverageFrequency spreads total usage over the queried range's active days.
func AverageFrequency(total int64, start, end time.Time) float64 {
	return float64(total) / float64(ActiveDays(start, end))
}

// DaysBetween counts whole days from a to b, never negative.
func DaysBetween(a, b time.Time) int {
	if b.Before(a) {
		return 0
	}
	return int(b.Sub(a) / day)
}

// LifecycleSpanDays is the number of days between creation and last usage,
// nil when the entity was never used.
func LifecycleSpanDays(created time.Time, lastUsed *time.Time) *int {
	if lastUsed == nil {
		return nil
	}
	span := DaysBetween(created, *lastUsed)
	return &span
}

// Thresholds drive cleanup classification.
type Thresholds struct {
	ArchiveAfterDays int `yaml:"archive_after_days"`
	DeleteAfterDays  int `yaml:"delete_after_days"`
}

func DefaultThresholds() Thresholds {
	return Thresholds{ArchiveAfterDays: 180, DeleteAfterDays: 365}
}

func (t Thresholds) Validate() error {
	if t.ArchiveAfterDays < 0 || t.ArchiveAfterDays >= t.DeleteAfterDays {
		return ErrInvalidThresholds
	}
	return nil
}

// Classify returns the recommendation and the days the entity has been unused
// as of now. Without usage history the age since creation is reported.
func (t Thresholds) Classify(created time.Time, lastUsed *time.Time, now time.Time) (Recommendation, int) {
	if lastUsed == nil {
		return RecommendDelete, DaysBetween(created, now)
	}

	unused := DaysBetween(*lastUsed, now)
	switch {
	case unused > t.DeleteAfterDays:
		return RecommendDelete, unused
	case unused > t.ArchiveAfterDays:
		return RecommendArchive, unused
	default:
		return RecommendKeep, unused
	}
}

// StatusOf places an entity in exactly one partition.
func StatusOf(e EntityRecord) Status {
	switch {
	case e.IsDeleted:
		return StatusDeleted
	case e.IsActive:
		return StatusActive
	default:
		return StatusInactive
	}
}

// StatusDistribution always reports ACTIVE, INACTIVE and DELETED in that
// order. Ratios are rounded to two decimals.
func StatusDistribution(records []EntityRecord) []StatusShare {
	counts := map[Status]int64{}
	for _, r := range records {
		counts[StatusOf(r)]++
	}

	total := int64(len(records))
	shares := make([]StatusShare, 0, 3)
	for _, s := range []Status{StatusActive, StatusInactive, StatusDeleted} {
		share := StatusShare{Status: s, Count: counts[s]}
		if total > 0 {
			share.Ratio = roundTo(float64(counts[s])/float64(total), 2)
		}
		shares = append(shares, share)
	}

	return shares
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
