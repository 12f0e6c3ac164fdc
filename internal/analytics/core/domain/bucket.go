package domain

import (
	"strings"
	"time"
)

// Mode is the bucket width selector.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
	ModeYear  Mode = "year"
)

// ParseMode normalizes s and returns the matching Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", ErrUnsupportedMode
	}
	return m, nil
}

func (m Mode) Valid() bool {
	switch m {
	case ModeDay, ModeWeek, ModeMonth, ModeYear:
		return true
	default:
		return false
	}
}

// Truncate returns the start of the unit containing t, in UTC.
// Weeks start on Monday, the same as Postgres date_trunc('week', ...).
func (m Mode) Truncate(t time.Time) time.Time {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

	switch m {
	case ModeWeek:
		offset := (int(day.Weekday()) + 6) % 7 // Monday=0
		return day.AddDate(0, 0, -offset)
	case ModeMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case ModeYear:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return day
	}
}

// Next advances an already truncated t by one unit.
func (m Mode) Next(t time.Time) time.Time {
	switch m {
	case ModeWeek:
		return t.AddDate(0, 0, 7)
	case ModeMonth:
		return t.AddDate(0, 1, 0)
	case ModeYear:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// TimeBucket is the half-open interval [Start, End).
type TimeBucket struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (b TimeBucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}

// Key identifies the bucket by its start, as returned by grouped store reads.
func (b TimeBucket) Key() int64 {
	return b.Start.Unix()
}

// GenerateBuckets covers [start, end) with contiguous buckets of width mode.
// The first bucket starts at the truncated start and the last one is not
// clipped to end.
func GenerateBuckets(start, end time.Time, mode Mode) ([]TimeBucket, error) {
	if !mode.Valid() {
		return nil, ErrUnsupportedMode
	}
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}

	var buckets []TimeBucket
	for cursor := mode.Truncate(start); cursor.Before(end); {
		next := mode.Next(cursor)
		buckets = append(buckets, TimeBucket{Start: cursor, End: next})
		cursor = next
	}

	return buckets, nil
}
