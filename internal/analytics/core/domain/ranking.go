package domain

import (
	"cmp"
	"slices"
)

// CompareRanking orders items by primary metric desc, then most recent
// activity (never-active last), then entity id asc.
func CompareRanking(a, b RankingItem) int {
	if c := cmp.Compare(b.PrimaryMetric, a.PrimaryMetric); c != 0 {
		return c
	}
	switch {
	case a.LastActivityDate != nil && b.LastActivityDate == nil:
		return -1
	case a.LastActivityDate == nil && b.LastActivityDate != nil:
		return 1
	case a.LastActivityDate != nil && b.LastActivityDate != nil:
		if c := b.LastActivityDate.Compare(*a.LastActivityDate); c != 0 {
			return c
		}
	}
	return cmp.Compare(a.EntityID, b.EntityID)
}

// TopN returns at most n items ordered by CompareRanking with 1-based ranks.
// The input slice is not modified.
func TopN(candidates []RankingItem, n int) []RankingItem {
	if n <= 0 || len(candidates) == 0 {
		return []RankingItem{}
	}

	sorted := slices.Clone(candidates)
	slices.SortFunc(sorted, CompareRanking)

	if n < len(sorted) {
		sorted = sorted[:n]
	}
	for i := range sorted {
		sorted[i].Rank = i + 1
	}

	return sorted
}

// CompareSnapshots orders growth snapshots by growth rate desc, then current
// count desc, then entity id asc.
func CompareSnapshots(a, b EntityAnalyticsSnapshot) int {
	if c := cmp.Compare(b.GrowthRate, a.GrowthRate); c != 0 {
		return c
	}
	if c := cmp.Compare(b.CurrentCount, a.CurrentCount); c != 0 {
		return c
	}
	return cmp.Compare(a.EntityID, b.EntityID)
}
