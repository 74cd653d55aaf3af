package algorithms

import (
	"sort"
	"time"

	"github.com/graphpulse/graphpulse/pkg/graph"
)

// TrendOptions configures the momentum windows.
type TrendOptions struct {
	RecentWindowHours   float64
	LookbackWindowHours float64
	MinimumWeight       float64 // Communities below this total weight score 0
}

// DefaultTrendOptions returns the default trend configuration.
func DefaultTrendOptions() TrendOptions {
	return TrendOptions{
		RecentWindowHours:   24,
		LookbackWindowHours: 168,
		MinimumWeight:       0.01,
	}
}

// CommunityTrendSummary is the per-community recency-weighted momentum.
// Momentum > 0 means the community is heating up relative to its history.
type CommunityTrendSummary struct {
	CommunityID       int        `json:"communityId"`
	Momentum          float64    `json:"momentum"`
	RecentWeight      float64    `json:"recentWeight"`
	HistoricalWeight  float64    `json:"historicalWeight"`
	TotalWeight       float64    `json:"totalWeight"`
	LastInteractionAt *time.Time `json:"lastInteractionAt,omitempty"`
}

// linearDecay is the trend predictor's decay law: linear falloff to zero at
// the window edge, not exponential.
func linearDecay(ageHours, windowHours float64) float64 {
	if windowHours <= 0 {
		return 0
	}
	if ageHours <= 0 {
		return 1
	}
	factor := 1 - ageHours/windowHours
	if factor < 0 {
		return 0
	}
	return factor
}

// EvaluateCommunityTrends aggregates edge evidence per community and computes
// momentum against the reference time. Edges crossing communities count
// toward both endpoints' communities. Output sorts by momentum descending,
// community id ascending on ties.
func EvaluateCommunityTrends(snapshot *graph.Snapshot, assignments map[string]int, referenceTime time.Time, opts TrendOptions) []CommunityTrendSummary {
	type accumulator struct {
		recent     float64
		historical float64
		total      float64
		lastSeen   *time.Time
	}
	byCommunity := make(map[int]*accumulator)

	accumulate := func(community int, edge *graph.Edge) {
		acc := byCommunity[community]
		if acc == nil {
			acc = &accumulator{}
			byCommunity[community] = acc
		}

		if edge.Evidence.LastSeenAt != nil {
			age := referenceTime.Sub(*edge.Evidence.LastSeenAt).Hours()
			acc.recent += edge.Weight * linearDecay(age, opts.RecentWindowHours)
			if acc.lastSeen == nil || edge.Evidence.LastSeenAt.After(*acc.lastSeen) {
				acc.lastSeen = edge.Evidence.LastSeenAt
			}
		}

		lookback := opts.LookbackWindowHours
		if opts.RecentWindowHours > lookback {
			lookback = opts.RecentWindowHours
		}
		if edge.Evidence.FirstSeenAt != nil {
			age := referenceTime.Sub(*edge.Evidence.FirstSeenAt).Hours()
			acc.historical += edge.Weight * linearDecay(age, lookback)
		} else {
			acc.historical += edge.Weight
		}

		acc.total += edge.Weight
	}

	for _, edge := range snapshot.Edges {
		src, srcOK := assignments[edge.Source]
		dst, dstOK := assignments[edge.Target]
		switch {
		case srcOK && dstOK && src == dst:
			accumulate(src, edge)
		case srcOK && dstOK:
			accumulate(src, edge)
			accumulate(dst, edge)
		case srcOK:
			accumulate(src, edge)
		case dstOK:
			accumulate(dst, edge)
		}
	}

	summaries := make([]CommunityTrendSummary, 0, len(byCommunity))
	for community, acc := range byCommunity {
		summary := CommunityTrendSummary{
			CommunityID:       community,
			RecentWeight:      acc.recent,
			HistoricalWeight:  acc.historical,
			TotalWeight:       acc.total,
			LastInteractionAt: acc.lastSeen,
		}

		if acc.total >= opts.MinimumWeight {
			baseline := acc.historical - acc.recent
			denominator := baseline
			if denominator < opts.MinimumWeight {
				denominator = opts.MinimumWeight
			}
			summary.Momentum = (acc.recent - baseline) / denominator
		}

		summaries = append(summaries, summary)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Momentum != summaries[j].Momentum {
			return summaries[i].Momentum > summaries[j].Momentum
		}
		return summaries[i].CommunityID < summaries[j].CommunityID
	})

	return summaries
}
