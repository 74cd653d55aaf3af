package algorithms

import (
	"github.com/graphpulse/graphpulse/pkg/graph"
)

// MergeStep records one agglomerative merge in the community dendrogram.
type MergeStep struct {
	Left   int     `json:"left"`
	Right  int     `json:"right"`
	Into   int     `json:"into"`
	Weight float64 `json:"weight"` // Inter-community edge weight joining the pair
	Level  int     `json:"level"`  // 1-based merge index
}

// HierarchicalResult is a merge hierarchy built over a base partition
// (typically Louvain's). Level 0 is the base partition itself; level k is the
// partition after the first k merges.
type HierarchicalResult struct {
	BaseAssignments map[string]int `json:"baseAssignments"`
	Merges          []MergeStep    `json:"merges"`
	Levels          int            `json:"levels"`
}

type communityPair struct {
	a, b int
}

func sortedCommunityPair(a, b int) communityPair {
	if b < a {
		a, b = b, a
	}
	return communityPair{a: a, b: b}
}

// Hierarchical agglomeratively merges the communities of a base partition by
// inter-community edge weight: the heaviest-connected pair merges first, and
// the merged cluster inherits the summed connections of its parts. Clusters
// with no remaining inter-community weight are never merged, so disconnected
// groups stay separate at every level.
func Hierarchical(snapshot *graph.Snapshot, baseAssignments map[string]int) *HierarchicalResult {
	interWeight := make(map[communityPair]float64)
	maxLabel := -1
	for _, community := range baseAssignments {
		if community > maxLabel {
			maxLabel = community
		}
	}

	for _, edge := range snapshot.Edges {
		src, srcOK := baseAssignments[edge.Source]
		dst, dstOK := baseAssignments[edge.Target]
		if !srcOK || !dstOK || src == dst {
			continue
		}
		interWeight[sortedCommunityPair(src, dst)] += edge.Weight
	}

	active := make(map[int]bool, maxLabel+1)
	for _, community := range baseAssignments {
		active[community] = true
	}

	merges := make([]MergeStep, 0)
	nextID := maxLabel + 1

	for len(active) > 1 {
		bestWeight := 0.0
		best := communityPair{a: -1, b: -1}
		for pair, w := range interWeight {
			if w <= 0 || !active[pair.a] || !active[pair.b] {
				continue
			}
			// Deterministic tie-break: lowest pair wins.
			if w > bestWeight || (w == bestWeight && (pair.a < best.a || (pair.a == best.a && pair.b < best.b))) {
				bestWeight = w
				best = pair
			}
		}
		if best.a < 0 {
			break // nothing left connected
		}

		merged := nextID
		nextID++
		merges = append(merges, MergeStep{
			Left:   best.a,
			Right:  best.b,
			Into:   merged,
			Weight: bestWeight,
			Level:  len(merges) + 1,
		})

		delete(active, best.a)
		delete(active, best.b)

		// Fold both parents' connections into the merged cluster.
		folded := make(map[int]float64)
		for pair, w := range interWeight {
			var other int
			switch {
			case pair.a == best.a || pair.a == best.b:
				other = pair.b
			case pair.b == best.a || pair.b == best.b:
				other = pair.a
			default:
				continue
			}
			delete(interWeight, pair)
			if other != best.a && other != best.b {
				folded[other] += w
			}
		}
		for other, w := range folded {
			interWeight[sortedCommunityPair(merged, other)] = w
		}

		active[merged] = true
	}

	return &HierarchicalResult{
		BaseAssignments: baseAssignments,
		Merges:          merges,
		Levels:          len(merges),
	}
}

// AssignmentsAt returns the node-to-cluster assignment after applying the
// first `level` merges. Level 0 returns the base partition; levels beyond the
// dendrogram height clamp to the final partition.
func (h *HierarchicalResult) AssignmentsAt(level int) map[string]int {
	if level < 0 {
		level = 0
	}
	if level > len(h.Merges) {
		level = len(h.Merges)
	}

	// Resolve each base community through the applied merges.
	parent := make(map[int]int)
	for i := 0; i < level; i++ {
		parent[h.Merges[i].Left] = h.Merges[i].Into
		parent[h.Merges[i].Right] = h.Merges[i].Into
	}

	resolve := func(community int) int {
		for {
			next, ok := parent[community]
			if !ok {
				return community
			}
			community = next
		}
	}

	out := make(map[string]int, len(h.BaseAssignments))
	for node, community := range h.BaseAssignments {
		out[node] = resolve(community)
	}
	return out
}

// ClusterSizesAt returns the cluster membership counts at a cut level, keyed
// by cluster id, useful for picking a cut.
func (h *HierarchicalResult) ClusterSizesAt(level int) map[int]int {
	sizes := make(map[int]int)
	for _, cluster := range h.AssignmentsAt(level) {
		sizes[cluster]++
	}
	return sizes
}

// CutLevels lists the dendrogram levels in merge order, including level 0.
func (h *HierarchicalResult) CutLevels() []int {
	levels := make([]int, 0, len(h.Merges)+1)
	for i := 0; i <= len(h.Merges); i++ {
		levels = append(levels, i)
	}
	return levels
}
