package algorithms

import (
	"sort"

	"github.com/graphpulse/graphpulse/pkg/graph"
)

// LabelPropagationOptions configures the propagation loop.
type LabelPropagationOptions struct {
	MaxRounds int
}

// DefaultLabelPropagationOptions returns the default configuration.
func DefaultLabelPropagationOptions() LabelPropagationOptions {
	return LabelPropagationOptions{MaxRounds: 20}
}

// LabelPropagationResult contains a weighted-majority-vote partition,
// independent of the Louvain partition over the same snapshot.
type LabelPropagationResult struct {
	Assignments map[string]int   `json:"assignments"`
	Communities map[int][]string `json:"communities"`
	Rounds      int              `json:"rounds"`
	Converged   bool             `json:"converged"`
}

// LabelPropagation partitions a snapshot by iterated weighted majority vote:
// every round, each node adopts the label carrying the highest total incident
// edge weight among its neighbors (both directions), until a fixed point or
// the round bound. Ties keep the node's current label; equal-weight
// challengers resolve to the smallest label so runs are deterministic.
func LabelPropagation(snapshot *graph.Snapshot, opts LabelPropagationOptions) *LabelPropagationResult {
	nodeIDs := make([]string, 0, len(snapshot.Nodes))
	known := make(map[string]bool, len(snapshot.Nodes))
	for _, node := range snapshot.Nodes {
		nodeIDs = append(nodeIDs, node.ID)
		known[node.ID] = true
	}

	adjacency := make(map[string]map[string]float64, len(nodeIDs))
	addNeighbor := func(from, to string, w float64) {
		m := adjacency[from]
		if m == nil {
			m = make(map[string]float64)
			adjacency[from] = m
		}
		m[to] += w
	}
	for _, edge := range snapshot.Edges {
		if edge.Source == edge.Target {
			continue
		}
		// Only snapshot nodes hold labels; edges to anything else carry no vote.
		if !known[edge.Source] || !known[edge.Target] {
			continue
		}
		addNeighbor(edge.Source, edge.Target, edge.Weight)
		addNeighbor(edge.Target, edge.Source, edge.Weight)
	}

	labels := make(map[string]int, len(nodeIDs))
	for i, id := range nodeIDs {
		labels[id] = i
	}

	rounds := 0
	converged := false
	for rounds < opts.MaxRounds {
		rounds++
		changed := false

		for _, id := range nodeIDs {
			neighbors := adjacency[id]
			if len(neighbors) == 0 {
				continue
			}

			labelWeight := make(map[int]float64, len(neighbors))
			for neighbor, w := range neighbors {
				labelWeight[labels[neighbor]] += w
			}

			candidates := make([]int, 0, len(labelWeight))
			for label := range labelWeight {
				candidates = append(candidates, label)
			}
			sort.Ints(candidates)

			best := labels[id]
			bestWeight := labelWeight[best]
			for _, label := range candidates {
				if labelWeight[label] > bestWeight {
					best = label
					bestWeight = labelWeight[label]
				}
			}

			if best != labels[id] {
				labels[id] = best
				changed = true
			}
		}

		if !changed {
			converged = true
			break
		}
	}

	assignments, communities := relabelCommunities(nodeIDs, labels)

	return &LabelPropagationResult{
		Assignments: assignments,
		Communities: communities,
		Rounds:      rounds,
		Converged:   converged,
	}
}
