package algorithms

import (
	"math"
	"sort"

	"github.com/graphpulse/graphpulse/pkg/graph"
)

// LouvainOptions configures the greedy modularity optimization.
type LouvainOptions struct {
	MaxPasses  int     // Upper bound on local-moving passes
	Resolution float64 // Modularity resolution parameter
	MinGain    float64 // Minimum gain required to move a node
}

// DefaultLouvainOptions returns the default Louvain configuration.
func DefaultLouvainOptions() LouvainOptions {
	return LouvainOptions{
		MaxPasses:  12,
		Resolution: 1.0,
		MinGain:    1e-6,
	}
}

// LouvainResult contains a modularity-optimized partition.
type LouvainResult struct {
	Assignments map[string]int   `json:"assignments"`
	Communities map[int][]string `json:"communities"`
	Modularity  float64          `json:"modularity"`
	Iterations  int              `json:"iterations"`
}

type pairKey struct {
	a, b string
}

func sortedPair(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// pseudoShuffle reorders ids in place with a reproducible sine-driven swap
// sequence. It is deliberately not a real RNG: identical inputs and seeds
// always yield identical orders, which keeps community assignments stable
// across runs.
func pseudoShuffle(ids []string, seed int) {
	for i := range ids {
		j := int(math.Floor(math.Abs(math.Sin(float64(seed+i)))*float64(i+1))) % (i + 1)
		ids[i], ids[j] = ids[j], ids[i]
	}
}

// Louvain runs single-level Louvain community detection: local moving over an
// undirected view of the snapshot (each edge counted in both directions), no
// graph coarsening. The node visit order is pseudo-shuffled per pass so the
// result does not depend on input ordering artifacts yet stays deterministic.
func Louvain(snapshot *graph.Snapshot, opts LouvainOptions) *LouvainResult {
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

	pairWeights := make(map[pairKey]float64)
	for _, edge := range snapshot.Edges {
		if edge.Source == edge.Target {
			continue // self-interactions carry no partition signal
		}
		// Edges whose endpoints are not snapshot nodes have no community
		// slot to vote for.
		if !known[edge.Source] || !known[edge.Target] {
			continue
		}
		addNeighbor(edge.Source, edge.Target, edge.Weight)
		addNeighbor(edge.Target, edge.Source, edge.Weight)
		pairWeights[sortedPair(edge.Source, edge.Target)] += edge.Weight
	}

	strength := make(map[string]float64, len(nodeIDs))
	for _, id := range nodeIDs {
		for _, w := range adjacency[id] {
			strength[id] += w
		}
	}

	totalWeight := 0.0
	for _, w := range pairWeights {
		totalWeight += w
	}

	// One community per node to start.
	assignment := make(map[string]int, len(nodeIDs))
	communityStrength := make(map[int]float64, len(nodeIDs))
	for i, id := range nodeIDs {
		assignment[id] = i
		communityStrength[i] = strength[id]
	}

	iterations := 0
	if totalWeight > 0 {
		twoW := 2 * totalWeight
		order := make([]string, len(nodeIDs))

		for pass := 0; pass < opts.MaxPasses; pass++ {
			iterations = pass + 1
			copy(order, nodeIDs)
			pseudoShuffle(order, pass)

			moved := false
			for _, id := range order {
				current := assignment[id]
				communityStrength[current] -= strength[id]

				weightTo := make(map[int]float64)
				for neighbor, w := range adjacency[id] {
					weightTo[assignment[neighbor]] += w
				}

				gain := func(community int) float64 {
					return (weightTo[community] - opts.Resolution*strength[id]*communityStrength[community]/twoW) / twoW
				}

				candidates := make([]int, 0, len(weightTo))
				for community := range weightTo {
					if community != current {
						candidates = append(candidates, community)
					}
				}
				sort.Ints(candidates)

				best := current
				bestGain := gain(current)
				for _, community := range candidates {
					if g := gain(community); g > bestGain+opts.MinGain {
						best = community
						bestGain = g
					}
				}

				communityStrength[best] += strength[id]
				if best != current {
					assignment[id] = best
					moved = true
				}
			}

			if !moved {
				break
			}
		}
	}

	modularity := 0.0
	if totalWeight > 0 {
		twoW := 2 * totalWeight
		sum := 0.0
		for pair, w := range pairWeights {
			if assignment[pair.a] == assignment[pair.b] {
				sum += w - strength[pair.a]*strength[pair.b]/twoW
			}
		}
		// Modularity is reported doubly normalized; downstream consumers
		// depend on this scale.
		modularity = sum / twoW / twoW
	}

	assignments, communities := relabelCommunities(nodeIDs, assignment)

	return &LouvainResult{
		Assignments: assignments,
		Communities: communities,
		Modularity:  modularity,
		Iterations:  iterations,
	}
}

// relabelCommunities renumbers community labels compactly in order of first
// appearance over the node insertion order, and groups members per community.
func relabelCommunities(nodeIDs []string, assignment map[string]int) (map[string]int, map[int][]string) {
	relabel := make(map[int]int)
	assignments := make(map[string]int, len(nodeIDs))
	communities := make(map[int][]string)

	next := 0
	for _, id := range nodeIDs {
		label, ok := relabel[assignment[id]]
		if !ok {
			label = next
			relabel[assignment[id]] = label
			next++
		}
		assignments[id] = label
		communities[label] = append(communities[label], id)
	}

	return assignments, communities
}
