package algorithms

import (
	"container/heap"
	"math"
	"sort"

	"github.com/graphpulse/graphpulse/pkg/graph"
)

// CentralityOptions configures the PageRank power iteration.
type CentralityOptions struct {
	DampingFactor float64 // Usually 0.85
	MaxIterations int
	Tolerance     float64 // Convergence threshold on the L1 rank delta
}

// DefaultCentralityOptions returns the default centrality configuration.
func DefaultCentralityOptions() CentralityOptions {
	return CentralityOptions{
		DampingFactor: 0.85,
		MaxIterations: 40,
		Tolerance:     1e-6,
	}
}

// CentralityVector holds the per-node centrality measures.
type CentralityVector struct {
	InDegree    int     `json:"inDegree"`
	OutDegree   int     `json:"outDegree"`
	InStrength  float64 `json:"inStrength"`
	OutStrength float64 `json:"outStrength"`
	PageRank    float64 `json:"pageRank"`
}

// CentralityReport contains centrality measures for all nodes of a snapshot.
type CentralityReport struct {
	Metrics         map[string]CentralityVector `json:"metrics"`
	TotalEdgeWeight float64                     `json:"totalEdgeWeight"`
	Iterations      int                         `json:"iterations"`
	Converged       bool                        `json:"converged"`
	TopByPageRank   []RankedNode                `json:"topByPageRank"`
}

// RankedNode represents a node with its PageRank score.
type RankedNode struct {
	NodeID string  `json:"nodeId"`
	Score  float64 `json:"score"`
}

// AnalyzeCentrality computes degree, strength and PageRank over a snapshot.
//
// PageRank runs by power iteration: each node starts at 1/|N|; every
// iteration redistributes rank along weighted out-edges under the damping
// factor's random-jump floor. Sources with zero out-strength contribute
// nothing. The result is intentionally not renormalized after an early stop;
// on sink-free graphs run to convergence the scores still sum to ~1.
func AnalyzeCentrality(snapshot *graph.Snapshot, opts CentralityOptions) *CentralityReport {
	nodeCount := len(snapshot.Nodes)
	metrics := make(map[string]CentralityVector, nodeCount)
	if nodeCount == 0 {
		return &CentralityReport{Metrics: metrics, Converged: true}
	}

	nodeIDs := make([]string, 0, nodeCount)
	known := make(map[string]bool, nodeCount)
	for _, node := range snapshot.Nodes {
		nodeIDs = append(nodeIDs, node.ID)
		known[node.ID] = true
		metrics[node.ID] = CentralityVector{}
	}

	incoming := make(map[string][]*graph.Edge, nodeCount)
	totalEdgeWeight := 0.0
	for _, edge := range snapshot.Edges {
		totalEdgeWeight += edge.Weight

		// Endpoints normally resolve to registry nodes; ids that slipped in
		// without one still get a rank slot so the maps stay aligned.
		for _, id := range []string{edge.Source, edge.Target} {
			if !known[id] {
				known[id] = true
				nodeIDs = append(nodeIDs, id)
				metrics[id] = CentralityVector{}
			}
		}

		src := metrics[edge.Source]
		src.OutDegree++
		src.OutStrength += edge.Weight
		metrics[edge.Source] = src

		dst := metrics[edge.Target]
		dst.InDegree++
		dst.InStrength += edge.Weight
		metrics[edge.Target] = dst

		incoming[edge.Target] = append(incoming[edge.Target], edge)
	}

	n := float64(len(nodeIDs))
	ranks := make(map[string]float64, len(nodeIDs))
	for _, id := range nodeIDs {
		ranks[id] = 1.0 / n
	}

	next := make(map[string]float64, len(nodeIDs))
	iterations := 0
	converged := false

	for iterations < opts.MaxIterations {
		iterations++

		for _, id := range nodeIDs {
			rank := (1.0 - opts.DampingFactor) / n
			for _, edge := range incoming[id] {
				outStrength := metrics[edge.Source].OutStrength
				if outStrength > 0 {
					rank += opts.DampingFactor * ranks[edge.Source] * edge.Weight / outStrength
				}
			}
			next[id] = rank
		}

		delta := 0.0
		for _, id := range nodeIDs {
			delta += math.Abs(next[id] - ranks[id])
		}

		ranks, next = next, ranks

		if delta < opts.Tolerance {
			converged = true
			break
		}
	}

	for id, rank := range ranks {
		vec := metrics[id]
		vec.PageRank = rank
		metrics[id] = vec
	}

	return &CentralityReport{
		Metrics:         metrics,
		TotalEdgeWeight: totalEdgeWeight,
		Iterations:      iterations,
		Converged:       converged,
		TopByPageRank:   findTopNodes(ranks, 10),
	}
}

// rankedNodeHeap implements a min-heap for RankedNode by score, keeping at
// most N elements so the top-N scan runs in O(n log k).
type rankedNodeHeap []RankedNode

func (h rankedNodeHeap) Len() int           { return len(h) }
func (h rankedNodeHeap) Less(i, j int) bool { return h[i].Score < h[j].Score } // Min-heap
func (h rankedNodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *rankedNodeHeap) Push(x any) {
	*h = append(*h, x.(RankedNode))
}

func (h *rankedNodeHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[0 : n-1]
	return x
}

// findTopNodes finds the top n nodes by score using a min-heap.
func findTopNodes(scores map[string]float64, n int) []RankedNode {
	if n <= 0 {
		return nil
	}

	h := make(rankedNodeHeap, 0, n)
	heap.Init(&h)

	for nodeID, score := range scores {
		rn := RankedNode{NodeID: nodeID, Score: score}
		if h.Len() < n {
			heap.Push(&h, rn)
		} else if score > h[0].Score {
			heap.Pop(&h)
			heap.Push(&h, rn)
		}
	}

	result := make([]RankedNode, h.Len())
	for i := h.Len() - 1; i >= 0; i-- {
		result[i] = heap.Pop(&h).(RankedNode)
	}

	// Stable order: score descending, then node id ascending for determinism.
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].NodeID < result[j].NodeID
	})

	return result
}
