package algorithms

import (
	"time"

	"github.com/graphpulse/graphpulse/pkg/graph"
)

// testSnapshot builds a snapshot directly from edge tuples, registering every
// endpoint as a user node in first-appearance order.
func testSnapshot(generatedAt time.Time, edges ...*graph.Edge) *graph.Snapshot {
	seen := make(map[string]bool)
	nodes := make([]*graph.Node, 0)
	addNode := func(id string) {
		if seen[id] {
			return
		}
		seen[id] = true
		nodes = append(nodes, &graph.Node{Kind: graph.NodeKindUser, ID: id, User: &graph.UserAttributes{}})
	}
	for _, e := range edges {
		addNode(e.Source)
		addNode(e.Target)
	}
	return &graph.Snapshot{Nodes: nodes, Edges: edges, GeneratedAt: generatedAt}
}

// edge builds a weighted edge without evidence timestamps.
func edge(source, target string, weight float64) *graph.Edge {
	return &graph.Edge{Kind: graph.EdgeKindInteract, Source: source, Target: target, Weight: weight}
}

// timedEdge builds a weighted edge with first/last seen evidence.
func timedEdge(source, target string, weight float64, firstSeen, lastSeen time.Time) *graph.Edge {
	e := edge(source, target, weight)
	e.Evidence.FirstSeenAt = &firstSeen
	e.Evidence.LastSeenAt = &lastSeen
	return e
}

// danglingEdgeSnapshot holds two disconnected nodes whose only edges point at
// ids that are not snapshot nodes.
func danglingEdgeSnapshot(generatedAt time.Time) *graph.Snapshot {
	return &graph.Snapshot{
		Nodes: []*graph.Node{
			{Kind: graph.NodeKindUser, ID: "x", User: &graph.UserAttributes{}},
			{Kind: graph.NodeKindUser, ID: "y", User: &graph.UserAttributes{}},
		},
		Edges: []*graph.Edge{
			edge("x", "ghostA", 1.0),
			edge("y", "ghostB", 1.0),
		},
		GeneratedAt: generatedAt,
	}
}

// triangle appends the three undirected-ish edges of a weighted 3-clique.
func triangle(a, b, c string, weight float64) []*graph.Edge {
	return []*graph.Edge{
		edge(a, b, weight),
		edge(b, c, weight),
		edge(c, a, weight),
	}
}
