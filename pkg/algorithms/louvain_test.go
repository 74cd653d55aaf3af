package algorithms

import (
	"reflect"
	"testing"

	"github.com/graphpulse/graphpulse/pkg/graph"
)

// twoCliqueSnapshot builds two weighted triangles joined by a weak bridge.
func twoCliqueSnapshot() *graph.Snapshot {
	edges := triangle("a", "b", "c", 1.0)
	edges = append(edges, triangle("d", "e", "f", 1.0)...)
	edges = append(edges, edge("c", "d", 0.1))
	return testSnapshot(now, edges...)
}

func TestLouvain_EmptySnapshot(t *testing.T) {
	result := Louvain(testSnapshot(now), DefaultLouvainOptions())

	if len(result.Assignments) != 0 || len(result.Communities) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
	if result.Modularity != 0 {
		t.Errorf("modularity = %v, want 0", result.Modularity)
	}
}

func TestLouvain_TwoCliquesSeparate(t *testing.T) {
	result := Louvain(twoCliqueSnapshot(), DefaultLouvainOptions())

	left := result.Assignments["a"]
	if result.Assignments["b"] != left || result.Assignments["c"] != left {
		t.Errorf("left clique split: %v", result.Assignments)
	}
	right := result.Assignments["d"]
	if result.Assignments["e"] != right || result.Assignments["f"] != right {
		t.Errorf("right clique split: %v", result.Assignments)
	}
	if left == right {
		t.Error("weak bridge should not merge the cliques")
	}
	if result.Modularity <= 0 {
		t.Errorf("modularity = %v, want > 0 for a clustered graph", result.Modularity)
	}
}

// TestLouvain_Deterministic verifies the pseudo-shuffled visiting order is
// reproducible: identical inputs yield identical partitions and modularity.
func TestLouvain_Deterministic(t *testing.T) {
	first := Louvain(twoCliqueSnapshot(), DefaultLouvainOptions())
	second := Louvain(twoCliqueSnapshot(), DefaultLouvainOptions())

	if !reflect.DeepEqual(first.Assignments, second.Assignments) {
		t.Errorf("assignments differ:\n%v\n%v", first.Assignments, second.Assignments)
	}
	if first.Modularity != second.Modularity {
		t.Errorf("modularity differs: %v vs %v", first.Modularity, second.Modularity)
	}
	if first.Iterations != second.Iterations {
		t.Errorf("iterations differ: %d vs %d", first.Iterations, second.Iterations)
	}
}

func TestLouvain_IsolatedNodesKeepOwnCommunities(t *testing.T) {
	snapshot := testSnapshot(now)
	snapshot.Nodes = append(snapshot.Nodes,
		&graph.Node{Kind: graph.NodeKindUser, ID: "lonely1", User: &graph.UserAttributes{}},
		&graph.Node{Kind: graph.NodeKindUser, ID: "lonely2", User: &graph.UserAttributes{}},
	)

	result := Louvain(snapshot, DefaultLouvainOptions())

	if result.Assignments["lonely1"] == result.Assignments["lonely2"] {
		t.Error("disconnected nodes must not share a community")
	}
}

func TestLouvain_EdgesToMissingEndpointsCarryNoSignal(t *testing.T) {
	result := Louvain(danglingEdgeSnapshot(now), DefaultLouvainOptions())

	if len(result.Assignments) != 2 {
		t.Fatalf("assignments = %v, want exactly the snapshot nodes", result.Assignments)
	}
	if _, ok := result.Assignments["ghostA"]; ok {
		t.Error("missing endpoint must not receive an assignment")
	}
	if result.Assignments["x"] == result.Assignments["y"] {
		t.Errorf("disconnected nodes merged: %v", result.Assignments)
	}
}

func TestLouvain_CommunitiesGroupMembers(t *testing.T) {
	result := Louvain(twoCliqueSnapshot(), DefaultLouvainOptions())

	total := 0
	for community, members := range result.Communities {
		total += len(members)
		for _, id := range members {
			if result.Assignments[id] != community {
				t.Errorf("member %s listed under %d but assigned %d", id, community, result.Assignments[id])
			}
		}
	}
	if total != 6 {
		t.Errorf("community membership covers %d nodes, want 6", total)
	}
}

func TestPseudoShuffle_Reproducible(t *testing.T) {
	a := []string{"a", "b", "c", "d", "e"}
	b := []string{"a", "b", "c", "d", "e"}
	pseudoShuffle(a, 3)
	pseudoShuffle(b, 3)

	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different orders: %v vs %v", a, b)
	}

	c := []string{"a", "b", "c", "d", "e"}
	pseudoShuffle(c, 4)
	// A different seed usually reorders differently; at minimum the result is
	// still a permutation.
	seen := make(map[string]bool)
	for _, id := range c {
		seen[id] = true
	}
	if len(seen) != 5 {
		t.Errorf("shuffle lost elements: %v", c)
	}
}
