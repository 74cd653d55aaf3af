package algorithms

import "github.com/graphpulse/graphpulse/pkg/graph"

// Clusterer is the capability shared by the partitioning algorithms: produce
// a node-to-community assignment for a snapshot. Either implementation can
// back the hierarchy or the trend grouping without touching the orchestration.
type Clusterer interface {
	Run(snapshot *graph.Snapshot) map[string]int
}

// LouvainClusterer adapts Louvain to the Clusterer capability.
type LouvainClusterer struct {
	Options LouvainOptions
}

// Run returns the Louvain assignments for the snapshot.
func (c LouvainClusterer) Run(snapshot *graph.Snapshot) map[string]int {
	return Louvain(snapshot, c.Options).Assignments
}

// PropagationClusterer adapts label propagation to the Clusterer capability.
type PropagationClusterer struct {
	Options LabelPropagationOptions
}

// Run returns the label propagation assignments for the snapshot.
func (c PropagationClusterer) Run(snapshot *graph.Snapshot) map[string]int {
	return LabelPropagation(snapshot, c.Options).Assignments
}
