package snapshotcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphpulse/graphpulse/pkg/graph"
)

func sampleSnapshot() *graph.Snapshot {
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return &graph.Snapshot{
		Nodes: []*graph.Node{
			{Kind: graph.NodeKindUser, ID: "42", User: &graph.UserAttributes{DisplayName: "Author"}},
			{Kind: graph.NodeKindPost, ID: "9001", Post: &graph.PostAttributes{AuthorID: "42"}},
		},
		Edges: []*graph.Edge{
			{
				Kind:   graph.EdgeKindLike,
				Source: "88",
				Target: "9001",
				Weight: 0.375,
				Evidence: graph.Evidence{
					Occurrences:        2,
					ScoreContributions: []float64{0.25, 0.125},
					FirstSeenAt:        &first,
					LastSeenAt:         &last,
				},
			},
		},
		GeneratedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	snapshot := sampleSnapshot()

	require.NoError(t, store.Store(context.Background(), "k1", snapshot))
	assert.Same(t, snapshot, store.Load("k1"))
	assert.Nil(t, store.Load("absent"))
	assert.Equal(t, 1, store.Len())

	// Overwrite under the same key.
	other := sampleSnapshot()
	require.NoError(t, store.Store(context.Background(), "k1", other))
	assert.Same(t, other, store.Load("k1"))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Store(ctx, "k1", sampleSnapshot())
	assert.Error(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	snapshot := sampleSnapshot()
	require.NoError(t, store.Store(context.Background(), "window/2024-01-03", snapshot))

	loaded, err := store.Load("window/2024-01-03")
	require.NoError(t, err)
	require.NotNil(t, loaded)

	assert.True(t, loaded.GeneratedAt.Equal(snapshot.GeneratedAt))
	require.Len(t, loaded.Nodes, 2)
	assert.Equal(t, "42", loaded.Nodes[0].ID)
	require.Len(t, loaded.Edges, 1)
	assert.Equal(t, 0.375, loaded.Edges[0].Weight)
	assert.Equal(t, []float64{0.25, 0.125}, loaded.Edges[0].Evidence.ScoreContributions)
}

func TestFileStore_MissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	loaded, err := store.Load("never-stored")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestFileStore_OverwriteReplaces(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	first := sampleSnapshot()
	require.NoError(t, store.Store(context.Background(), "k", first))

	second := sampleSnapshot()
	second.GeneratedAt = second.GeneratedAt.Add(24 * time.Hour)
	require.NoError(t, store.Store(context.Background(), "k", second))

	loaded, err := store.Load("k")
	require.NoError(t, err)
	assert.True(t, loaded.GeneratedAt.Equal(second.GeneratedAt))
}
