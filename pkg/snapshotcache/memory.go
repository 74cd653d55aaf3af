// Package snapshotcache provides reference implementations of the pipeline's
// SnapshotStore contract: an in-memory store for tests and embedding, and a
// compressed file store for simple durable persistence.
package snapshotcache

import (
	"context"
	"sync"

	"github.com/graphpulse/graphpulse/pkg/graph"
)

// MemoryStore keeps snapshots in a map. Snapshots are immutable after
// assembly, so storing the pointer is safe.
type MemoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*graph.Snapshot
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snapshots: make(map[string]*graph.Snapshot)}
}

// Store saves a snapshot under key, overwriting any previous value.
func (m *MemoryStore) Store(ctx context.Context, key string, snapshot *graph.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshots[key] = snapshot
	return nil
}

// Load returns the snapshot stored under key, or nil if absent.
func (m *MemoryStore) Load(key string) *graph.Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshots[key]
}

// Len returns the number of stored snapshots.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.snapshots)
}
