package snapshotcache

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/golang/snappy"

	"github.com/graphpulse/graphpulse/pkg/graph"
)

// FileStore persists snapshots as snappy-compressed JSON files, one per key.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot cache dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// path maps a key to a file path. Keys are caller-controlled strings, so they
// are escaped to keep them inside the cache directory.
func (f *FileStore) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".snap")
}

// Store writes the snapshot under key, replacing any previous file. The write
// goes through a temp file and rename so readers never see a partial file.
func (f *FileStore) Store(ctx context.Context, key string, snapshot *graph.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot %q: %w", key, err)
	}
	compressed := snappy.Encode(nil, data)

	target := f.path(key)
	tmp, err := os.CreateTemp(f.dir, "snap-*")
	if err != nil {
		return fmt.Errorf("stage snapshot %q: %w", key, err)
	}
	if _, err := tmp.Write(compressed); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close snapshot %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("commit snapshot %q: %w", key, err)
	}
	return nil
}

// Load reads a snapshot back. A missing key returns (nil, nil).
func (f *FileStore) Load(key string) (*graph.Snapshot, error) {
	compressed, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot %q: %w", key, err)
	}

	data, err := snappy.Decode(nil, compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot %q: %w", key, err)
	}

	var snapshot graph.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot %q: %w", key, err)
	}
	return &snapshot, nil
}
