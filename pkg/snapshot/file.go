package snapshot

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore keeps snapshots as JSON files below a directory.
type FileStore struct {
	mu  sync.Mutex
	dir string
	ttl time.Duration
	now func() time.Time
}

// NewFileStore creates a store in dir, creating the directory if needed.
// A ttl of zero or less selects DefaultTTL.
func NewFileStore(dir string, ttl time.Duration) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &FileStore{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Dir returns the directory holding the snapshots.
func (s *FileStore) Dir() string { return s.dir }

// Put stores snap. CreatedAt and ExpiresAt are filled in when zero.
func (s *FileStore) Put(ctx context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = now
	}
	if snap.ExpiresAt.IsZero() {
		snap.ExpiresAt = snap.CreatedAt.Add(s.ttl)
	}
	if abs, err := filepath.Abs(snap.Path); err == nil {
		snap.Path = abs
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	path := s.path(snap.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Get retrieves the snapshot of the container at path.
func (s *FileStore) Get(ctx context.Context, path string) (*Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file := s.path(path)
	data, err := os.ReadFile(file)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		// Corrupt entry - treat as miss
		_ = os.Remove(file)
		return nil, false, nil
	}
	if snap.Expired(s.now()) {
		_ = os.Remove(file)
		return nil, false, nil
	}
	return &snap, true, nil
}

// Delete removes the snapshot of the container at path.
func (s *FileStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(path))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Clear removes every snapshot file and returns how many were removed.
func (s *FileStore) Clear(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	err := filepath.WalkDir(s.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors, continue walking
		}
		if path == s.dir {
			return nil
		}
		if !d.IsDir() && filepath.Ext(path) == ".json" {
			if err := os.Remove(path); err == nil {
				count++
			}
		}
		return nil
	})
	if err != nil {
		return count, err
	}

	// Clean up empty subdirectories
	entries, _ := os.ReadDir(s.dir)
	for _, e := range entries {
		if e.IsDir() {
			_ = os.Remove(filepath.Join(s.dir, e.Name()))
		}
	}
	return count, nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// path converts a container path to a snapshot file path.
// The first two hash characters form a subdirectory.
func (s *FileStore) path(container string) string {
	key := Key(container)
	return filepath.Join(s.dir, key[:2], key[2:]+".json")
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
