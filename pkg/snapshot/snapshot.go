// Package snapshot keeps a copy of a container's bytes taken right before
// it is overwritten, so a transfer can be undone.
//
// Snapshots are keyed by the absolute path of the container. Only the most
// recent snapshot per container is kept, and entries expire after a TTL.
package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
	"time"
)

// DefaultTTL is how long a snapshot is kept when no TTL is configured.
const DefaultTTL = 7 * 24 * time.Hour

// Snapshot is the saved content of one container file.
type Snapshot struct {
	Path      string    `json:"path"`
	RunID     string    `json:"run_id"`
	Data      []byte    `json:"data"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Expired reports whether the snapshot is past its expiry time.
func (s *Snapshot) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Store persists snapshots.
type Store interface {
	// Put stores snap, replacing any earlier snapshot of the same path.
	Put(ctx context.Context, snap Snapshot) error
	// Get returns the snapshot for path. Missing and expired snapshots
	// are reported as a miss, not an error.
	Get(ctx context.Context, path string) (*Snapshot, bool, error)
	// Delete removes the snapshot for path, if any.
	Delete(ctx context.Context, path string) error
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// Key returns the store key of a container path. Relative paths are made
// absolute so the same file always maps to the same key.
func Key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return Hash([]byte(filepath.Clean(path)))
}
