package snapshot

import "context"

// NullStore discards snapshots. It backs runs with snapshots disabled.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return &NullStore{}
}

// Put does nothing.
func (s *NullStore) Put(ctx context.Context, snap Snapshot) error { return nil }

// Get always returns a miss.
func (s *NullStore) Get(ctx context.Context, path string) (*Snapshot, bool, error) {
	return nil, false, nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, path string) error { return nil }

// Close does nothing.
func (s *NullStore) Close() error { return nil }

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
