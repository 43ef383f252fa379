// Package observability provides hooks for metrics and tracing of
// transfer runs.
//
// Libraries call the registered hooks; main decides what backs them. The
// default hooks do nothing, and [PrometheusHooks] records metrics that can
// be written to a node-exporter textfile.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetTransferHooks(observability.NewPrometheusHooks(reg))
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Transfer().OnTransferStart(ctx, source, target)
//	// ... transfer ...
//	observability.Transfer().OnTransferComplete(ctx, source, target, nodes, links, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Transfer Hooks
// =============================================================================

// TransferHooks receives events from the transfer pipeline.
type TransferHooks interface {
	// Transfer events
	OnTransferStart(ctx context.Context, source, target string)
	OnTransferComplete(ctx context.Context, source, target string, nodes, links int, duration time.Duration, err error)

	// Persist events
	OnPersist(ctx context.Context, path string, size int, duration time.Duration, err error)
}

// =============================================================================
// Snapshot Hooks
// =============================================================================

// SnapshotHooks receives events from the snapshot store.
type SnapshotHooks interface {
	// OnSnapshotSaved records a snapshot written before a persist.
	OnSnapshotSaved(ctx context.Context, size int)

	// OnSnapshotRestored records a container restored from a snapshot.
	OnSnapshotRestored(ctx context.Context, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopTransferHooks is a no-op implementation of TransferHooks.
type NoopTransferHooks struct{}

func (NoopTransferHooks) OnTransferStart(context.Context, string, string) {}
func (NoopTransferHooks) OnTransferComplete(context.Context, string, string, int, int, time.Duration, error) {
}
func (NoopTransferHooks) OnPersist(context.Context, string, int, time.Duration, error) {}

// NoopSnapshotHooks is a no-op implementation of SnapshotHooks.
type NoopSnapshotHooks struct{}

func (NoopSnapshotHooks) OnSnapshotSaved(context.Context, int)    {}
func (NoopSnapshotHooks) OnSnapshotRestored(context.Context, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	transferHooks TransferHooks = NoopTransferHooks{}
	snapshotHooks SnapshotHooks = NoopSnapshotHooks{}
	hooksMu       sync.RWMutex
)

// SetTransferHooks registers custom transfer hooks.
// This should be called once at application startup before any transfer.
func SetTransferHooks(h TransferHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		transferHooks = h
	}
}

// SetSnapshotHooks registers custom snapshot hooks.
func SetSnapshotHooks(h SnapshotHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		snapshotHooks = h
	}
}

// Transfer returns the registered transfer hooks.
func Transfer() TransferHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return transferHooks
}

// Snapshot returns the registered snapshot hooks.
func Snapshot() SnapshotHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return snapshotHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	transferHooks = NoopTransferHooks{}
	snapshotHooks = NoopSnapshotHooks{}
}
