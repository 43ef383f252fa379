// Package pipeline runs a complete transfer: resolve both materials,
// rebuild the target graph, snapshot the target container and persist it.
package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/shaderxfer/pkg/container"
	"github.com/matzehuels/shaderxfer/pkg/errors"
	"github.com/matzehuels/shaderxfer/pkg/observability"
	"github.com/matzehuels/shaderxfer/pkg/shader"
	"github.com/matzehuels/shaderxfer/pkg/snapshot"
	"github.com/matzehuels/shaderxfer/pkg/transfer"
)

// Runner executes transfer requests against one node type registry.
//
// The Runner holds no per-run state; a single Runner can serve any number
// of sequential runs.
type Runner struct {
	Registry *shader.Registry
	// SourceRegistry resolves the source container when the source comes
	// from an environment with different node definitions. Nil means
	// Registry.
	SourceRegistry *shader.Registry
	Snapshots      snapshot.Store
	Logger         *log.Logger
}

// NewRunner creates a runner. A nil registry selects shader.Builtin, a nil
// store disables snapshots and a nil logger selects log.Default.
func NewRunner(reg *shader.Registry, snaps snapshot.Store, logger *log.Logger) *Runner {
	if reg == nil {
		reg = shader.Builtin()
	}
	if snaps == nil {
		snaps = snapshot.NewNullStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Registry: reg, Snapshots: snaps, Logger: logger}
}

// Result describes a finished run.
type Result struct {
	RunID     string
	Stats     transfer.Stats
	Persisted bool
	Snapshot  bool // a snapshot of the previous target was stored
	Duration  time.Duration
}

// Run executes req. Any error before persistence leaves the target file
// untouched; errors from the transfer itself are *transfer.Error values.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	logger := r.Logger.With("run", res.RunID[:8])

	srcName := req.SourcePath + ":" + req.SourceMaterial
	dstName := req.TargetPath + ":" + req.TargetMaterial
	hooks := observability.Transfer()
	hooks.OnTransferStart(ctx, srcName, dstName)
	// abort reports a run that ended before the target graph was rebuilt.
	abort := func(err error) (*Result, error) {
		hooks.OnTransferComplete(ctx, srcName, dstName, 0, 0, time.Since(start), err)
		return nil, err
	}

	if err := req.Validate(); err != nil {
		return abort(err)
	}

	srcReg := r.SourceRegistry
	if srcReg == nil {
		srcReg = r.Registry
	}
	src, err := resolve(srcReg, req.SourcePath, req.SourceMaterial, false)
	if err != nil {
		return abort(err)
	}
	logger.Debug("resolved source", "container", req.SourcePath, "material", req.SourceMaterial,
		"nodes", src.graph.NodeCount(), "links", src.graph.LinkCount())

	dst, err := resolve(r.Registry, req.TargetPath, req.TargetMaterial, req.CreateTarget)
	if err != nil {
		return abort(err)
	}
	logger.Debug("resolved target", "container", req.TargetPath, "material", req.TargetMaterial,
		"nodes", dst.graph.NodeCount(), "links", dst.graph.LinkCount())

	if err := ctx.Err(); err != nil {
		return abort(err)
	}

	transferStart := time.Now()
	stats, err := transfer.Run(src.graph, dst.graph)
	hooks.OnTransferComplete(ctx, srcName, dstName, stats.Nodes, stats.Links, time.Since(start), err)
	if err != nil {
		logger.Error("transfer failed; target not written", "err", err)
		return nil, err
	}
	res.Stats = stats
	logger.Info("rebuilt target graph",
		"nodes", stats.Nodes,
		"links", stats.Links,
		"defaults", stats.Defaults,
		"duration", time.Since(transferStart))

	if req.DryRun {
		logger.Info("dry run; target not written", "container", req.TargetPath)
		res.Duration = time.Since(start)
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.snapshot(ctx, dst.container, res.RunID); err != nil {
		return nil, &transfer.Error{Phase: transfer.PhasePersist,
			Err: errors.Wrap(errors.ErrCodePersist, err, "snapshot %s", req.TargetPath)}
	}
	res.Snapshot = !isNull(r.Snapshots)

	persistStart := time.Now()
	err = dst.container.Save()
	observability.Transfer().OnPersist(ctx, req.TargetPath, len(dst.container.Bytes()), time.Since(persistStart), err)
	if err != nil {
		return nil, &transfer.Error{Phase: transfer.PhasePersist, Err: err}
	}
	res.Persisted = true
	res.Duration = time.Since(start)
	logger.Info("saved target container", "container", req.TargetPath, "duration", time.Since(persistStart))
	return res, nil
}

type resolved struct {
	container *container.Container
	graph     *shader.Graph
}

// resolve opens path into its own Container so source and target never
// share state, even when both live in the same file. With create, a
// missing material is added empty.
func resolve(reg *shader.Registry, path, material string, create bool) (resolved, error) {
	c, err := container.Open(path, reg)
	if err != nil {
		return resolved{}, &transfer.Error{Phase: transfer.PhaseResolve, Err: err}
	}
	g, err := c.Material(material)
	if create && errors.Is(err, errors.ErrCodeMaterialNotFound) {
		g, err = c.Create(material)
	}
	if err != nil {
		return resolved{}, &transfer.Error{Phase: transfer.PhaseResolve, Err: err}
	}
	return resolved{container: c, graph: g}, nil
}

func (r *Runner) snapshot(ctx context.Context, c *container.Container, runID string) error {
	if isNull(r.Snapshots) {
		return nil
	}
	data := c.Bytes()
	if err := r.Snapshots.Put(ctx, snapshot.Snapshot{Path: c.Path(), RunID: runID, Data: data}); err != nil {
		return err
	}
	observability.Snapshot().OnSnapshotSaved(ctx, len(data))
	return nil
}

func isNull(s snapshot.Store) bool {
	_, ok := s.(*snapshot.NullStore)
	return ok
}

// Restore writes the stored snapshot of path back over the container.
// The snapshot is kept, so a restore can be repeated.
func (r *Runner) Restore(ctx context.Context, path string) (*snapshot.Snapshot, error) {
	snap, ok, err := r.Snapshots.Get(ctx, path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read snapshot")
	}
	if !ok {
		return nil, errors.New(errors.ErrCodeSnapshotNotFound, "no snapshot for %s", path)
	}
	if _, err := container.Parse(snap.Data, r.Registry); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidContainer, err, "snapshot for %s is not a valid container", path)
	}
	if err := container.WriteFileAtomic(path, snap.Data); err != nil {
		return nil, errors.Wrap(errors.ErrCodePersist, err, "restore %s", path)
	}
	observability.Snapshot().OnSnapshotRestored(ctx, len(snap.Data))
	r.Logger.Info("restored container", "container", path, "run", snap.RunID, "taken", snap.CreatedAt.Format(time.RFC3339))
	return snap, nil
}
