package pipeline

import (
	"path/filepath"

	"github.com/matzehuels/shaderxfer/pkg/errors"
)

// Request names the source and target materials of one transfer run.
type Request struct {
	SourcePath     string // container holding the source material
	TargetPath     string // container holding the target material; rewritten on success
	SourceMaterial string
	TargetMaterial string

	// DryRun performs the transfer in memory without writing anything.
	DryRun bool
	// CreateTarget adds the target material when the container lacks it.
	CreateTarget bool
}

// Validate checks that every field is usable and that the request does not
// name the same material as both source and target.
func (r Request) Validate() error {
	if err := errors.ValidateContainerPath(r.SourcePath); err != nil {
		return err
	}
	if err := errors.ValidateContainerPath(r.TargetPath); err != nil {
		return err
	}
	if err := errors.ValidateMaterialName(r.SourceMaterial); err != nil {
		return err
	}
	if err := errors.ValidateMaterialName(r.TargetMaterial); err != nil {
		return err
	}
	if r.SourceMaterial == r.TargetMaterial && samePath(r.SourcePath, r.TargetPath) {
		return errors.New(errors.ErrCodeNameCollision,
			"source and target are the same material %q in %s", r.SourceMaterial, r.SourcePath)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
