package transfer

import (
	"fmt"

	"github.com/matzehuels/shaderxfer/pkg/errors"
)

// Phase names the step of a transfer run that failed.
type Phase string

const (
	PhaseResolve   Phase = "resolve"
	PhaseCreate    Phase = "create"
	PhaseDefaults  Phase = "defaults"
	PhaseReconnect Phase = "reconnect"
	PhasePersist   Phase = "persist"
)

// Error reports where a transfer failed: the phase, and the node and
// socket names involved when there are any. The wrapped error carries the
// [errors.Code].
type Error struct {
	Phase  Phase
	Node   string
	Socket string
	Err    error
}

func (e *Error) Error() string {
	switch {
	case e.Node != "" && e.Socket != "":
		return fmt.Sprintf("%s: node %q socket %q: %v", e.Phase, e.Node, e.Socket, e.Err)
	case e.Node != "":
		return fmt.Sprintf("%s: node %q: %v", e.Phase, e.Node, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Phase, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func fail(phase Phase, node, socket string, code errors.Code, cause error, format string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Node:   node,
		Socket: socket,
		Err:    errors.Wrap(code, cause, format, args...),
	}
}
