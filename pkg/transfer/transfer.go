// Package transfer copies a material node graph onto another graph.
//
// [Transfer] rebuilds the target from scratch: every source node is
// recreated by type, name and location, unlinked inputs and all outputs
// receive the source values, and every source link is reconnected between the new
// nodes by node and socket name. Links are reconnected in a second pass
// once all nodes exist, so cycles and forward references need no ordering.
package transfer

import (
	"github.com/matzehuels/shaderxfer/pkg/errors"
	"github.com/matzehuels/shaderxfer/pkg/shader"
)

// Stats summarizes a successful transfer.
type Stats struct {
	Nodes    int // nodes created in the target
	Links    int // links reconnected in the target
	Defaults int // input defaults copied
}

// pending is a source link waiting for its producing node to exist in the
// target. The consuming side is already resolved.
type pending struct {
	link *shader.Link
	to   *shader.Socket
}

// Transfer replaces the contents of target with a copy of source.
//
// The whole run happens inside [shader.Graph.Edit]: if any step fails the
// target keeps its previous nodes and links. Errors are *[Error] values
// naming the phase, node and socket, wrapping a coded [errors.Error].
// source is never modified.
func Transfer(source, target *shader.Graph) error {
	_, err := Run(source, target)
	return err
}

// Run is [Transfer] returning counts of what was copied.
func Run(source, target *shader.Graph) (Stats, error) {
	var stats Stats
	err := target.Edit(func(g *shader.Graph) error {
		s, err := rebuild(source, g)
		stats = s
		return err
	})
	if err != nil {
		return Stats{}, err
	}
	return stats, nil
}

func rebuild(source, g *shader.Graph) (Stats, error) {
	var stats Stats
	g.Clear()

	var deferred []pending
	for _, n := range source.Nodes() {
		created, err := g.NewNode(n.Type)
		if err != nil {
			return stats, fail(PhaseCreate, n.Name(), "", errors.ErrCodeUnknownNodeType, err,
				"cannot create node of type %q", n.Type)
		}
		if err := g.RenameNode(created, n.Name()); err != nil {
			return stats, fail(PhaseCreate, n.Name(), "", errors.ErrCodeInternal, err, "cannot name node")
		}
		created.Location = n.Location
		stats.Nodes++

		for _, in := range n.Inputs {
			dst, ok := created.Input(in.Name)
			if !ok {
				return stats, fail(PhaseDefaults, n.Name(), in.Name, errors.ErrCodeSocketNameMismatch, nil,
					"type %q has no input %q in the target registry", n.Type, in.Name)
			}
			if in.IsLinked() {
				for _, l := range in.Links() {
					deferred = append(deferred, pending{link: l, to: dst})
				}
				continue
			}
			dst.Default = in.Default.Clone()
			stats.Defaults++
		}

		// Value and RGB nodes hold their constant on the output socket.
		// Outputs missing from the target type only matter when linked,
		// which the reconnect pass reports.
		for _, o := range n.Outputs {
			if dst, ok := created.Output(o.Name); ok {
				dst.Default = o.Default.Clone()
			}
		}
	}

	for _, p := range deferred {
		fromNode := p.link.From.Node().Name()
		producer, ok := g.Node(fromNode)
		if !ok {
			return stats, fail(PhaseReconnect, fromNode, p.link.From.Name, errors.ErrCodeDanglingEndpoint, nil,
				"link %s: producing node missing from target", p.link)
		}
		out, ok := producer.Output(p.link.From.Name)
		if !ok {
			return stats, fail(PhaseReconnect, fromNode, p.link.From.Name, errors.ErrCodeDanglingEndpoint, nil,
				"link %s: type %q has no output %q in the target registry", p.link, producer.Type, p.link.From.Name)
		}
		if _, err := g.Link(out, p.to); err != nil {
			return stats, fail(PhaseReconnect, p.to.Node().Name(), p.to.Name, errors.ErrCodeDanglingEndpoint, err,
				"link %s", p.link)
		}
		stats.Links++
	}
	return stats, nil
}
