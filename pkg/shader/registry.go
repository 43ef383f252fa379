package shader

import (
	"maps"
	"slices"
)

// SocketKind is the data type carried by a socket.
type SocketKind string

const (
	KindFloat  SocketKind = "float"
	KindInt    SocketKind = "int"
	KindBool   SocketKind = "bool"
	KindVector SocketKind = "vector"
	KindColor  SocketKind = "color"
	KindShader SocketKind = "shader"
)

// SocketDef describes one socket exposed by a node type.
type SocketDef struct {
	Name    string
	Kind    SocketKind
	Default Value
	// Multi allows more than one incoming link on an input socket.
	Multi bool
}

// NodeType describes a kind of node the registry can instantiate.
// A type without inputs or outputs has an empty slice, never a missing one.
type NodeType struct {
	ID      string
	Label   string // base for automatic node names; ID when empty
	Inputs  []SocketDef
	Outputs []SocketDef
}

func (t NodeType) label() string {
	if t.Label != "" {
		return t.Label
	}
	return t.ID
}

// Registry resolves node type ids to their socket layout.
//
// The zero value is not usable; create one with NewRegistry or Builtin.
type Registry struct {
	types map[string]NodeType
}

// NewRegistry returns a registry holding the given types.
// Later types with a duplicate ID replace earlier ones.
func NewRegistry(types ...NodeType) *Registry {
	r := &Registry{types: make(map[string]NodeType, len(types))}
	for _, t := range types {
		r.Register(t)
	}
	return r
}

// Register adds t to the registry, replacing any type with the same ID.
func (r *Registry) Register(t NodeType) {
	r.types[t.ID] = t
}

// Lookup returns the node type registered under id.
func (r *Registry) Lookup(id string) (NodeType, bool) {
	t, ok := r.types[id]
	return t, ok
}

// Types returns all registered types sorted by ID.
func (r *Registry) Types() []NodeType {
	ids := slices.Sorted(maps.Keys(r.types))
	out := make([]NodeType, len(ids))
	for i, id := range ids {
		out[i] = r.types[id]
	}
	return out
}

// Len returns the number of registered types.
func (r *Registry) Len() int { return len(r.types) }

// Merge copies every type of o into r, overriding same-ID entries.
func (r *Registry) Merge(o *Registry) {
	maps.Copy(r.types, o.types)
}
