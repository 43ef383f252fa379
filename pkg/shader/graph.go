package shader

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrUnknownNodeType is returned by [Graph.NewNode] when the registry has
	// no definition for the requested type id.
	ErrUnknownNodeType = errors.New("unknown node type")

	// ErrInvalidNodeName is returned by [Graph.RenameNode] for an empty name.
	ErrInvalidNodeName = errors.New("node name must not be empty")

	// ErrDuplicateNodeName is returned by [Graph.RenameNode] when another node
	// in the graph already uses the name.
	ErrDuplicateNodeName = errors.New("duplicate node name")

	// ErrForeignNode is returned when a node passed to a graph method does
	// not belong to that graph.
	ErrForeignNode = errors.New("node does not belong to this graph")

	// ErrForeignSocket is returned by [Graph.Link] when either endpoint lives
	// on a node outside the graph.
	ErrForeignSocket = errors.New("socket does not belong to this graph")

	// ErrLinkDirection is returned by [Graph.Link] unless the link runs from
	// an output socket to an input socket.
	ErrLinkDirection = errors.New("links must run from an output to an input")
)

// Direction tells inputs from outputs.
type Direction int

const (
	Input Direction = iota
	Output
)

func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// Socket is a typed connection point owned by exactly one node.
type Socket struct {
	Name      string
	Kind      SocketKind
	Direction Direction
	// Default is the literal used while the socket has no links.
	Default Value

	multi bool
	node  *Node
	links []*Link
}

// Node returns the node owning s.
func (s *Socket) Node() *Node { return s.node }

// IsLinked reports whether at least one link references s.
func (s *Socket) IsLinked() bool { return len(s.links) > 0 }

// Links returns the links attached to s in creation order.
func (s *Socket) Links() []*Link { return slices.Clone(s.links) }

// Multi reports whether the input accepts more than one link.
func (s *Socket) Multi() bool { return s.multi }

// Node is an instance of a registered node type.
type Node struct {
	Type     string
	Location Vec2
	Inputs   []*Socket
	Outputs  []*Socket

	name string
}

// Name returns the node's name, unique within its graph.
func (n *Node) Name() string { return n.name }

// Input returns the input socket called name.
func (n *Node) Input(name string) (*Socket, bool) { return findSocket(n.Inputs, name) }

// Output returns the output socket called name.
func (n *Node) Output(name string) (*Socket, bool) { return findSocket(n.Outputs, name) }

func findSocket(sockets []*Socket, name string) (*Socket, bool) {
	for _, s := range sockets {
		if s.Name == name {
			return s, true
		}
	}
	return nil, false
}

// Link is a directed edge from an output socket to an input socket.
type Link struct {
	From *Socket
	To   *Socket
}

func (l *Link) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", l.From.node.name, l.From.Name, l.To.node.name, l.To.Name)
}

// Graph is a material's node network. Nodes keep their insertion order,
// which is the iteration order of [Graph.Nodes].
//
// The zero value is not usable; create graphs with NewGraph.
// Graph is not safe for concurrent use.
type Graph struct {
	registry *Registry
	nodes    []*Node
	byName   map[string]*Node
	links    []*Link
}

// NewGraph returns an empty graph that instantiates nodes from reg.
func NewGraph(reg *Registry) *Graph {
	return &Graph{registry: reg, byName: make(map[string]*Node)}
}

// Registry returns the node type registry backing g.
func (g *Graph) Registry() *Registry { return g.registry }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links.
func (g *Graph) LinkCount() int { return len(g.links) }

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []*Node { return slices.Clone(g.nodes) }

// Links returns the links in creation order.
func (g *Graph) Links() []*Link { return slices.Clone(g.links) }

// Node returns the node called name.
func (g *Graph) Node(name string) (*Node, bool) {
	n, ok := g.byName[name]
	return n, ok
}

// NewNode instantiates a node of type typeID with the type's sockets and
// default values. The node gets a free automatic name derived from the
// type label ("Math", "Math.001", ...).
func (g *Graph) NewNode(typeID string) (*Node, error) {
	t, ok := g.registry.Lookup(typeID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, typeID)
	}
	n := &Node{
		Type:    t.ID,
		Inputs:  make([]*Socket, 0, len(t.Inputs)),
		Outputs: make([]*Socket, 0, len(t.Outputs)),
		name:    g.freeName(t.label()),
	}
	for _, d := range t.Inputs {
		n.Inputs = append(n.Inputs, newSocket(n, d, Input))
	}
	for _, d := range t.Outputs {
		n.Outputs = append(n.Outputs, newSocket(n, d, Output))
	}
	g.nodes = append(g.nodes, n)
	g.byName[n.name] = n
	return n, nil
}

func newSocket(n *Node, d SocketDef, dir Direction) *Socket {
	return &Socket{
		Name:      d.Name,
		Kind:      d.Kind,
		Direction: dir,
		Default:   d.Default.Clone(),
		multi:     d.Multi && dir == Input,
		node:      n,
	}
}

func (g *Graph) freeName(base string) string {
	if _, taken := g.byName[base]; !taken {
		return base
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("%s.%03d", base, i)
		if _, taken := g.byName[name]; !taken {
			return name
		}
	}
}

// RenameNode changes the name of n. Renaming a node to its current name is
// a no-op.
func (g *Graph) RenameNode(n *Node, name string) error {
	if !g.ownsNode(n) {
		return ErrForeignNode
	}
	if name == "" {
		return ErrInvalidNodeName
	}
	if name == n.name {
		return nil
	}
	if _, taken := g.byName[name]; taken {
		return fmt.Errorf("%w: %s", ErrDuplicateNodeName, name)
	}
	delete(g.byName, n.name)
	n.name = name
	g.byName[name] = n
	return nil
}

// Link connects an output socket to an input socket of nodes in g. Linking
// into an input that already has a link replaces that link unless the
// input is a multi-input socket.
func (g *Graph) Link(from, to *Socket) (*Link, error) {
	if from == nil || to == nil || !g.ownsNode(from.node) || !g.ownsNode(to.node) {
		return nil, ErrForeignSocket
	}
	if from.Direction != Output || to.Direction != Input {
		return nil, ErrLinkDirection
	}
	if !to.multi {
		for _, old := range slices.Clone(to.links) {
			g.Unlink(old)
		}
	}
	l := &Link{From: from, To: to}
	g.links = append(g.links, l)
	from.links = append(from.links, l)
	to.links = append(to.links, l)
	return l, nil
}

// Unlink removes l from g. Unknown links are ignored.
func (g *Graph) Unlink(l *Link) {
	g.links = slices.DeleteFunc(g.links, func(o *Link) bool { return o == l })
	l.From.links = slices.DeleteFunc(l.From.links, func(o *Link) bool { return o == l })
	l.To.links = slices.DeleteFunc(l.To.links, func(o *Link) bool { return o == l })
}

// Clear removes every node and link.
func (g *Graph) Clear() {
	for _, n := range g.nodes {
		for _, s := range n.Inputs {
			s.links = nil
		}
		for _, s := range n.Outputs {
			s.links = nil
		}
	}
	g.nodes = nil
	g.links = nil
	g.byName = make(map[string]*Node)
}

func (g *Graph) ownsNode(n *Node) bool {
	return n != nil && g.byName[n.name] == n
}

// Clone returns a deep copy of g sharing only the registry.
func (g *Graph) Clone() *Graph {
	c := NewGraph(g.registry)
	sockets := make(map[*Socket]*Socket)
	for _, n := range g.nodes {
		cn := &Node{
			Type:     n.Type,
			Location: n.Location,
			Inputs:   make([]*Socket, len(n.Inputs)),
			Outputs:  make([]*Socket, len(n.Outputs)),
			name:     n.name,
		}
		for i, s := range n.Inputs {
			cn.Inputs[i] = cloneSocket(s, cn)
			sockets[s] = cn.Inputs[i]
		}
		for i, s := range n.Outputs {
			cn.Outputs[i] = cloneSocket(s, cn)
			sockets[s] = cn.Outputs[i]
		}
		c.nodes = append(c.nodes, cn)
		c.byName[cn.name] = cn
	}
	for _, l := range g.links {
		cl := &Link{From: sockets[l.From], To: sockets[l.To]}
		c.links = append(c.links, cl)
		cl.From.links = append(cl.From.links, cl)
		cl.To.links = append(cl.To.links, cl)
	}
	return c
}

func cloneSocket(s *Socket, owner *Node) *Socket {
	return &Socket{
		Name:      s.Name,
		Kind:      s.Kind,
		Direction: s.Direction,
		Default:   s.Default.Clone(),
		multi:     s.multi,
		node:      owner,
	}
}

// Edit runs fn against a scratch copy of g and adopts the copy only when fn
// succeeds. On error g is left exactly as it was, so a bulk edit is either
// fully applied or not applied at all.
//
// Nodes, sockets and links obtained from g before Edit are stale after a
// successful Edit.
func (g *Graph) Edit(fn func(*Graph) error) error {
	scratch := g.Clone()
	if err := fn(scratch); err != nil {
		return err
	}
	g.nodes = scratch.nodes
	g.byName = scratch.byName
	g.links = scratch.links
	return nil
}
