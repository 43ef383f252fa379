package container

import (
	"encoding/json"

	"github.com/matzehuels/shaderxfer/pkg/errors"
	"github.com/matzehuels/shaderxfer/pkg/shader"
)

type material struct {
	Name  string `json:"name"`
	Nodes []node `json:"nodes"`
	Links []link `json:"links"`
}

type node struct {
	Name     string                  `json:"name"`
	Type     string                  `json:"type"`
	Location shader.Vec2             `json:"location"`
	Inputs   map[string]shader.Value `json:"inputs,omitempty"`
	Outputs  map[string]shader.Value `json:"outputs,omitempty"`
}

type link struct {
	FromNode   string `json:"from_node"`
	FromSocket string `json:"from_socket"`
	ToNode     string `json:"to_node"`
	ToSocket   string `json:"to_socket"`
}

func decodeMaterial(raw json.RawMessage, reg *shader.Registry) (*shader.Graph, error) {
	var m material
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidContainer, err, "decode")
	}

	g := shader.NewGraph(reg)
	for _, nd := range m.Nodes {
		if nd.Name == "" {
			return nil, errors.New(errors.ErrCodeInvalidContainer, "node of type %q has no name", nd.Type)
		}
		n, err := g.NewNode(nd.Type)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeUnknownNodeType, err, "node %q", nd.Name)
		}
		if err := g.RenameNode(n, nd.Name); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidContainer, err, "node %q", nd.Name)
		}
		n.Location = nd.Location
		if err := applyDefaults(n, nd.Inputs, n.Input); err != nil {
			return nil, err
		}
		if err := applyDefaults(n, nd.Outputs, n.Output); err != nil {
			return nil, err
		}
	}

	for _, l := range m.Links {
		from, err := endpoint(g, l.FromNode, l.FromSocket, (*shader.Node).Output)
		if err != nil {
			return nil, err
		}
		to, err := endpoint(g, l.ToNode, l.ToSocket, (*shader.Node).Input)
		if err != nil {
			return nil, err
		}
		if _, err := g.Link(from, to); err != nil {
			return nil, errors.Wrap(errors.ErrCodeDanglingEndpoint, err,
				"link %s.%s -> %s.%s", l.FromNode, l.FromSocket, l.ToNode, l.ToSocket)
		}
	}
	return g, nil
}

func applyDefaults(n *shader.Node, values map[string]shader.Value, lookup func(string) (*shader.Socket, bool)) error {
	for name, v := range values {
		s, ok := lookup(name)
		if !ok {
			return errors.New(errors.ErrCodeSocketNameMismatch,
				"node %q (%s) has no socket %q", n.Name(), n.Type, name)
		}
		s.Default = v.Clone()
	}
	return nil
}

func endpoint(g *shader.Graph, nodeName, socketName string, lookup func(*shader.Node, string) (*shader.Socket, bool)) (*shader.Socket, error) {
	n, ok := g.Node(nodeName)
	if !ok {
		return nil, errors.New(errors.ErrCodeDanglingEndpoint, "link references unknown node %q", nodeName)
	}
	s, ok := lookup(n, socketName)
	if !ok {
		return nil, errors.New(errors.ErrCodeDanglingEndpoint,
			"link references unknown socket %q on node %q", socketName, nodeName)
	}
	return s, nil
}

func encodeMaterial(name string, g *shader.Graph) material {
	m := material{
		Name:  name,
		Nodes: make([]node, 0, g.NodeCount()),
		Links: make([]link, 0, g.LinkCount()),
	}
	for _, n := range g.Nodes() {
		m.Nodes = append(m.Nodes, node{
			Name:     n.Name(),
			Type:     n.Type,
			Location: n.Location,
			Inputs:   socketValues(n.Inputs),
			Outputs:  socketValues(n.Outputs),
		})
	}
	for _, l := range g.Links() {
		m.Links = append(m.Links, link{
			FromNode:   l.From.Node().Name(),
			FromSocket: l.From.Name,
			ToNode:     l.To.Node().Name(),
			ToSocket:   l.To.Name,
		})
	}
	return m
}

// socketValues collects the defaults worth storing. Shader sockets carry
// no literal and are skipped.
func socketValues(sockets []*shader.Socket) map[string]shader.Value {
	var out map[string]shader.Value
	for _, s := range sockets {
		if len(s.Default) == 0 {
			continue
		}
		if out == nil {
			out = make(map[string]shader.Value)
		}
		out[s.Name] = s.Default.Clone()
	}
	return out
}
