// Package shader models material node graphs: typed nodes with named input
// and output sockets, and directed links between them.
//
// # Registry
//
// Nodes are instantiated from a [Registry] that maps type ids to socket
// layouts. [Builtin] returns the common shader node types; extra types can
// be loaded from TOML with [LoadRegistryTOML]:
//
//	reg := shader.Builtin()
//	extra, err := shader.LoadRegistryTOML("nodes.toml")
//	if err != nil {
//	    return err
//	}
//	reg.Merge(extra)
//
// # Graphs
//
// A [Graph] owns its nodes and links. Links reference sockets by identity
// and both endpoints must belong to nodes of the same graph. An input
// socket keeps a single link unless its definition allows several; linking
// again replaces the old link.
//
//	g := shader.NewGraph(reg)
//	val, _ := g.NewNode("ShaderNodeValue")
//	math, _ := g.NewNode("ShaderNodeMath")
//	out, _ := val.Output("Value")
//	x, _ := math.Input("Value")
//	_, err := g.Link(out, x)
//
// # Bulk edits
//
// [Graph.Edit] applies a function to a scratch copy and swaps it in only on
// success, so a failed multi-step edit leaves the graph untouched.
package shader
