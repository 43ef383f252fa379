// Package render draws material node graphs with Graphviz.
//
// [ToDOT] lays each node out as a record with its inputs on the left and
// outputs on the right; links connect the matching ports. [SVG] renders a
// DOT document to SVG through the embedded Graphviz library.
package render

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/shaderxfer/pkg/shader"
)

// Options configures DOT output.
type Options struct {
	// Values appends unlinked input defaults to the input labels.
	Values bool
}

// ToDOT converts a material graph to Graphviz DOT. Nodes appear in graph
// order and links in creation order, so the output is deterministic.
func ToDOT(material string, g *shader.Graph, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", material)
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  edge [arrowsize=0.6];\n")
	buf.WriteString("\n")

	nodes := g.Nodes()
	ids := make(map[*shader.Node]string, len(nodes))
	for i, n := range nodes {
		ids[n] = fmt.Sprintf("n%d", i)
		fmt.Fprintf(&buf, "  %s [label=\"%s\"];\n", ids[n], recordLabel(n, opts))
	}

	buf.WriteString("\n")
	for _, l := range g.Links() {
		from, to := l.From.Node(), l.To.Node()
		fmt.Fprintf(&buf, "  %s:o%d -> %s:i%d;\n",
			ids[from], slices.Index(from.Outputs, l.From),
			ids[to], slices.Index(to.Inputs, l.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func recordLabel(n *shader.Node, opts Options) string {
	inputs := make([]string, len(n.Inputs))
	for i, s := range n.Inputs {
		text := s.Name
		if opts.Values && !s.IsLinked() && len(s.Default) > 0 {
			text += " = " + s.Default.String()
		}
		inputs[i] = fmt.Sprintf("<i%d> %s", i, escape(text))
	}
	outputs := make([]string, len(n.Outputs))
	for i, s := range n.Outputs {
		outputs[i] = fmt.Sprintf("<o%d> %s", i, escape(s.Name))
	}
	title := escape(n.Name()) + `\n` + escape(n.Type)
	return fmt.Sprintf("{%s|{{%s}|{%s}}}", title, strings.Join(inputs, "|"), strings.Join(outputs, "|"))
}

// escape quotes the characters that are special inside record labels.
func escape(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		`{`, `\{`,
		`}`, `\}`,
		`|`, `\|`,
		`<`, `\<`,
		`>`, `\>`,
	)
	return r.Replace(s)
}

// SVG renders a DOT document to SVG.
func SVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}
