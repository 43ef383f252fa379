package shader_test

import (
	"fmt"

	"github.com/matzehuels/shaderxfer/pkg/shader"
)

func ExampleGraph_Link() {
	g := shader.NewGraph(shader.Builtin())
	wire, _ := g.NewNode("ShaderNodeWireframe")
	emit, _ := g.NewNode("ShaderNodeEmission")

	fac, _ := wire.Output("Fac")
	strength, _ := emit.Input("Strength")
	l, _ := g.Link(fac, strength)

	fmt.Println(l)
	fmt.Println("linked:", strength.IsLinked())
	// Output:
	// Wireframe.Fac -> Emission.Strength
	// linked: true
}

func ExampleGraph_Edit() {
	g := shader.NewGraph(shader.Builtin())
	_, _ = g.NewNode("ShaderNodeValue")

	err := g.Edit(func(s *shader.Graph) error {
		s.Clear()
		_, err := s.NewNode("ShaderNodeTypo")
		return err
	})

	fmt.Println("error:", err)
	fmt.Println("nodes:", g.NodeCount())
	// Output:
	// error: unknown node type: ShaderNodeTypo
	// nodes: 1
}
