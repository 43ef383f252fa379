package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shaderxfer/pkg/container"
	"github.com/matzehuels/shaderxfer/pkg/shader"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <container> [material]",
		Short: "List the materials of a container or the nodes of one material",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.registry()
			if err != nil {
				return err
			}
			ct, err := container.Open(args[0], reg)
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return inspectContainer(ct)
			}
			g, err := ct.Material(args[1])
			if err != nil {
				return err
			}
			inspectMaterial(args[1], g)
			return nil
		},
	}
}

func inspectContainer(ct *container.Container) error {
	names := ct.Materials()
	printTitle(fmt.Sprintf("%s (%d materials)", ct.Path(), len(names)))
	for _, name := range names {
		g, err := ct.Material(name)
		if err != nil {
			return err
		}
		printKeyValue(name, fmt.Sprintf("%d nodes, %d links", g.NodeCount(), g.LinkCount()))
	}
	return nil
}

func inspectMaterial(name string, g *shader.Graph) {
	printTitle(name)
	printStats(g.NodeCount(), g.LinkCount())
	for _, n := range g.Nodes() {
		printInfo("%s %s", StyleValue.Render(n.Name()), StyleDim.Render(fmt.Sprintf("%s @ (%g, %g)", n.Type, n.Location.X, n.Location.Y)))
		for _, s := range n.Inputs {
			printDetail("%s = %s", s.Name, inputValue(s))
		}
	}
	for _, l := range g.Links() {
		printDetail("%s", l)
	}
}

func inputValue(s *shader.Socket) string {
	if !s.IsLinked() {
		return s.Default.String()
	}
	from := make([]string, 0, len(s.Links()))
	for _, l := range s.Links() {
		from = append(from, l.From.Node().Name()+"."+l.From.Name)
	}
	return "<- " + strings.Join(from, ", ")
}
