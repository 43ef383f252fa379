package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shaderxfer/pkg/shader"
)

// typesCommand creates the types command.
func (c *CLI) typesCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the known node types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.registry()
			if err != nil {
				return err
			}
			for _, t := range reg.Types() {
				printKeyValue(t.Label, t.ID)
				if verbose {
					printDetail("in:  %s", socketList(t.Inputs))
					printDetail("out: %s", socketList(t.Outputs))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "sockets", "s", false, "list input and output sockets")

	return cmd
}

func socketList(defs []shader.SocketDef) string {
	if len(defs) == 0 {
		return "-"
	}
	parts := make([]string, len(defs))
	for i, d := range defs {
		parts[i] = fmt.Sprintf("%s (%s)", d.Name, d.Kind)
	}
	return strings.Join(parts, ", ")
}
