package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shaderxfer/pkg/container"
	"github.com/matzehuels/shaderxfer/pkg/render"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output file; .dot writes DOT, anything else SVG
	values bool   // show unlinked input values
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <container> <material>",
		Short: "Draw a material's node graph as SVG or DOT",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := c.registry()
			if err != nil {
				return err
			}
			ct, err := container.Open(args[0], reg)
			if err != nil {
				return err
			}
			material := args[1]
			g, err := ct.Material(material)
			if err != nil {
				return err
			}

			output := opts.output
			if output == "" {
				output = outputName(material)
			}

			prog := newProgress(c.Logger)
			dot := render.ToDOT(material, g, render.Options{Values: opts.values})
			data := []byte(dot)
			if !strings.EqualFold(filepath.Ext(output), ".dot") {
				if data, err = render.SVG(cmd.Context(), dot); err != nil {
					return fmt.Errorf("render %s: %w", material, err)
				}
			}
			if err := container.WriteFileAtomic(output, data); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			prog.done("Rendered " + material)

			printSuccess("Rendered %s", material)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (.svg or .dot; default <material>.svg)")
	cmd.Flags().BoolVar(&opts.values, "values", false, "show unlinked input values")

	return cmd
}

// outputName derives a file name from a material name.
func outputName(material string) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, material)
	return name + ".svg"
}
