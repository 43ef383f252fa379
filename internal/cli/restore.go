package cli

import (
	"github.com/spf13/cobra"
)

// restoreCommand creates the restore command.
func (c *CLI) restoreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <container>",
		Short: "Put back a container's content from before the last transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(false)
			if err != nil {
				return err
			}
			snap, err := runner.Restore(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printSuccess("Restored %s", args[0])
			printDetail("Snapshot from %s (run %s)", snap.CreatedAt.Local().Format("2006-01-02 15:04:05"), snap.RunID)
			return nil
		},
	}
}
