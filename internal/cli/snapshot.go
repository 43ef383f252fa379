package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shaderxfer/pkg/snapshot"
)

// snapshotCommand creates the snapshot management command.
func (c *CLI) snapshotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage the snapshots kept before each transfer",
	}

	cmd.AddCommand(c.snapshotClearCommand())
	cmd.AddCommand(c.snapshotPathCommand())

	return cmd
}

// snapshotClearCommand creates the "snapshot clear" subcommand.
func (c *CLI) snapshotClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all stored snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.snapshotDir()
			if err != nil {
				return fmt.Errorf("get snapshot dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("No snapshots stored")
				return nil
			}

			store, err := snapshot.NewFileStore(dir, c.cfg.SnapshotTTL.Duration)
			if err != nil {
				return err
			}
			count, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}

			printSuccess("Cleared %d snapshots", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// snapshotPathCommand creates the "snapshot path" subcommand.
func (c *CLI) snapshotPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the snapshot directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.snapshotDir()
			if err != nil {
				return fmt.Errorf("get snapshot dir: %w", err)
			}
			fmt.Fprintln(out, dir)
			return nil
		},
	}
}
