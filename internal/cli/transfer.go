package cli

import (
	stderrors "errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shaderxfer/pkg/errors"
	"github.com/matzehuels/shaderxfer/pkg/pipeline"
	"github.com/matzehuels/shaderxfer/pkg/transfer"
)

type transferOpts struct {
	req              pipeline.Request
	noSnapshot       bool
	sourceRegistries []string // node types only the source environment knows
}

// transferCommand creates the transfer command.
func (c *CLI) transferCommand() *cobra.Command {
	var opts transferOpts

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Copy the node graph of one material onto another",
		Long: `Rebuild the target material's node graph as a copy of the source material's.

The target graph is cleared first. Nodes keep their type, name and location.
Unlinked inputs and outputs keep their values, and every link is reconnected
by node and socket name. On failure the target container is left untouched; on success
its previous content is kept as a snapshot for "shaderxfer restore".`,
		Example: `  shaderxfer transfer --from library.json --to scene.json \
    --source-material Wire --target-material Wire`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTransfer(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.req.SourcePath, "from", "", "source container file")
	cmd.Flags().StringVar(&opts.req.TargetPath, "to", "", "target container file (default: same as --from)")
	cmd.Flags().StringVar(&opts.req.SourceMaterial, "source-material", "", "material to copy from")
	cmd.Flags().StringVar(&opts.req.TargetMaterial, "target-material", "", "material to overwrite")
	cmd.Flags().BoolVar(&opts.req.DryRun, "dry-run", false, "run the transfer in memory without writing")
	cmd.Flags().BoolVar(&opts.noSnapshot, "no-snapshot", false, "do not keep a snapshot of the target")
	cmd.Flags().BoolVar(&opts.req.CreateTarget, "create", false, "create the target material if the container lacks it")
	cmd.Flags().StringArrayVar(&opts.sourceRegistries, "source-registry", nil,
		"TOML node types known only to the source container (repeatable)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("source-material")
	_ = cmd.MarkFlagRequired("target-material")

	return cmd
}

func (c *CLI) runTransfer(cmd *cobra.Command, opts transferOpts) error {
	req := opts.req
	if req.TargetPath == "" {
		req.TargetPath = req.SourcePath
	}

	runner, err := c.newRunner(opts.noSnapshot || req.DryRun)
	if err != nil {
		return err
	}
	if len(opts.sourceRegistries) > 0 {
		if runner.SourceRegistry, err = c.registry(opts.sourceRegistries...); err != nil {
			return err
		}
	}

	res, err := runner.Run(cmd.Context(), req)
	if err != nil {
		reportTransferError(err)
		return err
	}

	if req.DryRun {
		printWarning("Dry run: %s was not written", req.TargetPath)
	} else {
		printSuccess("Transferred %s to %s", req.SourceMaterial, req.TargetMaterial)
		printFile(req.TargetPath)
	}
	printStats(res.Stats.Nodes, res.Stats.Links, fmt.Sprintf("%d values", res.Stats.Defaults))
	if res.Snapshot {
		printNextStep("Undo with", "shaderxfer restore "+req.TargetPath)
	}
	return nil
}

// reportTransferError prints which phase failed and where.
func reportTransferError(err error) {
	var te *transfer.Error
	if !stderrors.As(err, &te) {
		printError("%s", errors.UserMessage(err))
		return
	}
	printError("Transfer failed during %s", te.Phase)
	if te.Node != "" {
		printKeyValue("node", te.Node)
	}
	if te.Socket != "" {
		printKeyValue("socket", te.Socket)
	}
	if code := errors.GetCode(err); code != "" {
		printKeyValue("code", string(code))
	}
	printDetail("%s", errors.UserMessage(err))
	if te.Phase != transfer.PhasePersist {
		printDetail("The target container was not modified.")
	}
}
