// Package cli implements the shaderxfer command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shaderxfer/pkg/buildinfo"
	"github.com/matzehuels/shaderxfer/pkg/observability"
	"github.com/matzehuels/shaderxfer/pkg/pipeline"
	"github.com/matzehuels/shaderxfer/pkg/shader"
	"github.com/matzehuels/shaderxfer/pkg/snapshot"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "shaderxfer"

	// configFile is the file name looked up in the config directory.
	configFile = "config.toml"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Values of the persistent flags.
	configPath  string
	registries  []string
	metricsFile string

	cfg     Config
	metrics *prometheus.Registry
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Shaderxfer copies material node graphs between containers",
		Long: `Shaderxfer rebuilds the shader node graph of one material onto another,
preserving node types, names, locations, unlinked input values and links.
The source and target materials may live in different container files.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.setup() },
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/shaderxfer/config.toml)")
	flags.StringArrayVar(&c.registries, "registry", nil, "TOML file with extra node type definitions (repeatable)")
	flags.StringVar(&c.metricsFile, "metrics-file", "", "write Prometheus metrics to this textfile after the command")

	root.AddCommand(c.transferCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.restoreCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.typesCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and installs metrics hooks. Flags win over
// config values.
func (c *CLI) setup() error {
	c.Logger.Debug(buildinfo.String())
	cfg, err := loadConfig(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg
	if c.metricsFile == "" {
		c.metricsFile = cfg.MetricsFile
	}
	if c.metricsFile != "" {
		c.metrics = prometheus.NewRegistry()
		hooks := observability.NewPrometheusHooks(c.metrics)
		observability.SetTransferHooks(hooks)
		observability.SetSnapshotHooks(hooks)
		c.Logger.Debug("metrics enabled", "file", c.metricsFile)
	}
	return nil
}

// Execute runs root and writes the metrics textfile whether or not the
// command failed. A metrics write error is returned only when the command
// succeeded.
func (c *CLI) Execute(ctx context.Context, root *cobra.Command) error {
	err := root.ExecuteContext(ctx)
	if ferr := c.flushMetrics(); ferr != nil {
		if err == nil {
			return ferr
		}
		c.Logger.Warn("metrics not written", "err", ferr)
	}
	return err
}

func (c *CLI) flushMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := observability.WriteTextfile(c.metricsFile, c.metrics); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noSnapshot bool) (*pipeline.Runner, error) {
	reg, err := c.registry()
	if err != nil {
		return nil, err
	}
	store, err := c.snapshotStore(noSnapshot)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(reg, store, c.Logger), nil
}

// registry returns the builtin node types extended by the config file's
// registries, the --registry flags and then extra, in that order.
func (c *CLI) registry(extra ...string) (*shader.Registry, error) {
	reg := shader.Builtin()
	paths := slices.Concat(c.cfg.Registry, c.registries, extra)
	for _, p := range paths {
		extra, err := shader.LoadRegistryTOML(p)
		if err != nil {
			return nil, err
		}
		reg.Merge(extra)
		c.Logger.Debug("loaded node types", "file", p, "types", extra.Len())
	}
	return reg, nil
}

func (c *CLI) snapshotStore(disabled bool) (snapshot.Store, error) {
	if disabled {
		return snapshot.NewNullStore(), nil
	}
	dir, err := c.snapshotDir()
	if err != nil {
		c.Logger.Warn("snapshots disabled", "err", err)
		return snapshot.NewNullStore(), nil
	}
	return snapshot.NewFileStore(dir, c.cfg.SnapshotTTL.Duration)
}

func (c *CLI) snapshotDir() (string, error) {
	if c.cfg.SnapshotDir != "" {
		return c.cfg.SnapshotDir, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "snapshots"), nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/shaderxfer/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/shaderxfer/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
