package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/shaderxfer/pkg/errors"
)

// Config is the optional TOML config file.
//
//	registry     = ["~/nodes/extra.toml"]
//	snapshot_dir = "/var/tmp/shaderxfer"
//	snapshot_ttl = "72h"
//	metrics_file = "/var/lib/node_exporter/shaderxfer.prom"
type Config struct {
	Registry    []string `toml:"registry"`
	SnapshotDir string   `toml:"snapshot_dir"`
	SnapshotTTL duration `toml:"snapshot_ttl"`
	MetricsFile string   `toml:"metrics_file"`
}

// duration reads Go duration strings such as "72h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// loadConfig reads the config at path. An empty path selects the default
// location, where a missing file is not an error.
func loadConfig(path string) (Config, error) {
	var cfg Config
	explicit := path != ""
	if !explicit {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, configFile)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) && !explicit {
		return cfg, nil
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidInput, "config %s: unknown key %q", path, undecoded[0].String())
	}

	base := filepath.Dir(path)
	for i, p := range cfg.Registry {
		cfg.Registry[i] = resolvePath(base, p)
	}
	if cfg.SnapshotDir != "" {
		cfg.SnapshotDir = resolvePath(base, cfg.SnapshotDir)
	}
	return cfg, nil
}

// resolvePath expands a leading ~ and makes relative paths relative to the
// config file's directory.
func resolvePath(base, p string) string {
	if p == "~" || (len(p) > 1 && p[:2] == "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[1:])
		}
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(base, p)
	}
	return p
}
