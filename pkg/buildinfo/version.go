// Package buildinfo holds version information injected at link time:
//
//	go build -ldflags "-X github.com/matzehuels/shaderxfer/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/shaderxfer/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/shaderxfer/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/shaderxfer
package buildinfo

import "fmt"

// Set via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("shaderxfer %s (commit %s, built %s)", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return "{{.Name}} version " + Version + "\ncommit: " + Commit + "\nbuilt: " + Date + "\n"
}
