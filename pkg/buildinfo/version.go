// Package buildinfo holds version information injected at link time:
//
//	go build -ldflags "-X github.com/matzehuels/asciigraph/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/asciigraph/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/asciigraph/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/asciigraph
package buildinfo

import "fmt"

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// Info is the JSON form served by the HTTP API.
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date}
}

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
