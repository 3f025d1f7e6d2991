// Package buildinfo carries build-time version metadata.
//
// The variables are injected with ldflags:
//
//	go build -ldflags "\
//	  -X github.com/matzehuels/tinypnr/pkg/buildinfo.Version=$(git describe --tags) \
//	  -X github.com/matzehuels/tinypnr/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	  -X github.com/matzehuels/tinypnr/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

// Set via ldflags; the defaults identify an untagged development build.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information as a multi-line block.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s (%s, built %s)\n", Version, Commit, Date)
}
