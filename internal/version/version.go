// Package version records build metadata stamped in at link time.
package version

import "fmt"

// Set via -ldflags "-X fetchkit/internal/version.Version=..." at build time.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info returns a one-line human-readable version string.
func Info() string {
	return fmt.Sprintf("fetchkit %s (commit %s, built %s)", Version, Commit, Date)
}
