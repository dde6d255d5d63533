// Package version holds build-time version metadata, injected via ldflags.
package version

import "fmt"

var (
	// Version is the semantic version of this build
	Version = "dev"
	// Commit is the git commit hash this binary was built from
	Commit = "unknown"
	// Date is the build timestamp
	Date = "unknown"
)

// String returns the full human-readable version line.
func String() string {
	return fmt.Sprintf("rafters %s (commit %s, built %s)", Version, Commit, Date)
}
