// Package version exposes build information injected via ldflags:
//
//	go build -ldflags "-X github.com/HerbHall/gutwise/internal/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info returns the one-line string printed by `gutwise version`.
func Info() string {
	return fmt.Sprintf("GutWise %s (commit: %s, built: %s, go: %s)",
		Version, GitCommit, BuildDate, runtime.Version())
}

// Short returns just the version, e.g. "1.2.0" or "dev".
func Short() string {
	return Version
}

// Map returns build info for the health endpoint.
func Map() map[string]string {
	return map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go_version": runtime.Version(),
	}
}
