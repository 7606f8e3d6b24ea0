// Package version holds build metadata injected with -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// These variables are set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String returns a formatted version string including version, git commit, build date and Go version
func String() string {
	return fmt.Sprintf("%s (commit: %s, date: %s, %s)", Version, GitCommit, BuildDate, runtime.Version())
}
