// Package version exposes build metadata for the anneprof CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Version is the release version, set via ldflags. Builds without ldflags
// report "devel".
var Version = "devel"

// Revision returns the git commit the binary was built from, with a
// "-dirty" suffix for modified trees, or "unknown" outside a VCS build.
func Revision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, s := range buildInfo.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		rev += "-dirty"
	}

	return rev
}

// String renders the full version line shown by anneprof --version.
func String() string {
	return fmt.Sprintf("%s (revision %s, %s, %s/%s)",
		Version, Revision(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
