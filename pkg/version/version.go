// Package version exposes build metadata injected at link time.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set via -ldflags "-X github.com/rshade/carbontrack/pkg/version.version=...".
//
//nolint:gochecknoglobals // Populated by the linker.
var (
	version   = ""
	gitCommit = "unknown"
	buildDate = "unknown"
)

// devVersion is reported when no version was injected and module info is unavailable.
const devVersion = "dev"

// GetVersion returns the release version, falling back to the module
// version recorded by the Go toolchain, then "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return devVersion
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", GetVersion(), gitCommit, buildDate)
}
