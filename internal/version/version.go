package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the semantic version of the build. It can be overridden via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// shortCommitLength is how much of a VCS revision is shown.
const shortCommitLength = 7

// Short returns only the semantic version string.
func Short() string {
	return Version
}

// Full returns the version with commit, build time and Go runtime.
// Values not injected via ldflags are taken from the binary's VCS stamp when present.
func Full() string {
	commit, built := Commit, BuildTime

	if info, ok := debug.ReadBuildInfo(); ok {
		commit, built = fromBuildSettings(info.Settings, commit, built)
	}

	return fmt.Sprintf("aifiles-setup %s (commit %s, built %s, %s)", Version, commit, built, runtime.Version())
}

// fromBuildSettings fills commit and build time from vcs.* settings
// unless they were already set at link time.
func fromBuildSettings(settings []debug.BuildSetting, commit, built string) (string, string) {
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			if commit == "none" && s.Value != "" {
				commit = s.Value
				if len(commit) > shortCommitLength {
					commit = commit[:shortCommitLength]
				}
			}
		case "vcs.time":
			if built == "unknown" && s.Value != "" {
				built = s.Value
			}
		}
	}

	return commit, built
}
