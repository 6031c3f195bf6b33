// Package version reports build information for jiobot.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X github.com/example/jiobot/internal/version.Commit=...".
var (
	Commit    = ""
	BuildTime = ""
)

// String returns a one-line version for --version and startup logs.
// Without ldflags it falls back to the VCS stamp embedded by the go tool.
func String() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		vcsCommit, vcsTime, modified := vcsInfo()
		if commit == "" {
			commit = vcsCommit
			if modified {
				commit += "+dirty"
			}
		}
		if built == "" {
			built = vcsTime
		}
	}
	return fmt.Sprintf("jiobot dev (commit: %s, built: %s)", short(orUnknown(commit)), orUnknown(built))
}

func vcsInfo() (revision, at string, modified bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", "", false
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			at = s.Value
		case "vcs.modified":
			modified = s.Value == "true"
		}
	}
	return revision, at, modified
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

// short trims a full hash to seven characters, keeping any +dirty suffix.
func short(commit string) string {
	suffix := ""
	if n := len(commit) - len("+dirty"); n > 0 && commit[n:] == "+dirty" {
		commit, suffix = commit[:n], "+dirty"
	}
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return commit + suffix
}
