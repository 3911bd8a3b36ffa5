// Package main provides the CLI entry point for helpdesk.
package main

import (
	"errors"
	"os"
	"runtime/debug"

	"github.com/alexander-akhmetov/helpdesk/internal/api"
	"github.com/alexander-akhmetov/helpdesk/internal/draft"
	"github.com/alexander-akhmetov/helpdesk/internal/tui"
)

// Version information set via ldflags at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes beyond the generic failure.
const (
	exitFailure      = 1
	exitIncomplete   = 2
	exitUnauthorized = 3
)

func main() {
	fillVersionFromBuildInfo()
	tui.SetVersionInfo(version, commit, date)
	if err := tui.Execute(); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode lets scripts tell a rejected draft and a bad token apart from
// other failures.
func exitCode(err error) int {
	var verr *draft.ValidationError
	if errors.As(err, &verr) {
		return exitIncomplete
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
		return exitUnauthorized
	}
	return exitFailure
}

func fillVersionFromBuildInfo() {
	if version != "dev" {
		return
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		version = v
	}
	commit, date = versionFromSettings(info.Settings)
}

func versionFromSettings(settings []debug.BuildSetting) (string, string) {
	var revision, built string
	dirty := false
	for _, s := range settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			built = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}

	c := "unknown"
	if len(revision) >= 7 {
		c = revision[:7]
		if dirty {
			c += "-dirty"
		}
	}
	if built == "" {
		built = "unknown"
	}
	return c, built
}
