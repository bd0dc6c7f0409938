// Package buildinfo reports the build identity, stamped via -ldflags or
// read from the Go module build info.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Commit is set at build time via -ldflags.
var Commit = "unknown"

// Date is set at build time via -ldflags.
var Date = "unknown"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Short returns a compact build identifier for UI/logging.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" {
		if len(c) > 7 {
			c = c[:7]
		}
		return c
	}
	return "dev"
}

// String is the long form printed by `t219 version`.
func String() string {
	date := Date
	if date == "unknown" {
		date = setting("vcs.time")
	}
	c := commit()
	if c == "" {
		c = "unknown"
	}
	if date == "" {
		date = "unknown"
	}
	return fmt.Sprintf("t219 %s (commit %s, built %s)", Version, c, date)
}

func commit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return setting("vcs.revision")
}

func setting(key string) string {
	bi, ok := readBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}
