package xclink

import (
	"runtime/debug"
	"strings"

	"golang.org/x/mod/semver"
)

var (
	// Version is meant to be set at build time with
	// -ldflags "-X github.com/frantjc/xclink.Version=...".
	Version = "0.0.0"
	// Prerelease is meant to be set at build time with
	// -ldflags "-X github.com/frantjc/xclink.Prerelease=...".
	Prerelease = ""
)

// SemVer returns the semantic version of xclink, preferring
// the version of the main module when it was installed with
// `go install`.
func SemVer() string {
	if buildInfo, ok := debug.ReadBuildInfo(); ok && semver.IsValid(buildInfo.Main.Version) {
		return strings.TrimPrefix(buildInfo.Main.Version, "v")
	}

	version := "v" + Version
	if Prerelease != "" {
		version += "-" + Prerelease
	}

	if !semver.IsValid(version) {
		return "0.0.0"
	}

	return strings.TrimPrefix(semver.Canonical(version), "v")
}
