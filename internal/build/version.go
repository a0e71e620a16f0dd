// Package build provides version and build information for mdrelnotes.
// It depends only on the manifest package to avoid import cycles.
package build

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/mdrelnotes/mdrelnotes/internal/manifest"
)

const unknown = "unknown"

var (
	// Version information - set via ldflags during build
	Version   = "dev"
	Commit    = unknown
	BuildDate = unknown
)

//go:embed manifest.json
var packageManifest []byte

// IsDevBuild returns true if Version was not set at link time.
func IsDevBuild() bool {
	return Version == "dev"
}

// PackageVersion returns the version recorded in the embedded manifest.json,
// or "" if it cannot be read.
func PackageVersion() string {
	meta := manifest.Parse(packageManifest, manifest.JSON)
	if meta == nil {
		return ""
	}
	return meta.Version
}

// ResolvedVersion returns the ldflags version when one was injected, and
// otherwise the version recorded in the embedded manifest.
func ResolvedVersion() string {
	if !IsDevBuild() {
		return Version
	}
	if v := PackageVersion(); v != "" {
		return v
	}
	return Version
}

// String returns the version printed by --version. Commit and build date
// are appended only when they were injected at link time.
func String() string {
	var extra []string
	if Commit != unknown {
		extra = append(extra, "commit "+Commit)
	}
	if BuildDate != unknown {
		extra = append(extra, "built "+BuildDate)
	}
	if len(extra) == 0 {
		return ResolvedVersion()
	}
	return fmt.Sprintf("%s (%s)", ResolvedVersion(), strings.Join(extra, ", "))
}
