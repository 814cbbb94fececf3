// Package buildtime exposes the version stamped into the binary at
// build time.
package buildtime

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

//go:embed revision
var revision string

// Version is the release this binary was built as.
func Version() string {
	return strings.TrimSpace(version)
}

// Revision is the commit this binary was built from.
func Revision() string {
	return strings.TrimSpace(revision)
}

// VersionString renders the version and revision for display.
func VersionString() string {
	return Version() + " (commit: " + Revision() + ")"
}
