// Package version holds build-time version information for attrigate.
package version

// These values are stamped at build time via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
