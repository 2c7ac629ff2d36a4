// Package version exposes build metadata. The variables are overwritten
// by -ldflags "-X" at release build time and keep their zero-state values
// in plain "go build" binaries.
package version

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
