// Package version holds build information, overridden at link time via
// -ldflags "-X github.com/swoga/tplink-exporter/version.Version=…".
package version

var (
	Version   = "0.0.0-dev"
	Revision  = "unknown"
	Branch    = "unknown"
	BuildDate = "unknown"
)
