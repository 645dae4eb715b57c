/*
Package version provides version information for reason-hub-mcp.

Version values are set via ldflags during build:
  - Version: git tag (e.g., v0.2.0)
  - Commit: git commit hash (short form)
  - Date: build date in UTC (YYYY-MM-DD)

If not set via ldflags, defaults to "dev" build.
*/
package version

// Version information (set via ldflags during build)
var (
	// Version is the current version (e.g., v0.2.0)
	Version = "dev"
	// Commit is the git commit hash (short form)
	Commit = "none"
	// Date is the build date in UTC (YYYY-MM-DD)
	Date = "unknown"
)

// GetVersion returns version information as a formatted string
func GetVersion() string {
	if Version == "dev" {
		return Version + " (development build)"
	}
	return Version + " (commit: " + Commit + ", built: " + Date + ")"
}
