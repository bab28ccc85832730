// Package version holds build information set via -ldflags.
package version

var (
	// Version is the semantic version (e.g., "1.0.0")
	Version = "dev"

	// GitCommit is the short git commit hash
	GitCommit = "unknown"

	// BuildTime is the build timestamp in RFC3339 format
	BuildTime = "unknown"
)

// VersionInfo is the build information reported by /health and the CLI.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
}

// Info returns the current build information.
func Info() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}
}

// String renders the build information on one line.
func (v VersionInfo) String() string {
	return v.Version + " (" + v.GitCommit + ", built " + v.BuildTime + ")"
}
