// Package buildinfo exposes version metadata stamped at build time.
package buildinfo

import "runtime"

// These vars are set at build time via ldflags:
// -X github.com/voicenotes/voicenotes-cli/pkg/buildinfo.Version=v0.3.0
// -X github.com/voicenotes/voicenotes-cli/pkg/buildinfo.Commit=ab12cd3
// -X github.com/voicenotes/voicenotes-cli/pkg/buildinfo.BuildTime=2026-08-01T10:30:00Z
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info holds build information for the CLI.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build info.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String returns a human-readable one-liner like "v0.3.0 (ab12cd3, 2026-08-01T10:30:00Z)".
func String() string {
	return Version + " (" + Commit + ", " + BuildTime + ")"
}
