// Package version holds build information for mpx.
package version

// Overridden at build time:
// go build -ldflags "-X mpx/internal/version.Version=1.0.0 -X mpx/internal/version.Commit=abc123"
var (
	Version   = "0.4.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns the version with a short commit when one is known.
func Info() string {
	if Commit != "unknown" && len(Commit) > 7 {
		return Version + " (" + Commit[:7] + ")"
	}
	return Version
}

// Full returns version, commit and build date on separate lines.
func Full() string {
	return "mpx version " + Version + "\n" +
		"Commit: " + Commit + "\n" +
		"Built: " + BuildDate
}
