package core

// Version is the application version, injected at build time:
//
//	go build -ldflags "-X newton_fractal/core.Version=$(git describe --tags --always)" .
var Version = "dev"

// GitCommit is the commit hash, injected the same way as Version.
var GitCommit = "unknown"

// VersionString returns Version with the commit appended when known.
func VersionString() string {
	if GitCommit == "" || GitCommit == "unknown" {
		return Version
	}
	return Version + " (" + GitCommit + ")"
}
