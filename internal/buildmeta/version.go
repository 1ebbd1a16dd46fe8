// Package buildmeta holds the version information printed by testpods --version.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags="-X github.com/devantler-tech/testpods/internal/buildmeta.Version=v0.3.0"
//
//nolint:gochecknoglobals
package buildmeta

var (
	// Version is the release version, "dev" for local builds.
	Version = "dev"
	// Commit is the Git SHA the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
