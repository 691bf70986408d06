package app

import "fmt"

// Version, Commit and BuildTime are set with ldflags:
//
//	go build -ldflags "-X github.com/streletskiy/archimap-sub000/internal/app.Version=1.2.0" ./cmd/server
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the version line printed at startup.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
