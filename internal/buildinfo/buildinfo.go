// Package buildinfo exposes build metadata reported on the health endpoint.
package buildinfo

import "time"

// Injected via -ldflags at build time; empty in ad-hoc builds.
var (
	BuildTime  string // when the binary was compiled
	CommitTime string // last git commit time
	CommitHash string // short git commit hash
)

// StartTime is recorded when the process starts.
var StartTime = time.Now().UTC().Format(time.RFC3339)
