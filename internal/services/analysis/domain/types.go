// Package domain defines the core types and interfaces for the analysis service
package domain

import "time"

// Input controls the scan window and batching
type Input struct {
	Since    time.Time
	Until    time.Time
	PageSize int
	Workers  int
	DryRun   bool
}

// RunStats summarizes one RunRange invocation
type RunStats struct {
	Scanned int // recordings seen in the window
	Written int // reports persisted
	Skipped int // recordings dropped (too short, bad series)
}
