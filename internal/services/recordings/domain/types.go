// Package domain defines core types and interfaces for recordings
package domain

import (
	"time"

	"rrational/internal/core/events"
	"rrational/internal/core/rr"
)

// AfterKey supports stable keyset pagination over (recorded_at, id)
type AfterKey struct {
	RecordedAt time.Time
	ID         string // uuid
}

// ListInput defines the input parameters for listing recordings
type ListInput struct {
	Since time.Time // inclusive
	Until time.Time // exclusive
	After AfterKey  // zero value = from start
	Limit int       // hard-capped in service

	Participant string // optional filter
}

// Row is the minimal recording view shared across consumers
type Row struct {
	ID          string // uuid
	Participant string
	RecordedAt  time.Time
	Beats       int
	Events      int
	CreatedAt   time.Time
}

// NewRecording is the ingest payload. ID is optional; a uuid is minted
// when empty. Intervals and Events carry the raw streams as delivered by
// the import layer, timestamps already normalized to one epoch
type NewRecording struct {
	ID          string
	Participant string
	RecordedAt  time.Time
	Intervals   []rr.Interval
	Events      []events.RawEvent
}

// Session is one full recording with its raw streams loaded
type Session struct {
	Row
	Intervals []rr.Interval
	Events    []events.RawEvent
}
