// Package domain holds DTOs for recordings http contracts
package domain

import "time"

// IntervalDTO is one RR sample on the wire
type IntervalDTO struct {
	At time.Time `json:"at" validate:"required" example:"2026-08-03T09:00:00Z"`
	RR float64   `json:"rr_ms" validate:"required,gt=0" example:"812.5"`
}

// EventDTO is one protocol marker on the wire
type EventDTO struct {
	At    time.Time `json:"at" validate:"required" example:"2026-08-03T09:00:00Z"`
	Label string    `json:"label" validate:"required,min=1,max=120" example:"Baseline Start"`
}

// IngestInput uploads one recording session
type IngestInput struct {
	ID          string        `json:"id,omitempty" validate:"omitempty,uuid4"`
	Participant string        `json:"participant" validate:"required,min=1,max=64" example:"vp042"`
	RecordedAt  time.Time     `json:"recorded_at,omitempty"`
	Intervals   []IntervalDTO `json:"intervals" validate:"required,min=2,dive"`
	Events      []EventDTO    `json:"events,omitempty" validate:"omitempty,dive"`
}

// IngestOutput acknowledges an upload
type IngestOutput struct {
	ID    string `json:"id" example:"7b9df3a4-63f0-4e1c-9f9b-0c7a4f4f2a11"`
	Beats int    `json:"beats" example:"512"`
}

// ListInput pages recordings by recorded_at
type ListInput struct {
	Since       time.Time `json:"since" validate:"required"`
	Until       time.Time `json:"until" validate:"required,gtfield=Since"`
	Participant string    `json:"participant,omitempty" validate:"omitempty,max=64"`
	Limit       int       `json:"limit,omitempty" validate:"omitempty,min=1,max=1000" example:"100"`

	AfterRecordedAt time.Time `json:"after_recorded_at,omitempty"`
	AfterID         string    `json:"after_id,omitempty" validate:"omitempty,uuid4"`
}

// RecordingRow is a recording summary
type RecordingRow struct {
	ID          string    `json:"id"`
	Participant string    `json:"participant"`
	RecordedAt  time.Time `json:"recorded_at"`
	Beats       int       `json:"beats"`
	Events      int       `json:"events"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListOutput is one page of recordings plus the next keyset cursor
type ListOutput struct {
	Rows           []RecordingRow `json:"rows"`
	NextRecordedAt time.Time      `json:"next_recorded_at,omitempty"`
	NextID         string         `json:"next_id,omitempty"`
}

// GetInput fetches one recording with its raw streams
type GetInput struct {
	ID string `json:"id" validate:"required,uuid4"`
}

// SessionOutput is one full recording
type SessionOutput struct {
	RecordingRow
	Intervals []IntervalDTO `json:"intervals,omitempty"`
	RawEvents []EventDTO    `json:"raw_events,omitempty"`
}
