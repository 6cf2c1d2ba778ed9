// Package domain holds DTOs for analyses http contracts
package domain

import "time"

// RunInput triggers analysis of one recording
type RunInput struct {
	RecordingID string `json:"recording_id" validate:"required,uuid4"`
}

// RunOutput acknowledges a single-recording run
type RunOutput struct {
	RecordingID string `json:"recording_id"`
	OK          bool   `json:"ok" example:"true"`
}

// RunRangeInput triggers analysis of every recording in a window
type RunRangeInput struct {
	Since time.Time `json:"since" validate:"required"`
	Until time.Time `json:"until" validate:"required,gtfield=Since"`
}

// RunRangeOutput summarizes a range run
type RunRangeOutput struct {
	Scanned int `json:"scanned"`
	Written int `json:"written"`
	Skipped int `json:"skipped"`
}
