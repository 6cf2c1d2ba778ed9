// Package domain holds DTOs for reports http contracts
package domain

import "time"

// ListInput pages cleaning reports by analyzed_at
type ListInput struct {
	Since       time.Time `json:"since" validate:"required"`
	Until       time.Time `json:"until" validate:"required,gtfield=Since"`
	Participant string    `json:"participant,omitempty" validate:"omitempty,max=64"`
	Method      string    `json:"method,omitempty" validate:"omitempty,oneof=linear cubic median"`
	Version     *int      `json:"version,omitempty" validate:"omitempty,min=1"`
	Limit       int       `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"50"`

	AfterAnalyzedAt time.Time `json:"after_analyzed_at,omitempty"`
	AfterID         string    `json:"after_id,omitempty" validate:"omitempty,uuid4"`
}

// ReportRow is a stored cleaning report
type ReportRow struct {
	RecordingID     string    `json:"recording_id"`
	Participant     string    `json:"participant"`
	RecordedAt      time.Time `json:"recorded_at"`
	PipelineVersion int       `json:"pipeline_version"`
	AnalyzedAt      time.Time `json:"analyzed_at"`
	Beats           int       `json:"beats"`
	Duplicates      int       `json:"duplicates"`
	Corrected       int       `json:"corrected"`
	Uncorrected     int       `json:"uncorrected"`
	CorrectionRate  float64   `json:"correction_rate"`
	Method          string    `json:"method"`
	MeanRR          float64   `json:"mean_rr"`
	MinRR           float64   `json:"min_rr"`
	MaxRR           float64   `json:"max_rr"`
}

// SectionRow is one stored section result
type SectionRow struct {
	Name            string     `json:"name"`
	Label           string     `json:"label,omitempty"`
	Status          string     `json:"status"`
	StartAt         *time.Time `json:"start_at,omitempty"`
	EndAt           *time.Time `json:"end_at,omitempty"`
	OpenEnded       bool       `json:"open_ended,omitempty"`
	Beats           int        `json:"beats"`
	ArtifactRate    float64    `json:"artifact_rate"`
	GradeTimeDomain string     `json:"grade_time_domain"`
	GradePNN50      string     `json:"grade_pnn50"`
	GradeFrequency  string     `json:"grade_frequency"`
}

// ListOutput is one page of reports plus the next keyset cursor
type ListOutput struct {
	Rows            []ReportRow `json:"rows"`
	NextAnalyzedAt  time.Time   `json:"next_analyzed_at,omitempty"`
	NextRecordingID string      `json:"next_recording_id,omitempty"`
}

// GetInput fetches one report with its sections. Version 0 means the
// current pipeline version
type GetInput struct {
	RecordingID string `json:"recording_id" validate:"required,uuid4"`
	Version     int    `json:"version,omitempty" validate:"omitempty,min=1"`
}

// GetOutput is one report with its sections
type GetOutput struct {
	Report   ReportRow    `json:"report"`
	Sections []SectionRow `json:"sections"`
}

// AggInput bounds an aggregation window
type AggInput struct {
	Since   time.Time `json:"since" validate:"required"`
	Until   time.Time `json:"until" validate:"required,gtfield=Since"`
	Status  string    `json:"status,omitempty" validate:"omitempty,oneof=valid duration_out_of_tolerance missing_start missing_end"`
	Version *int      `json:"version,omitempty" validate:"omitempty,min=1"`
}

// AggByStatusRow counts section results per name and status
type AggByStatusRow struct {
	Name    string `json:"name"`
	Status  string `json:"status"`
	Reports int64  `json:"reports"`
}

// AggByGradeRow counts section results per name, class and grade
type AggByGradeRow struct {
	Name  string `json:"name"`
	Class string `json:"class"`
	Grade string `json:"grade"`
	Count int64  `json:"count"`
}
