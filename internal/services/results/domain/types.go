// Package domain defines the types and interfaces for the results service
package domain

import "time"

// Window defines a time range with a start (Since) and end (Until)
type Window struct {
	Since time.Time
	Until time.Time
}

// AfterKey is used for pagination when listing reports
type AfterKey struct {
	AnalyzedAt  time.Time
	RecordingID string // uuid
}

// Filters for querying reports and sections
type Filters struct {
	Participant string
	Method      string
	Status      string // section_status_enum
	Version     *int
}

// ReportWrite is a cleaning report to be written to storage
// along with its per-section results
type ReportWrite struct {
	RecordingID     string
	PipelineVersion int
	AnalyzedAt      time.Time
	Beats           int
	Duplicates      int
	Corrected       int
	Uncorrected     int
	CorrectionRate  float64
	Method          string
	MeanRR          float64
	MinRR           float64
	MaxRR           float64
	Sections        []SectionWrite
}

// SectionWrite is one resolved section within a report
type SectionWrite struct {
	Name            string
	Label           string
	Status          string // section_status_enum
	StartAt         *time.Time
	EndAt           *time.Time
	OpenEnded       bool
	Beats           int
	ArtifactRate    float64
	GradeTimeDomain string
	GradePNN50      string
	GradeFrequency  string
}

// ReportRow is a stored report joined with its recording metadata
type ReportRow struct {
	RecordingID     string
	Participant     string
	RecordedAt      time.Time
	PipelineVersion int
	AnalyzedAt      time.Time
	Beats           int
	Duplicates      int
	Corrected       int
	Uncorrected     int
	CorrectionRate  float64
	Method          string
	MeanRR          float64
	MinRR           float64
	MaxRR           float64
}

// SectionRow is a stored section result
type SectionRow struct {
	RecordingID     string
	Name            string
	Label           string
	Status          string
	StartAt         *time.Time
	EndAt           *time.Time
	OpenEnded       bool
	Beats           int
	ArtifactRate    float64
	GradeTimeDomain string
	GradePNN50      string
	GradeFrequency  string
}

// AggByStatusRow is an aggregation of section results by name and status
type AggByStatusRow struct {
	Name    string
	Status  string
	Reports int64
}

// AggByGradeRow is an aggregation of section results by analysis class and grade
type AggByGradeRow struct {
	Name  string
	Class string
	Grade string
	Count int64
}
