package domain

import "context"

// WriterPort writes cleaning reports
type WriterPort interface {
	// Write upserts a report keyed by (recording, pipeline version);
	// rerunning the same recording replaces the previous report
	Write(ctx context.Context, r ReportWrite) error
}

// QueryPort queries stored reports and section results
type QueryPort interface {
	ListReports(
		ctx context.Context,
		w Window,
		f Filters,
		after AfterKey,
		limit int,
	) (rows []ReportRow, next AfterKey, err error)
	GetReport(ctx context.Context, recordingID string, version int) (ReportRow, []SectionRow, error)
	AggByStatus(ctx context.Context, w Window, f Filters) ([]AggByStatusRow, error)
	AggByGrade(ctx context.Context, w Window, f Filters) ([]AggByGradeRow, error)
}
