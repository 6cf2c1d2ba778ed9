// Package http provides http transport for reports
package http

import (
	stdhttp "net/http"

	"rrational/internal/core/pipeline"
	"rrational/internal/modkit/httpkit"
	"rrational/internal/services/api/reports/domain"
	resdom "rrational/internal/services/results/domain"
)

// Register mounts reports endpoints on the given router
func Register(r httpkit.Router, q resdom.QueryPort) {
	h := &handlers{query: q}
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
	httpkit.PostJSON[domain.GetInput](r, "/get", h.get)
	httpkit.PostJSON[domain.AggInput](r, "/agg/status", h.aggStatus)
	httpkit.PostJSON[domain.AggInput](r, "/agg/grades", h.aggGrades)
}

type handlers struct{ query resdom.QueryPort }

// swagger:route POST /reports/list Reports reportsList
// @Summary Page cleaning reports by analyzed_at
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Query"
// @Success 200 {object} domain.ListOutput "ok"
// @Router /reports/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	rows, next, err := h.query.ListReports(r.Context(),
		resdom.Window{Since: in.Since, Until: in.Until},
		resdom.Filters{Participant: in.Participant, Method: in.Method, Version: in.Version},
		resdom.AfterKey{AnalyzedAt: in.AfterAnalyzedAt, RecordingID: in.AfterID},
		in.Limit,
	)
	if err != nil {
		return nil, err
	}
	out := domain.ListOutput{Rows: make([]domain.ReportRow, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, toReport(row))
	}
	out.NextAnalyzedAt = next.AnalyzedAt
	out.NextRecordingID = next.RecordingID
	return out, nil
}

// swagger:route POST /reports/get Reports reportsGet
// @Summary Fetch one report with its sections
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.GetInput true "Query"
// @Success 200 {object} domain.GetOutput "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /reports/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.GetInput) (any, error) {
	ver := in.Version
	if ver == 0 {
		ver = pipeline.Version
	}
	row, secs, err := h.query.GetReport(r.Context(), in.RecordingID, ver)
	if err != nil {
		return nil, err
	}
	out := domain.GetOutput{Report: toReport(row), Sections: make([]domain.SectionRow, 0, len(secs))}
	for _, s := range secs {
		out.Sections = append(out.Sections, domain.SectionRow{
			Name:            s.Name,
			Label:           s.Label,
			Status:          s.Status,
			StartAt:         s.StartAt,
			EndAt:           s.EndAt,
			OpenEnded:       s.OpenEnded,
			Beats:           s.Beats,
			ArtifactRate:    s.ArtifactRate,
			GradeTimeDomain: s.GradeTimeDomain,
			GradePNN50:      s.GradePNN50,
			GradeFrequency:  s.GradeFrequency,
		})
	}
	return out, nil
}

// swagger:route POST /reports/agg/status Reports reportsAggStatus
// @Summary Section counts per name and status
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.AggInput true "Query"
// @Success 200 {array} domain.AggByStatusRow "ok"
// @Router /reports/agg/status [post]
func (h *handlers) aggStatus(r *stdhttp.Request, in domain.AggInput) (any, error) {
	rows, err := h.query.AggByStatus(r.Context(),
		resdom.Window{Since: in.Since, Until: in.Until},
		resdom.Filters{Status: in.Status, Version: in.Version},
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AggByStatusRow, 0, len(rows))
	for _, a := range rows {
		out = append(out, domain.AggByStatusRow{Name: a.Name, Status: a.Status, Reports: a.Reports})
	}
	return out, nil
}

// swagger:route POST /reports/agg/grades Reports reportsAggGrades
// @Summary Section counts per name, analysis class and grade
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body domain.AggInput true "Query"
// @Success 200 {array} domain.AggByGradeRow "ok"
// @Router /reports/agg/grades [post]
func (h *handlers) aggGrades(r *stdhttp.Request, in domain.AggInput) (any, error) {
	rows, err := h.query.AggByGrade(r.Context(),
		resdom.Window{Since: in.Since, Until: in.Until},
		resdom.Filters{Version: in.Version},
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.AggByGradeRow, 0, len(rows))
	for _, a := range rows {
		out = append(out, domain.AggByGradeRow{Name: a.Name, Class: a.Class, Grade: a.Grade, Count: a.Count})
	}
	return out, nil
}

func toReport(row resdom.ReportRow) domain.ReportRow {
	return domain.ReportRow{
		RecordingID:     row.RecordingID,
		Participant:     row.Participant,
		RecordedAt:      row.RecordedAt,
		PipelineVersion: row.PipelineVersion,
		AnalyzedAt:      row.AnalyzedAt,
		Beats:           row.Beats,
		Duplicates:      row.Duplicates,
		Corrected:       row.Corrected,
		Uncorrected:     row.Uncorrected,
		CorrectionRate:  row.CorrectionRate,
		Method:          row.Method,
		MeanRR:          row.MeanRR,
		MinRR:           row.MinRR,
		MaxRR:           row.MaxRR,
	}
}
