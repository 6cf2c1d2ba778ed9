// Package repo provides the results repository implementation.
package repo

import (
	"context"
	"fmt"
	"strings"

	"rrational/internal/modkit/repokit"
	"rrational/internal/services/results/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the results repository
type Storage interface {
	UpsertReport(ctx context.Context, r domain.ReportWrite) error
	ReplaceSections(ctx context.Context, recordingID string, version int, xs []domain.SectionWrite) error
	ListReports(
		ctx context.Context,
		w domain.Window,
		f domain.Filters,
		after domain.AfterKey,
		limit int,
	) ([]domain.ReportRow, domain.AfterKey, error)
	GetReport(ctx context.Context, recordingID string, version int) (domain.ReportRow, error)
	ListSections(ctx context.Context, recordingID string, version int) ([]domain.SectionRow, error)
	AggByStatus(ctx context.Context, w domain.Window, f domain.Filters) ([]domain.AggByStatusRow, error)
	AggByGrade(ctx context.Context, w domain.Window, f domain.Filters) ([]domain.AggByGradeRow, error)
}

// UpsertReport implements Storage
func (s *pg) UpsertReport(ctx context.Context, r domain.ReportWrite) error {
	const q = `
		INSERT INTO analysis_reports
			(recording_id, pipeline_version, analyzed_at, beats, duplicates,
			corrected, uncorrected, correction_rate, method, mean_rr, min_rr, max_rr)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		ON CONFLICT (recording_id, pipeline_version) DO UPDATE SET
			analyzed_at = EXCLUDED.analyzed_at,
			beats = EXCLUDED.beats,
			duplicates = EXCLUDED.duplicates,
			corrected = EXCLUDED.corrected,
			uncorrected = EXCLUDED.uncorrected,
			correction_rate = EXCLUDED.correction_rate,
			method = EXCLUDED.method,
			mean_rr = EXCLUDED.mean_rr,
			min_rr = EXCLUDED.min_rr,
			max_rr = EXCLUDED.max_rr
	`
	_, err := s.q.Exec(ctx, q,
		r.RecordingID, r.PipelineVersion, r.AnalyzedAt, r.Beats, r.Duplicates,
		r.Corrected, r.Uncorrected, r.CorrectionRate, r.Method, r.MeanRR, r.MinRR, r.MaxRR,
	)
	return err
}

// ReplaceSections implements Storage
func (s *pg) ReplaceSections(
	ctx context.Context,
	recordingID string,
	version int,
	xs []domain.SectionWrite,
) error {
	const del = `DELETE FROM section_results WHERE recording_id = $1 AND pipeline_version = $2`
	if _, err := s.q.Exec(ctx, del, recordingID, version); err != nil {
		return err
	}
	if len(xs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO section_results
		(recording_id, pipeline_version, name, label, status, start_at, end_at,
		open_ended, beats, artifact_rate, grade_time_domain, grade_pnn50, grade_frequency) VALUES `)

	args := make([]any, 0, len(xs)*13)
	for i, x := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*13 + 1
		fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
			base, base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12)

		args = append(args,
			recordingID, version, x.Name, x.Label, x.Status, x.StartAt, x.EndAt,
			x.OpenEnded, x.Beats, x.ArtifactRate, x.GradeTimeDomain, x.GradePNN50, x.GradeFrequency,
		)
	}
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

func (s *pg) ListReports(
	ctx context.Context,
	w domain.Window,
	f domain.Filters,
	after domain.AfterKey,
	limit int,
) ([]domain.ReportRow, domain.AfterKey, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT
			a.recording_id::text,
			r.participant,
			r.recorded_at,
			a.pipeline_version,
			a.analyzed_at,
			a.beats, a.duplicates, a.corrected, a.uncorrected,
			a.correction_rate, a.method, a.mean_rr, a.min_rr, a.max_rr
		FROM analysis_reports a
		JOIN recordings r ON r.id = a.recording_id
		WHERE a.analyzed_at >= ` + arg(w.Since) + ` AND a.analyzed_at < ` + arg(w.Until) + "\n")

	// Keyset only when AfterKey is set (avoid ""::uuid on first page)
	if after.RecordingID != "" {
		sb.WriteString(
			"  AND (a.analyzed_at, a.recording_id) > (" +
				arg(after.AnalyzedAt) + ", " +
				arg(after.RecordingID) + "::uuid)\n",
		)
	}

	if f.Participant != "" {
		sb.WriteString("  AND r.participant = " + arg(f.Participant) + "\n")
	}
	if f.Method != "" {
		sb.WriteString("  AND a.method = " + arg(f.Method) + "\n")
	}
	if f.Version != nil {
		sb.WriteString("  AND a.pipeline_version = " + arg(*f.Version) + "\n")
	}

	sb.WriteString("ORDER BY a.analyzed_at, a.recording_id\nLIMIT " + arg(limit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, domain.AfterKey{}, err
	}
	defer rows.Close()

	out := make([]domain.ReportRow, 0, limit)
	var last domain.AfterKey
	for rows.Next() {
		var rr domain.ReportRow
		if err := rows.Scan(
			&rr.RecordingID, &rr.Participant, &rr.RecordedAt, &rr.PipelineVersion, &rr.AnalyzedAt,
			&rr.Beats, &rr.Duplicates, &rr.Corrected, &rr.Uncorrected,
			&rr.CorrectionRate, &rr.Method, &rr.MeanRR, &rr.MinRR, &rr.MaxRR,
		); err != nil {
			return nil, domain.AfterKey{}, err
		}
		out = append(out, rr)
		last = domain.AfterKey{AnalyzedAt: rr.AnalyzedAt, RecordingID: rr.RecordingID}
	}
	return out, last, rows.Err()
}

// GetReport implements Storage
func (s *pg) GetReport(ctx context.Context, recordingID string, version int) (domain.ReportRow, error) {
	const q = `
		SELECT
			a.recording_id::text,
			r.participant,
			r.recorded_at,
			a.pipeline_version,
			a.analyzed_at,
			a.beats, a.duplicates, a.corrected, a.uncorrected,
			a.correction_rate, a.method, a.mean_rr, a.min_rr, a.max_rr
		FROM analysis_reports a
		JOIN recordings r ON r.id = a.recording_id
		WHERE a.recording_id = $1::uuid AND a.pipeline_version = $2
	`
	var rr domain.ReportRow
	err := s.q.QueryRow(ctx, q, recordingID, version).Scan(
		&rr.RecordingID, &rr.Participant, &rr.RecordedAt, &rr.PipelineVersion, &rr.AnalyzedAt,
		&rr.Beats, &rr.Duplicates, &rr.Corrected, &rr.Uncorrected,
		&rr.CorrectionRate, &rr.Method, &rr.MeanRR, &rr.MinRR, &rr.MaxRR,
	)
	return rr, err
}

// ListSections implements Storage
func (s *pg) ListSections(ctx context.Context, recordingID string, version int) ([]domain.SectionRow, error) {
	const q = `
		SELECT
			recording_id::text, name, label, status::text, start_at, end_at,
			open_ended, beats, artifact_rate, grade_time_domain, grade_pnn50, grade_frequency
		FROM section_results
		WHERE recording_id = $1::uuid AND pipeline_version = $2
		ORDER BY start_at NULLS LAST, name
	`
	rows, err := s.q.Query(ctx, q, recordingID, version)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.SectionRow
	for rows.Next() {
		var sr domain.SectionRow
		if err := rows.Scan(
			&sr.RecordingID, &sr.Name, &sr.Label, &sr.Status, &sr.StartAt, &sr.EndAt,
			&sr.OpenEnded, &sr.Beats, &sr.ArtifactRate, &sr.GradeTimeDomain, &sr.GradePNN50, &sr.GradeFrequency,
		); err != nil {
			return nil, err
		}
		out = append(out, sr)
	}
	return out, rows.Err()
}

// AggByStatus implements Storage
func (s *pg) AggByStatus(
	ctx context.Context,
	w domain.Window,
	f domain.Filters,
) ([]domain.AggByStatusRow, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT s.name, s.status::text, COUNT(*) AS reports
		FROM section_results s
		JOIN analysis_reports a
			ON a.recording_id = s.recording_id AND a.pipeline_version = s.pipeline_version
		WHERE a.analyzed_at >= ` + arg(w.Since) + ` AND a.analyzed_at < ` + arg(w.Until) + "\n")
	if f.Status != "" {
		sb.WriteString("  AND s.status = " + arg(f.Status) + "::section_status_enum\n")
	}
	if f.Version != nil {
		sb.WriteString("  AND s.pipeline_version = " + arg(*f.Version) + "\n")
	}
	sb.WriteString("GROUP BY s.name, s.status ORDER BY s.name, s.status")

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AggByStatusRow
	for rows.Next() {
		var r domain.AggByStatusRow
		if err := rows.Scan(&r.Name, &r.Status, &r.Reports); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// AggByGrade implements Storage
func (s *pg) AggByGrade(
	ctx context.Context,
	w domain.Window,
	f domain.Filters,
) ([]domain.AggByGradeRow, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT s.name, g.class, g.grade, COUNT(*) AS n
		FROM section_results s
		JOIN analysis_reports a
			ON a.recording_id = s.recording_id AND a.pipeline_version = s.pipeline_version
		CROSS JOIN LATERAL (VALUES
			('time_domain', s.grade_time_domain),
			('pnn50', s.grade_pnn50),
			('frequency_domain', s.grade_frequency)
		) AS g(class, grade)
		WHERE a.analyzed_at >= ` + arg(w.Since) + ` AND a.analyzed_at < ` + arg(w.Until) + "\n")
	if f.Version != nil {
		sb.WriteString("  AND s.pipeline_version = " + arg(*f.Version) + "\n")
	}
	sb.WriteString("GROUP BY s.name, g.class, g.grade ORDER BY s.name, g.class, g.grade")

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.AggByGradeRow
	for rows.Next() {
		var r domain.AggByGradeRow
		if err := rows.Scan(&r.Name, &r.Class, &r.Grade, &r.Count); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
