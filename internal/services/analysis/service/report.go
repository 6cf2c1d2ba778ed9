package service

import (
	"time"

	"rrational/internal/core/pipeline"
	"rrational/internal/core/quality"
	ptime "rrational/internal/platform/time"
	resdom "rrational/internal/services/results/domain"
)

// toReport flattens a pipeline result into the storage shape
func toReport(recordingID string, analyzedAt time.Time, res *pipeline.Result) resdom.ReportWrite {
	removed := 0
	for _, g := range res.Duplicates {
		removed += g.Count - 1
	}

	rep := resdom.ReportWrite{
		RecordingID:     recordingID,
		PipelineVersion: res.Version,
		AnalyzedAt:      analyzedAt,
		Beats:           res.Stats.Count,
		Duplicates:      removed,
		Corrected:       res.Report.Corrected,
		Uncorrected:     res.Report.Uncorrected,
		CorrectionRate:  res.Report.Rate,
		Method:          string(res.Report.Method),
		MeanRR:          res.Stats.Mean,
		MinRR:           res.Stats.Min,
		MaxRR:           res.Stats.Max,
	}
	for _, sec := range res.Sections {
		rep.Sections = append(rep.Sections, toSection(sec))
	}
	return rep
}

func toSection(sec pipeline.SectionResult) resdom.SectionWrite {
	w := resdom.SectionWrite{
		Name:         sec.Instance.Def.Name,
		Label:        sec.Instance.Def.Label,
		Status:       string(sec.Instance.Status),
		OpenEnded:    sec.Instance.OpenEnded,
		Beats:        sec.Beats,
		ArtifactRate: sec.Rate,
	}
	// missing_start carries zero bounds, which persist as NULL
	w.StartAt = ptime.Ptr(sec.Instance.StartAt)
	w.EndAt = ptime.Ptr(sec.Instance.EndAt)
	for _, g := range sec.Grades {
		switch g.Class {
		case quality.ClassTimeDomain:
			w.GradeTimeDomain = string(g.Grade)
		case quality.ClassPNN50:
			w.GradePNN50 = string(g.Grade)
		case quality.ClassFrequencyDomain:
			w.GradeFrequency = string(g.Grade)
		}
	}
	return w
}
