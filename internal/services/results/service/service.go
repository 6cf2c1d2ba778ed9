// Package service provides the results service implementation
package service

import (
	"context"

	"rrational/internal/modkit/repokit"
	perr "rrational/internal/platform/errors"
	dom "rrational/internal/services/results/domain"
	"rrational/internal/services/results/repo"
)

// Config for the results service
type Config struct {
	HardLimit int
}

// Service implements domain.WriterPort and domain.QueryPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Cfg    Config
}

// New constructs a new results service
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], cfg Config) *Service {
	if db == nil {
		panic("results.Service requires a non-nil TxRunner")
	}
	if b == nil {
		panic("results.Service requires a non-nil repo Binder")
	}
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 500
	}
	return &Service{DB: db, Binder: b, Cfg: cfg}
}

// Write implements domain.WriterPort. The report row and its sections
// land in one transaction so rerunning an analysis never leaves a
// report paired with a stale section set
func (s *Service) Write(ctx context.Context, r dom.ReportWrite) error {
	if r.RecordingID == "" {
		return perr.InvalidArgf("report requires a recording id")
	}
	if r.PipelineVersion <= 0 {
		return perr.InvalidArgf("report requires a positive pipeline version")
	}
	return s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		if err := st.UpsertReport(ctx, r); err != nil {
			return err
		}
		return st.ReplaceSections(ctx, r.RecordingID, r.PipelineVersion, r.Sections)
	})
}

// ListReports implements domain.QueryPort
func (s *Service) ListReports(
	ctx context.Context,
	w dom.Window,
	f dom.Filters,
	after dom.AfterKey,
	limit int,
) ([]dom.ReportRow, dom.AfterKey, error) {
	if limit <= 0 || limit > s.Cfg.HardLimit {
		limit = s.Cfg.HardLimit
	}
	var rows []dom.ReportRow
	var next dom.AfterKey
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		rows, next, err = s.Binder.Bind(q).ListReports(ctx, w, f, after, limit)
		return err
	})
	if err != nil {
		return nil, dom.AfterKey{}, err
	}
	return rows, next, nil
}

// GetReport implements domain.QueryPort
func (s *Service) GetReport(
	ctx context.Context,
	recordingID string,
	version int,
) (dom.ReportRow, []dom.SectionRow, error) {
	var row dom.ReportRow
	var secs []dom.SectionRow
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		var err error
		if row, err = st.GetReport(ctx, recordingID, version); err != nil {
			return err
		}
		secs, err = st.ListSections(ctx, recordingID, version)
		return err
	})
	if err != nil {
		return dom.ReportRow{}, nil, err
	}
	return row, secs, nil
}

// AggByStatus implements domain.QueryPort
func (s *Service) AggByStatus(ctx context.Context, w dom.Window, f dom.Filters) ([]dom.AggByStatusRow, error) {
	var out []dom.AggByStatusRow
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).AggByStatus(ctx, w, f)
		return err
	})
	return out, err
}

// AggByGrade implements domain.QueryPort
func (s *Service) AggByGrade(ctx context.Context, w dom.Window, f dom.Filters) ([]dom.AggByGradeRow, error) {
	var out []dom.AggByGradeRow
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).AggByGrade(ctx, w, f)
		return err
	})
	return out, err
}
