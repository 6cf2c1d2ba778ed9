// Package service implements the analysis service
package service

import (
	"context"
	"sync"
	"time"

	"rrational/internal/core/pipeline"
	perr "rrational/internal/platform/errors"
	"rrational/internal/platform/logger"
	dom "rrational/internal/services/analysis/domain"
	recdom "rrational/internal/services/recordings/domain"
	resdom "rrational/internal/services/results/domain"
)

// Config for the analysis service
type Config struct {
	Workers      int
	PageSize     int
	MaxRangeDays int // 0 = unlimited
	DryRun       bool
	Opts         pipeline.Options
}

// Service implements domain.RunnerPort
type Service struct {
	Recordings recdom.ReaderPort
	Results    resdom.WriterPort
	Cfg        Config
}

// New constructs a new analysis service. Pipeline options are validated
// once here so a bad configuration fails before any recording is read
func New(recs recdom.ReaderPort, results resdom.WriterPort, cfg Config) (*Service, error) {
	if recs == nil || results == nil {
		panic("analysis.Service requires recordings reader and results writer ports")
	}
	if err := cfg.Opts.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 200
	}
	return &Service{Recordings: recs, Results: results, Cfg: cfg}, nil
}

// RunRange analyzes every recording recorded in [start, end), paging
// through the reader and fanning each page out to a bounded worker pool.
// Recordings that are too short to analyze are counted as skipped, not
// fatal; storage errors abort the run
func (s *Service) RunRange(ctx context.Context, start, end time.Time) (dom.RunStats, error) {
	start = start.UTC()
	end = end.UTC()
	if end.Before(start) {
		return dom.RunStats{}, perr.InvalidArgf("end before start")
	}
	if s.Cfg.MaxRangeDays > 0 && int(end.Sub(start).Hours()/24) > s.Cfg.MaxRangeDays {
		return dom.RunStats{}, perr.InvalidArgf("range exceeds %d days", s.Cfg.MaxRangeDays)
	}

	var stats dom.RunStats
	after := recdom.AfterKey{}
	for {
		rows, next, err := s.Recordings.List(ctx, recdom.ListInput{
			Since: start, Until: end,
			After: after, Limit: s.Cfg.PageSize,
		})
		if err != nil {
			return stats, err
		}
		if len(rows) == 0 {
			return stats, nil
		}

		type outcome struct {
			report  *resdom.ReportWrite
			skipped bool
			err     error
		}
		out := make([]outcome, len(rows))

		sem := make(chan struct{}, s.Cfg.Workers)
		wg := sync.WaitGroup{}

		for i := range rows {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int) {
				defer func() { <-sem; wg.Done() }()
				rep, err := s.analyze(ctx, rows[i].ID)
				switch {
				case perr.IsCode(err, perr.ErrorCodeInsufficientData):
					out[i] = outcome{skipped: true}
				case err != nil:
					out[i] = outcome{err: err}
				default:
					out[i] = outcome{report: rep}
				}
			}(i)
		}
		wg.Wait()

		for i := range out {
			stats.Scanned++
			switch {
			case out[i].err != nil:
				logger.C(ctx).Error().
					Str("recording", rows[i].ID).
					Err(out[i].err).
					Msg("analysis: recording failed")
				stats.Skipped++
			case out[i].skipped:
				stats.Skipped++
			case s.Cfg.DryRun:
				stats.Written++
			default:
				if err := s.Results.Write(ctx, *out[i].report); err != nil {
					return stats, err
				}
				stats.Written++
			}
		}

		after = next
	}
}

// RunOne analyzes a single recording and persists its report
func (s *Service) RunOne(ctx context.Context, recordingID string) error {
	rep, err := s.analyze(ctx, recordingID)
	if err != nil {
		return err
	}
	if s.Cfg.DryRun {
		return nil
	}
	return s.Results.Write(ctx, *rep)
}

func (s *Service) analyze(ctx context.Context, recordingID string) (*resdom.ReportWrite, error) {
	sess, err := s.Recordings.Load(ctx, recordingID)
	if err != nil {
		return nil, err
	}
	res, err := pipeline.Run(pipeline.Input{
		Intervals: sess.Intervals,
		Events:    sess.Events,
		Opts:      s.Cfg.Opts,
	})
	if err != nil {
		return nil, err
	}
	rep := toReport(recordingID, time.Now().UTC(), res)
	return &rep, nil
}
