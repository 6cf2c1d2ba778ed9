// Package service provides the recordings service implementation
package service

import (
	"context"

	"github.com/google/uuid"

	"rrational/internal/modkit/repokit"
	perr "rrational/internal/platform/errors"
	"rrational/internal/services/recordings/domain"
	"rrational/internal/services/recordings/repo"
)

// Config for the recordings service
type Config struct {
	// HardLimit is the maximum allowed limit per List call; defaults to 1000 if <=0
	HardLimit int
}

// Service implements domain.WriterPort and domain.ReaderPort
type Service struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Storage]
	Beats  *repo.Beats
	Cfg    Config
}

// New constructs a new recordings service. Beats may be nil when the
// columnar store is disabled; Insert and Load then skip the series
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], beats *repo.Beats, cfg Config) *Service {
	if db == nil {
		panic("recordings.Service requires a non-nil TxRunner")
	}
	if b == nil {
		panic("recordings.Service requires a non-nil repo Binder")
	}
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 1000
	}
	return &Service{DB: db, Binder: b, Beats: beats, Cfg: cfg}
}

// Insert implements domain.WriterPort
func (s *Service) Insert(ctx context.Context, rec domain.NewRecording) (string, error) {
	if rec.Participant == "" {
		return "", perr.InvalidArgf("recording requires a participant")
	}
	if len(rec.Intervals) == 0 {
		return "", perr.InsufficientDataf("recording %q has no intervals", rec.Participant)
	}
	id := rec.ID
	if id == "" {
		id = uuid.NewString()
	}
	recordedAt := rec.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = rec.Intervals[0].At
	}

	row := domain.Row{
		ID:          id,
		Participant: rec.Participant,
		RecordedAt:  recordedAt,
		Beats:       len(rec.Intervals),
		Events:      len(rec.Events),
	}
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		if err := st.Insert(ctx, row); err != nil {
			return err
		}
		return st.InsertEvents(ctx, id, rec.Events)
	})
	if err != nil {
		return "", perr.Wrap(err, perr.ErrorCodeDB, "insert recording")
	}

	if s.Beats != nil {
		if err := s.Beats.Write(ctx, id, rec.Intervals); err != nil {
			return "", perr.Wrap(err, perr.ErrorCodeDB, "write beat series")
		}
	}
	return id, nil
}

// List implements domain.ReaderPort
func (s *Service) List(ctx context.Context, in domain.ListInput) ([]domain.Row, domain.AfterKey, error) {
	limit := in.Limit
	if limit <= 0 || limit > s.Cfg.HardLimit {
		limit = s.Cfg.HardLimit
	}

	var rows []domain.Row
	var next domain.AfterKey
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		rows, next, err = s.Binder.Bind(q).List(ctx, in, limit)
		return err
	})
	if err != nil {
		return nil, domain.AfterKey{}, err
	}
	return rows, next, nil
}

// Load implements domain.ReaderPort
func (s *Service) Load(ctx context.Context, id string) (domain.Session, error) {
	var sess domain.Session
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		st := s.Binder.Bind(q)
		row, err := st.Get(ctx, id)
		if err != nil {
			return err
		}
		evs, err := st.ListEvents(ctx, id)
		if err != nil {
			return err
		}
		sess.Row = row
		sess.Events = evs
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}

	if s.Beats != nil {
		seq, err := s.Beats.Load(ctx, id)
		if err != nil {
			return domain.Session{}, perr.Wrap(err, perr.ErrorCodeDB, "load beat series")
		}
		sess.Intervals = seq
	}
	return sess, nil
}
