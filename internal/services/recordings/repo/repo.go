// Package repo provides repository implementations for recordings
package repo

import (
	"context"
	"fmt"
	"strings"

	"rrational/internal/core/events"
	"rrational/internal/modkit/repokit"
	"rrational/internal/services/recordings/domain"
)

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// Storage defines the recordings repository
type Storage interface {
	Insert(ctx context.Context, row domain.Row) error
	InsertEvents(ctx context.Context, recordingID string, evs []events.RawEvent) error
	Get(ctx context.Context, id string) (domain.Row, error)
	ListEvents(ctx context.Context, recordingID string) ([]events.RawEvent, error)
	List(ctx context.Context, in domain.ListInput, hardLimit int) ([]domain.Row, domain.AfterKey, error)
}

// Insert implements Storage
func (s *pg) Insert(ctx context.Context, row domain.Row) error {
	const q = `
		INSERT INTO recordings (id, participant, recorded_at, beat_count, event_count)
		VALUES ($1::uuid, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
			SET participant = EXCLUDED.participant,
				recorded_at = EXCLUDED.recorded_at,
				beat_count = EXCLUDED.beat_count,
				event_count = EXCLUDED.event_count`
	_, err := s.q.Exec(ctx, q, row.ID, row.Participant, row.RecordedAt, row.Beats, row.Events)
	return err
}

// InsertEvents implements Storage; the existing rows for the recording
// are replaced so re-ingest stays idempotent
func (s *pg) InsertEvents(ctx context.Context, recordingID string, evs []events.RawEvent) error {
	if _, err := s.q.Exec(ctx,
		`DELETE FROM recording_events WHERE recording_id = $1::uuid`, recordingID); err != nil {
		return err
	}
	if len(evs) == 0 {
		return nil
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO recording_events (recording_id, at, label) VALUES `)
	args := make([]any, 0, len(evs)*3)
	for i, ev := range evs {
		if i > 0 {
			sb.WriteByte(',')
		}
		base := i*3 + 1
		fmt.Fprintf(&sb, "($%d::uuid,$%d,$%d)", base, base+1, base+2)
		args = append(args, recordingID, ev.At, ev.Label)
	}
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return err
}

// Get implements Storage
func (s *pg) Get(ctx context.Context, id string) (domain.Row, error) {
	const q = `
		SELECT id::text, participant, recorded_at, beat_count, event_count, created_at
		FROM recordings
		WHERE id = $1::uuid`
	var r domain.Row
	err := s.q.QueryRow(ctx, q, id).
		Scan(&r.ID, &r.Participant, &r.RecordedAt, &r.Beats, &r.Events, &r.CreatedAt)
	return r, err
}

// ListEvents implements Storage, ordered by timestamp then insertion
func (s *pg) ListEvents(ctx context.Context, recordingID string) ([]events.RawEvent, error) {
	const q = `
		SELECT at, label
		FROM recording_events
		WHERE recording_id = $1::uuid
		ORDER BY at, seq`
	rows, err := s.q.Query(ctx, q, recordingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []events.RawEvent
	for rows.Next() {
		var ev events.RawEvent
		if err := rows.Scan(&ev.At, &ev.Label); err != nil {
			return nil, err
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// List implements Storage with keyset pagination
func (s *pg) List(ctx context.Context, in domain.ListInput, hardLimit int) ([]domain.Row, domain.AfterKey, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`
		SELECT id::text, participant, recorded_at, beat_count, event_count, created_at
		FROM recordings
		WHERE recorded_at >= ` + arg(in.Since) + ` AND recorded_at < ` + arg(in.Until) + "\n")

	// Keyset only when AfterKey is set (avoid ""::uuid on first page)
	if in.After.ID != "" {
		sb.WriteString("  AND (recorded_at, id) > (" + arg(in.After.RecordedAt) + ", " + arg(in.After.ID) + "::uuid)\n")
	}
	if in.Participant != "" {
		sb.WriteString("  AND participant = " + arg(in.Participant) + "\n")
	}

	sb.WriteString("ORDER BY recorded_at, id\nLIMIT " + arg(hardLimit))

	rows, err := s.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, domain.AfterKey{}, err
	}
	defer rows.Close()

	out := make([]domain.Row, 0, hardLimit)
	var last domain.AfterKey
	for rows.Next() {
		var r domain.Row
		if err := rows.Scan(&r.ID, &r.Participant, &r.RecordedAt, &r.Beats, &r.Events, &r.CreatedAt); err != nil {
			return nil, domain.AfterKey{}, err
		}
		out = append(out, r)
		last = domain.AfterKey{RecordedAt: r.RecordedAt, ID: r.ID}
	}
	return out, last, rows.Err()
}
