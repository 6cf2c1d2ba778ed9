package repo

import (
	"context"
	"time"

	"rrational/internal/core/rr"
	"rrational/internal/platform/store"
)

// Beats is the columnar repo for beat-level interval series. The series
// is append-heavy and read back in recording-sized scans, which is what
// the ClickHouse seam is for
type Beats struct {
	CH store.Clickhouse
}

// NewBeats constructs a Beats repo over the ClickHouse seam
func NewBeats(ch store.Clickhouse) *Beats { return &Beats{CH: ch} }

// Write appends the interval series for one recording
func (b *Beats) Write(ctx context.Context, recordingID string, seq []rr.Interval) error {
	if len(seq) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(seq))
	for i, iv := range seq {
		rows = append(rows, []any{recordingID, int32(i), iv.At, iv.RR})
	}
	return b.CH.Insert(ctx, "rr_beats (recording_id, seq, at, rr_ms)", rows)
}

// Load returns the interval series for one recording in beat order,
// including any duplicate-timestamp records exactly as ingested
func (b *Beats) Load(ctx context.Context, recordingID string) ([]rr.Interval, error) {
	rows, err := b.CH.Query(ctx,
		`SELECT at, rr_ms FROM rr_beats WHERE recording_id = ? ORDER BY seq`, recordingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rr.Interval
	for rows.Next() {
		var at time.Time
		var ms float64
		if err := rows.Scan(&at, &ms); err != nil {
			return nil, err
		}
		out = append(out, rr.Interval{At: at, RR: ms})
	}
	return out, rows.Err()
}
