// Package http provides http transport for recordings
package http

import (
	stdhttp "net/http"

	"rrational/internal/core/events"
	"rrational/internal/core/rr"
	"rrational/internal/modkit/httpkit"
	"rrational/internal/services/api/recordings/domain"
	recdom "rrational/internal/services/recordings/domain"
)

// Ports are the worker ports the handlers call into
type Ports struct {
	Writer recdom.WriterPort
	Reader recdom.ReaderPort
}

// Register mounts recordings endpoints on the given router
func Register(r httpkit.Router, p Ports) {
	h := &handlers{ports: p}
	httpkit.PostJSON[domain.IngestInput](r, "/ingest", h.ingest)
	httpkit.PostJSON[domain.ListInput](r, "/list", h.list)
	httpkit.PostJSON[domain.GetInput](r, "/get", h.get)
}

type handlers struct{ ports Ports }

// swagger:route POST /recordings/ingest Recordings recordingsIngest
// @Summary Upload one RR recording session
// @Tags Recordings
// @Accept json
// @Produce json
// @Param payload body domain.IngestInput true "Session"
// @Success 200 {object} domain.IngestOutput "ok"
// @Router /recordings/ingest [post]
func (h *handlers) ingest(r *stdhttp.Request, in domain.IngestInput) (any, error) {
	id, err := h.ports.Writer.Insert(r.Context(), recdom.NewRecording{
		ID:          in.ID,
		Participant: in.Participant,
		RecordedAt:  in.RecordedAt,
		Intervals:   toIntervals(in.Intervals),
		Events:      toRawEvents(in.Events),
	})
	if err != nil {
		return nil, err
	}
	return domain.IngestOutput{ID: id, Beats: len(in.Intervals)}, nil
}

// swagger:route POST /recordings/list Recordings recordingsList
// @Summary Page recordings by recorded_at
// @Tags Recordings
// @Accept json
// @Produce json
// @Param payload body domain.ListInput true "Query"
// @Success 200 {object} domain.ListOutput "ok"
// @Router /recordings/list [post]
func (h *handlers) list(r *stdhttp.Request, in domain.ListInput) (any, error) {
	rows, next, err := h.ports.Reader.List(r.Context(), recdom.ListInput{
		Since:       in.Since,
		Until:       in.Until,
		Participant: in.Participant,
		Limit:       in.Limit,
		After:       recdom.AfterKey{RecordedAt: in.AfterRecordedAt, ID: in.AfterID},
	})
	if err != nil {
		return nil, err
	}
	out := domain.ListOutput{Rows: make([]domain.RecordingRow, 0, len(rows))}
	for _, row := range rows {
		out.Rows = append(out.Rows, toRow(row))
	}
	out.NextRecordedAt = next.RecordedAt
	out.NextID = next.ID
	return out, nil
}

// swagger:route POST /recordings/get Recordings recordingsGet
// @Summary Fetch one recording with its raw streams
// @Tags Recordings
// @Accept json
// @Produce json
// @Param payload body domain.GetInput true "Query"
// @Success 200 {object} domain.SessionOutput "ok"
// @Failure 404 {object} httpkit.Envelope "not found"
// @Router /recordings/get [post]
func (h *handlers) get(r *stdhttp.Request, in domain.GetInput) (any, error) {
	sess, err := h.ports.Reader.Load(r.Context(), in.ID)
	if err != nil {
		return nil, err
	}
	out := domain.SessionOutput{RecordingRow: toRow(sess.Row)}
	for _, iv := range sess.Intervals {
		out.Intervals = append(out.Intervals, domain.IntervalDTO{At: iv.At, RR: iv.RR})
	}
	for _, ev := range sess.Events {
		out.RawEvents = append(out.RawEvents, domain.EventDTO{At: ev.At, Label: ev.Label})
	}
	return out, nil
}

func toRow(row recdom.Row) domain.RecordingRow {
	return domain.RecordingRow{
		ID:          row.ID,
		Participant: row.Participant,
		RecordedAt:  row.RecordedAt,
		Beats:       row.Beats,
		Events:      row.Events,
		CreatedAt:   row.CreatedAt,
	}
}

func toIntervals(xs []domain.IntervalDTO) []rr.Interval {
	out := make([]rr.Interval, 0, len(xs))
	for _, x := range xs {
		out = append(out, rr.Interval{At: x.At, RR: x.RR})
	}
	return out
}

func toRawEvents(xs []domain.EventDTO) []events.RawEvent {
	out := make([]events.RawEvent, 0, len(xs))
	for _, x := range xs {
		out = append(out, events.RawEvent{At: x.At, Label: x.Label})
	}
	return out
}
