package domain

import (
	"context"
	"time"

	recdom "rrational/internal/services/recordings/domain"
	resdom "rrational/internal/services/results/domain"
)

// RunnerPort is the external port for the analysis job
type RunnerPort interface {
	// RunRange analyzes every recording whose recorded_at falls in [start, end)
	RunRange(ctx context.Context, start, end time.Time) (RunStats, error)

	// RunOne analyzes a single recording by id
	RunOne(ctx context.Context, recordingID string) error
}

// Ports are dependencies injected into the analysis module
type Ports struct {
	Recordings recdom.ReaderPort // required
	Results    resdom.WriterPort // required
}
