package domain

import "context"

// WriterPort ingests recordings
type WriterPort interface {
	// Insert persists one recording with its raw interval and event
	// streams and returns the recording id
	Insert(ctx context.Context, rec NewRecording) (string, error)
}

// ReaderPort defines the read interface for recordings
type ReaderPort interface {
	// List returns up to Limit rows ordered by (recorded_at, id)
	List(ctx context.Context, in ListInput) (rows []Row, next AfterKey, err error)

	// Load returns one recording with its raw streams
	Load(ctx context.Context, id string) (Session, error)
}
