package eventstore

import (
	"context"
	"errors"

	"github.com/api-sage/bank-ledger/internal/domain"
)

var (
	ErrStreamNotFound      = errors.New("stream not found")
	ErrStreamAlreadyExists = errors.New("stream already exists")
	// ErrVersionConflict signals an optimistic-concurrency race: the stream
	// advanced after the caller's read. It is retryable; the caller re-reads
	// and re-issues the command.
	ErrVersionConflict = errors.New("stream version conflict")
)

// StreamAppend is one stream's contribution to a multi-stream append.
type StreamAppend struct {
	StreamID        string
	ExpectedVersion int64
	Events          []domain.Event
}

// Store is the append-only per-stream event log the ledger runs against.
// Versions start at 1 for the first event of a stream; ExpectedVersion is
// the version the caller observed on read (0 for a stream it expects not
// to exist yet).
type Store interface {
	// ReadStream returns the ordered events of a stream and its current
	// version, or ErrStreamNotFound.
	ReadStream(ctx context.Context, streamID string) ([]domain.Event, int64, error)

	// Append appends events to one stream iff its version still equals
	// expectedVersion, otherwise ErrVersionConflict.
	Append(ctx context.Context, streamID string, expectedVersion int64, events ...domain.Event) error

	// AppendMulti appends to several streams as one atomic unit: either
	// every stream's events become visible together or none do. This is
	// what transfers and period closes rely on.
	AppendMulti(ctx context.Context, appends []StreamAppend) error

	// StartStream originates a stream with its first event, failing with
	// ErrStreamAlreadyExists if any event was ever appended to it.
	StartStream(ctx context.Context, streamID string, first domain.Event) error
}
