package memory

import (
	"context"
	"sync"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/eventstore"
)

// Store keeps streams in process memory behind one mutex. It exists for
// service tests and honors the same contract as the SQL stores,
// including all-or-nothing multi-stream appends.
type Store struct {
	mu      sync.Mutex
	streams map[string][]domain.Event
}

func NewStore() *Store {
	return &Store{streams: make(map[string][]domain.Event)}
}

func (s *Store) ReadStream(_ context.Context, streamID string) ([]domain.Event, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	events, ok := s.streams[streamID]
	if !ok || len(events) == 0 {
		return nil, 0, eventstore.ErrStreamNotFound
	}

	out := make([]domain.Event, len(events))
	copy(out, events)
	return out, int64(len(events)), nil
}

func (s *Store) Append(ctx context.Context, streamID string, expectedVersion int64, events ...domain.Event) error {
	return s.AppendMulti(ctx, []eventstore.StreamAppend{{
		StreamID:        streamID,
		ExpectedVersion: expectedVersion,
		Events:          events,
	}})
}

func (s *Store) AppendMulti(_ context.Context, appends []eventstore.StreamAppend) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate every stream before touching any of them so a conflict on
	// the second stream cannot leave the first one half-written.
	for _, a := range appends {
		current := int64(len(s.streams[a.StreamID]))
		if current != a.ExpectedVersion {
			if a.ExpectedVersion == 0 {
				return eventstore.ErrStreamAlreadyExists
			}
			return eventstore.ErrVersionConflict
		}
	}

	for _, a := range appends {
		s.streams[a.StreamID] = append(s.streams[a.StreamID], a.Events...)
	}

	return nil
}

func (s *Store) StartStream(ctx context.Context, streamID string, first domain.Event) error {
	return s.Append(ctx, streamID, 0, first)
}
