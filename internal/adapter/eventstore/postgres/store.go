package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/eventstore"
	"github.com/lib/pq"
)

const (
	uniqueViolation      = "23505"
	serializationFailure = "40001"
)

// Store persists event streams in the ledger_events table, one row per
// event keyed by (stream_id, version). Optimistic concurrency rides on
// that primary key: a racing append lands on an already-taken version and
// the unique violation surfaces as a version conflict.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) ReadStream(ctx context.Context, streamID string) ([]domain.Event, int64, error) {
	const query = `
SELECT version, event_type, payload
FROM ledger_events
WHERE stream_id = $1
ORDER BY version`

	rows, err := s.db.QueryContext(ctx, query, streamID)
	if err != nil {
		return nil, 0, fmt.Errorf("read stream %q: %w", streamID, err)
	}
	defer rows.Close()

	var events []domain.Event
	var version int64
	for rows.Next() {
		var eventType string
		var payload []byte
		if err := rows.Scan(&version, &eventType, &payload); err != nil {
			return nil, 0, fmt.Errorf("scan stream %q: %w", streamID, err)
		}
		evt, err := eventstore.UnmarshalEvent(eventType, payload)
		if err != nil {
			return nil, 0, fmt.Errorf("decode stream %q: %w", streamID, err)
		}
		events = append(events, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("read stream %q: %w", streamID, err)
	}
	if len(events) == 0 {
		return nil, 0, eventstore.ErrStreamNotFound
	}

	return events, version, nil
}

func (s *Store) Append(ctx context.Context, streamID string, expectedVersion int64, events ...domain.Event) error {
	return s.AppendMulti(ctx, []eventstore.StreamAppend{{
		StreamID:        streamID,
		ExpectedVersion: expectedVersion,
		Events:          events,
	}})
}

func (s *Store) AppendMulti(ctx context.Context, appends []eventstore.StreamAppend) error {
	if len(appends) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin append tx: %w", err)
	}
	defer tx.Rollback()

	for _, a := range appends {
		if err := appendStream(ctx, tx, a); err != nil {
			return err
		}
	}

	// Under serializable isolation a racing append can abort this tx at
	// commit time through the MAX(version) predicate read, not only at
	// the insert. Both spellings of the race are the same version
	// conflict to callers.
	if err := tx.Commit(); err != nil {
		if isSerializationFailure(err) {
			return eventstore.ErrVersionConflict
		}
		return fmt.Errorf("commit append tx: %w", err)
	}

	return nil
}

func (s *Store) StartStream(ctx context.Context, streamID string, first domain.Event) error {
	return s.Append(ctx, streamID, 0, first)
}

func appendStream(ctx context.Context, tx *sql.Tx, a eventstore.StreamAppend) error {
	var current int64
	const versionQuery = `SELECT COALESCE(MAX(version), 0) FROM ledger_events WHERE stream_id = $1`
	if err := tx.QueryRowContext(ctx, versionQuery, a.StreamID).Scan(&current); err != nil {
		return fmt.Errorf("read version of stream %q: %w", a.StreamID, err)
	}
	if current != a.ExpectedVersion {
		if a.ExpectedVersion == 0 {
			return eventstore.ErrStreamAlreadyExists
		}
		return eventstore.ErrVersionConflict
	}

	const insert = `
INSERT INTO ledger_events (stream_id, version, event_type, payload)
VALUES ($1, $2, $3, $4)`

	for i, evt := range a.Events {
		eventType, payload, err := eventstore.MarshalEvent(evt)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, a.StreamID, a.ExpectedVersion+int64(i)+1, eventType, payload); err != nil {
			if isUniqueViolation(err) || isSerializationFailure(err) {
				if a.ExpectedVersion == 0 {
					return eventstore.ErrStreamAlreadyExists
				}
				return eventstore.ErrVersionConflict
			}
			return fmt.Errorf("append to stream %q: %w", a.StreamID, err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	return pqCode(err) == uniqueViolation
}

func isSerializationFailure(err error) bool {
	return pqCode(err) == serializationFailure
}

func pqCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}
