package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/eventstore"
	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const schema = `
CREATE TABLE IF NOT EXISTS ledger_events (
	stream_id   TEXT    NOT NULL,
	version     INTEGER NOT NULL,
	event_type  TEXT    NOT NULL,
	payload     BLOB    NOT NULL,
	recorded_at TEXT    NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now')),
	PRIMARY KEY (stream_id, version)
)`

// Store is the embedded-database event store, used for local runs and
// adapter tests. Same contract as the postgres store: versions are
// allocated per stream and the (stream_id, version) primary key turns a
// racing append into a version conflict.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) a sqlite database and prepares the event
// schema. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// The modernc driver serializes writes through one connection.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure ledger_events table: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ReadStream(ctx context.Context, streamID string) ([]domain.Event, int64, error) {
	const query = `
SELECT version, event_type, payload
FROM ledger_events
WHERE stream_id = ?
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

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append tx: %w", err)
	}
	defer tx.Rollback()

	for _, a := range appends {
		if err := appendStream(ctx, tx, a); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append tx: %w", err)
	}

	return nil
}

func (s *Store) StartStream(ctx context.Context, streamID string, first domain.Event) error {
	return s.Append(ctx, streamID, 0, first)
}

func appendStream(ctx context.Context, tx *sql.Tx, a eventstore.StreamAppend) error {
	var current int64
	const versionQuery = `SELECT COALESCE(MAX(version), 0) FROM ledger_events WHERE stream_id = ?`
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
VALUES (?, ?, ?, ?)`

	for i, evt := range a.Events {
		eventType, payload, err := eventstore.MarshalEvent(evt)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insert, a.StreamID, a.ExpectedVersion+int64(i)+1, eventType, payload); err != nil {
			if isConstraintError(err) {
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

func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3.SQLITE_CONSTRAINT || code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
