package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/eventstore"
)

// StatementService is the query side: it rebuilds per-period statements
// from raw streams and walks the period chain to assemble full history.
type StatementService struct {
	store eventstore.Store
}

func NewStatementService(store eventstore.Store) *StatementService {
	return &StatementService{store: store}
}

func (s *StatementService) GetStatement(ctx context.Context, streamID string) (domain.Statement, error) {
	events, _, err := s.store.ReadStream(ctx, strings.TrimSpace(streamID))
	if err != nil {
		if errors.Is(err, eventstore.ErrStreamNotFound) {
			return domain.Statement{}, domain.ErrAccountNotFound
		}
		return domain.Statement{}, fmt.Errorf("read statement %q: %w", streamID, err)
	}

	acct, err := domain.Replay(events)
	if err != nil {
		return domain.Statement{}, fmt.Errorf("replay statement %q: %w", streamID, err)
	}

	return domain.NewStatement(acct), nil
}

// GetAccountHistory walks the period chain forward from the given stream
// and returns one statement per period in chronological order. The walk
// stops when a period has no successor or its successor cannot be read.
func (s *StatementService) GetAccountHistory(ctx context.Context, startStreamID string) ([]domain.Statement, error) {
	first, err := s.GetStatement(ctx, startStreamID)
	if err != nil {
		return nil, err
	}

	history := []domain.Statement{first}
	seen := map[string]bool{first.StreamID: true}

	next := first.NextStreamID
	for next != "" && !seen[next] {
		stmt, err := s.GetStatement(ctx, next)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				break
			}
			return nil, err
		}
		history = append(history, stmt)
		seen[stmt.StreamID] = true
		next = stmt.NextStreamID
	}

	return history, nil
}
