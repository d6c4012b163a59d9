package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/eventstore"
	"github.com/api-sage/bank-ledger/internal/logger"
	"github.com/google/uuid"
)

// LedgerService validates commands against projected account state and
// turns them into atomically appended events. It keeps no state between
// calls; the event store is the only shared truth, and a version conflict
// from the store means the caller raced another writer and may retry.
type LedgerService struct {
	store eventstore.Store
	now   func() time.Time
}

// NewLedgerService builds the service. A nil clock defaults to UTC now;
// tests inject a fixed clock so daily-limit decisions are reproducible.
func NewLedgerService(store eventstore.Store, now func() time.Time) *LedgerService {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &LedgerService{store: store, now: now}
}

func (s *LedgerService) CreateAccount(ctx context.Context, cmd domain.CreateAccountCommand) (*domain.Account, error) {
	owner := strings.TrimSpace(cmd.Owner)
	accountNumber := strings.TrimSpace(cmd.AccountNumber)
	if owner == "" || accountNumber == "" {
		return nil, fmt.Errorf("owner and account number are required")
	}
	if cmd.InitialBalance.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if !cmd.DailyWithdrawalLimit.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	streamID := strings.TrimSpace(cmd.StreamID)
	if streamID == "" {
		streamID = uuid.NewString()
	}

	evt := domain.AccountCreated{
		StreamID:             streamID,
		Owner:                owner,
		AccountNumber:        accountNumber,
		InitialBalance:       cmd.InitialBalance,
		DailyWithdrawalLimit: cmd.DailyWithdrawalLimit,
		Timestamp:            s.now(),
	}

	if err := s.store.StartStream(ctx, streamID, evt); err != nil {
		if errors.Is(err, eventstore.ErrStreamAlreadyExists) {
			return nil, domain.ErrAccountAlreadyExists
		}
		return nil, err
	}

	logger.Info("ledger service account created", logger.Fields{
		"stream_id":      streamID,
		"account_number": accountNumber,
	})

	return domain.Apply(nil, evt)
}

func (s *LedgerService) Deposit(ctx context.Context, cmd domain.DepositCommand) (*domain.Account, error) {
	acct, version, err := s.loadAccount(ctx, cmd.StreamID)
	if err != nil {
		return nil, err
	}
	if !acct.Mutable() {
		return nil, domain.ErrAccountClosed
	}
	if !cmd.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	evt := domain.MoneyDeposited{
		StreamID:    acct.StreamID,
		Amount:      cmd.Amount,
		Description: strings.TrimSpace(cmd.Description),
		Booked:      cmd.Booked,
		Timestamp:   s.now(),
	}

	return s.commit(ctx, acct, version, evt)
}

func (s *LedgerService) Withdraw(ctx context.Context, cmd domain.WithdrawCommand) (*domain.Account, error) {
	acct, version, err := s.loadAccount(ctx, cmd.StreamID)
	if err != nil {
		return nil, err
	}
	if !acct.Mutable() {
		return nil, domain.ErrAccountClosed
	}
	if !cmd.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	// The same timestamp drives both the limit decision here and the
	// projection later, so a replay reproduces the decision exactly.
	now := s.now()
	if cmd.Booked {
		if acct.Available().LessThan(cmd.Amount) {
			return nil, domain.ErrInsufficientFunds
		}
		if acct.WithdrawnOn(now).Add(cmd.Amount).GreaterThan(acct.DailyWithdrawalLimit) {
			return nil, domain.ErrWithdrawalLimitExceeded
		}
	}

	evt := domain.MoneyWithdrawn{
		StreamID:    acct.StreamID,
		Amount:      cmd.Amount,
		Description: strings.TrimSpace(cmd.Description),
		Booked:      cmd.Booked,
		Timestamp:   now,
	}

	return s.commit(ctx, acct, version, evt)
}

// Transfer debits the source stream and credits the destination stream in
// one atomic multi-stream append. Both sides become visible together or
// not at all.
func (s *LedgerService) Transfer(ctx context.Context, cmd domain.TransferCommand) (*domain.Account, error) {
	sourceID := strings.TrimSpace(cmd.SourceID)
	destinationID := strings.TrimSpace(cmd.DestinationID)
	if sourceID == destinationID {
		return nil, domain.ErrSameAccount
	}

	source, sourceVersion, err := s.loadAccount(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	if !source.Mutable() {
		return nil, domain.ErrAccountClosed
	}
	if !cmd.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	destination, destinationVersion, err := s.loadAccount(ctx, destinationID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrDestinationNotFound
		}
		return nil, err
	}
	if !destination.Mutable() {
		return nil, domain.ErrAccountClosed
	}

	now := s.now()
	if cmd.Booked {
		if source.Available().LessThan(cmd.Amount) {
			return nil, domain.ErrInsufficientFunds
		}
		if source.WithdrawnOn(now).Add(cmd.Amount).GreaterThan(source.DailyWithdrawalLimit) {
			return nil, domain.ErrWithdrawalLimitExceeded
		}
	}

	transferID := uuid.NewString()
	description := strings.TrimSpace(cmd.Description)

	sent := domain.TransferSent{
		StreamID:      sourceID,
		TransferID:    transferID,
		DestinationID: destinationID,
		Amount:        cmd.Amount,
		Description:   description,
		Booked:        cmd.Booked,
		Timestamp:     now,
	}
	received := domain.TransferReceived{
		StreamID:    destinationID,
		TransferID:  transferID,
		SourceID:    sourceID,
		Amount:      cmd.Amount,
		Description: description,
		Booked:      cmd.Booked,
		Timestamp:   now,
	}

	err = s.store.AppendMulti(ctx, []eventstore.StreamAppend{
		{StreamID: sourceID, ExpectedVersion: sourceVersion, Events: []domain.Event{sent}},
		{StreamID: destinationID, ExpectedVersion: destinationVersion, Events: []domain.Event{received}},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("ledger service transfer committed", logger.Fields{
		"transfer_id": transferID,
		"source":      sourceID,
		"destination": destinationID,
		"amount":      cmd.Amount.String(),
		"booked":      cmd.Booked,
	})

	return domain.Apply(source, sent)
}

// CreditInterest credits balance × rate rounded to 2 decimal places,
// half away from zero (the source system's midpoint rounding).
func (s *LedgerService) CreditInterest(ctx context.Context, cmd domain.CreditInterestCommand) (*domain.Account, error) {
	acct, version, err := s.loadAccount(ctx, cmd.StreamID)
	if err != nil {
		return nil, err
	}
	if !acct.Mutable() {
		return nil, domain.ErrAccountClosed
	}
	if !cmd.Rate.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	evt := domain.InterestCredited{
		StreamID:  acct.StreamID,
		Rate:      cmd.Rate,
		Amount:    acct.Balance.Mul(cmd.Rate).Round(2),
		Timestamp: s.now(),
	}

	return s.commit(ctx, acct, version, evt)
}

func (s *LedgerService) ChargeFee(ctx context.Context, cmd domain.ChargeFeeCommand) (*domain.Account, error) {
	acct, version, err := s.loadAccount(ctx, cmd.StreamID)
	if err != nil {
		return nil, err
	}
	if !acct.Mutable() {
		return nil, domain.ErrAccountClosed
	}
	if !cmd.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	if acct.Available().LessThan(cmd.Amount) {
		return nil, domain.ErrInsufficientFunds
	}

	evt := domain.FeeCharged{
		StreamID:  acct.StreamID,
		Amount:    cmd.Amount,
		FeeType:   strings.TrimSpace(cmd.FeeType),
		Timestamp: s.now(),
	}

	return s.commit(ctx, acct, version, evt)
}

func (s *LedgerService) UpdateLimit(ctx context.Context, cmd domain.UpdateLimitCommand) (*domain.Account, error) {
	acct, version, err := s.loadAccount(ctx, cmd.StreamID)
	if err != nil {
		return nil, err
	}
	if !acct.Mutable() {
		return nil, domain.ErrAccountClosed
	}
	if !cmd.NewLimit.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	evt := domain.LimitUpdated{
		StreamID:             acct.StreamID,
		DailyWithdrawalLimit: cmd.NewLimit,
		Timestamp:            s.now(),
	}

	return s.commit(ctx, acct, version, evt)
}

func (s *LedgerService) CloseAccount(ctx context.Context, cmd domain.CloseAccountCommand) (*domain.Account, error) {
	acct, version, err := s.loadAccount(ctx, cmd.StreamID)
	if err != nil {
		return nil, err
	}
	if !acct.Mutable() {
		return nil, domain.ErrAccountClosed
	}

	evt := domain.AccountClosed{
		StreamID:  acct.StreamID,
		Reason:    strings.TrimSpace(cmd.Reason),
		Timestamp: s.now(),
	}

	return s.commit(ctx, acct, version, evt)
}

// ClosePeriod ends the account's current stream and originates its
// successor in one atomic commit: the closing stream gets a terminal
// PeriodClosed carrying the forward link, the new stream opens with a
// PeriodStarted carrying the backward link and the full balance and
// reserved carry-forward. It returns the new period's state.
func (s *LedgerService) ClosePeriod(ctx context.Context, cmd domain.ClosePeriodCommand) (*domain.Account, error) {
	acct, version, err := s.loadAccount(ctx, cmd.StreamID)
	if err != nil {
		return nil, err
	}
	if !acct.Mutable() {
		return nil, domain.ErrAccountClosed
	}

	now := s.now()
	closingDate := cmd.ClosingDate.UTC()
	if cmd.ClosingDate.IsZero() {
		closingDate = now
	}

	nextStreamID := uuid.NewString()
	nextStart, nextEnd := domain.NextPeriodRange(closingDate)

	closed := domain.PeriodClosed{
		StreamID:      acct.StreamID,
		NextStreamID:  nextStreamID,
		ClosingDate:   closingDate,
		FinalBalance:  acct.Balance,
		FinalReserved: acct.Reserved,
		Timestamp:     now,
	}
	started := domain.PeriodStarted{
		StreamID:             nextStreamID,
		PreviousStreamID:     acct.StreamID,
		Owner:                acct.Owner,
		AccountNumber:        acct.AccountNumber,
		OpeningBalance:       acct.Balance,
		OpeningReserved:      acct.Reserved,
		DailyWithdrawalLimit: acct.DailyWithdrawalLimit,
		PeriodStart:          nextStart,
		PeriodEnd:            nextEnd,
		Timestamp:            now,
	}

	err = s.store.AppendMulti(ctx, []eventstore.StreamAppend{
		{StreamID: acct.StreamID, ExpectedVersion: version, Events: []domain.Event{closed}},
		{StreamID: nextStreamID, ExpectedVersion: 0, Events: []domain.Event{started}},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("ledger service period closed", logger.Fields{
		"stream_id":      acct.StreamID,
		"next_stream_id": nextStreamID,
		"closing_date":   closingDate.Format(time.RFC3339),
		"final_balance":  acct.Balance.String(),
	})

	return domain.Apply(nil, started)
}

func (s *LedgerService) loadAccount(ctx context.Context, streamID string) (*domain.Account, int64, error) {
	events, version, err := s.store.ReadStream(ctx, strings.TrimSpace(streamID))
	if err != nil {
		if errors.Is(err, eventstore.ErrStreamNotFound) {
			return nil, 0, domain.ErrAccountNotFound
		}
		return nil, 0, fmt.Errorf("load account %q: %w", streamID, err)
	}

	acct, err := domain.Replay(events)
	if err != nil {
		return nil, 0, fmt.Errorf("replay account %q: %w", streamID, err)
	}

	return acct, version, nil
}

// commit appends the events and derives the updated state by folding them
// onto the pre-read snapshot, so the result never depends on projection
// visibility after the write.
func (s *LedgerService) commit(ctx context.Context, acct *domain.Account, version int64, events ...domain.Event) (*domain.Account, error) {
	if err := s.store.Append(ctx, acct.StreamID, version, events...); err != nil {
		return nil, err
	}

	for _, evt := range events {
		next, err := domain.Apply(acct, evt)
		if err != nil {
			return nil, err
		}
		acct = next
	}

	return acct, nil
}
