package memory

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/eventstore"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func created(streamID string) domain.AccountCreated {
	return domain.AccountCreated{
		StreamID:             streamID,
		Owner:                "Ada Marsh",
		AccountNumber:        "0001112223",
		InitialBalance:       decimal.NewFromInt(1000),
		DailyWithdrawalLimit: decimal.NewFromInt(500),
		Timestamp:            time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
	}
}

func deposit(streamID string, amount int64) domain.MoneyDeposited {
	return domain.MoneyDeposited{
		StreamID:  streamID,
		Amount:    decimal.NewFromInt(amount),
		Booked:    true,
		Timestamp: time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC),
	}
}

func TestReadMissingStream(t *testing.T) {
	store := NewStore()

	_, _, err := store.ReadStream(context.Background(), "nope")
	require.ErrorIs(t, err, eventstore.ErrStreamNotFound)
}

func TestStartStreamRejectsDuplicates(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.StartStream(ctx, "s1", created("s1")))
	err := store.StartStream(ctx, "s1", created("s1"))
	require.ErrorIs(t, err, eventstore.ErrStreamAlreadyExists)
}

func TestAppendChecksExpectedVersion(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.StartStream(ctx, "s1", created("s1")))
	require.NoError(t, store.Append(ctx, "s1", 1, deposit("s1", 50)))

	err := store.Append(ctx, "s1", 1, deposit("s1", 60))
	require.ErrorIs(t, err, eventstore.ErrVersionConflict)

	events, version, err := store.ReadStream(ctx, "s1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, version)
	assert.Len(t, events, 2)
}

func TestAppendMultiIsAllOrNothing(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.StartStream(ctx, "s1", created("s1")))
	require.NoError(t, store.StartStream(ctx, "s2", created("s2")))

	// Second stream's expected version is stale; the first stream must
	// stay untouched.
	err := store.AppendMulti(ctx, []eventstore.StreamAppend{
		{StreamID: "s1", ExpectedVersion: 1, Events: []domain.Event{deposit("s1", 50)}},
		{StreamID: "s2", ExpectedVersion: 9, Events: []domain.Event{deposit("s2", 50)}},
	})
	require.ErrorIs(t, err, eventstore.ErrVersionConflict)

	_, version, err := store.ReadStream(ctx, "s1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, version)

	require.NoError(t, store.AppendMulti(ctx, []eventstore.StreamAppend{
		{StreamID: "s1", ExpectedVersion: 1, Events: []domain.Event{deposit("s1", 50)}},
		{StreamID: "s2", ExpectedVersion: 1, Events: []domain.Event{deposit("s2", 50)}},
	}))

	_, v1, err := store.ReadStream(ctx, "s1")
	require.NoError(t, err)
	_, v2, err := store.ReadStream(ctx, "s2")
	require.NoError(t, err)
	assert.EqualValues(t, 2, v1)
	assert.EqualValues(t, 2, v2)
}

func TestReadStreamReturnsCopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.StartStream(ctx, "s1", created("s1")))

	events, _, err := store.ReadStream(ctx, "s1")
	require.NoError(t, err)
	events[0] = deposit("s1", 999)

	fresh, _, err := store.ReadStream(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, domain.EventAccountCreated, fresh[0].Kind())
}
