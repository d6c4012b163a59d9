package eventstore

import (
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRoundTrip(t *testing.T) {
	original := domain.MoneyDeposited{
		StreamID:    "stream-1",
		Amount:      decimal.RequireFromString("150.25"),
		Description: "salary",
		Booked:      true,
		Timestamp:   time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC),
	}

	kind, payload, err := MarshalEvent(original)
	require.NoError(t, err)
	assert.Equal(t, string(domain.EventMoneyDeposited), kind)

	decoded, err := UnmarshalEvent(kind, payload)
	require.NoError(t, err)

	deposited, ok := decoded.(domain.MoneyDeposited)
	require.True(t, ok, "decoded event should be a value, got %T", decoded)
	assert.Equal(t, original.StreamID, deposited.StreamID)
	assert.True(t, deposited.Amount.Equal(original.Amount))
	assert.True(t, deposited.Booked)
}

func TestPeriodClosedRoundTripKeepsLinks(t *testing.T) {
	original := domain.PeriodClosed{
		StreamID:      "stream-1",
		NextStreamID:  "stream-2",
		ClosingDate:   time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC),
		FinalBalance:  decimal.RequireFromString("1291.29"),
		FinalReserved: decimal.RequireFromString("100"),
		Timestamp:     time.Date(2026, time.March, 31, 18, 0, 0, 0, time.UTC),
	}

	kind, payload, err := MarshalEvent(original)
	require.NoError(t, err)

	decoded, err := UnmarshalEvent(kind, payload)
	require.NoError(t, err)

	closed, ok := decoded.(domain.PeriodClosed)
	require.True(t, ok)
	assert.Equal(t, "stream-2", closed.NextStreamID)
	assert.True(t, closed.FinalBalance.Equal(original.FinalBalance))
}

func TestUnmarshalUnknownKindFails(t *testing.T) {
	_, err := UnmarshalEvent("account.renamed", []byte(`{}`))
	require.Error(t, err)
}
