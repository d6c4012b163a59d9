package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/eventstore/memory"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/usecase/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatements(t *testing.T) (*services.LedgerService, *services.StatementService, *clock) {
	t.Helper()
	store := memory.NewStore()
	clk := &clock{now: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)}
	ledger := services.NewLedgerService(store, func() time.Time { return clk.now })
	return ledger, services.NewStatementService(store), clk
}

func TestGetStatementNotFound(t *testing.T) {
	_, stmts, _ := newStatements(t)

	_, err := stmts.GetStatement(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestGetStatementFields(t *testing.T) {
	ledger, stmts, _ := newStatements(t)
	ctx := context.Background()
	createAccount(t, ledger, "acct-1")

	_, err := ledger.Deposit(ctx, domain.DepositCommand{StreamID: "acct-1", Amount: d(t, "300"), Booked: true})
	require.NoError(t, err)
	_, err = ledger.Withdraw(ctx, domain.WithdrawCommand{StreamID: "acct-1", Amount: d(t, "50"), Booked: false})
	require.NoError(t, err)

	stmt, err := stmts.GetStatement(ctx, "acct-1")
	require.NoError(t, err)

	assert.Equal(t, "Ada Marsh", stmt.Owner)
	assert.True(t, stmt.OpeningBalance.Equal(d(t, "1000")))
	assert.True(t, stmt.ClosingBalance.Equal(d(t, "1300")))
	assert.True(t, stmt.Reserved.Equal(d(t, "50")))
	assert.True(t, stmt.Available.Equal(d(t, "1250")))
	assert.False(t, stmt.Closed)
	assert.Empty(t, stmt.NextStreamID)
	require.Len(t, stmt.Transactions, 3)
}

func TestHistoryOfNeverClosedAccountIsSingleStatement(t *testing.T) {
	ledger, stmts, _ := newStatements(t)
	ctx := context.Background()
	createAccount(t, ledger, "acct-1")

	history, err := stmts.GetAccountHistory(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "acct-1", history[0].StreamID)
}

func TestHistoryWalksPeriodChainInOrder(t *testing.T) {
	ledger, stmts, clk := newStatements(t)
	ctx := context.Background()
	createAccount(t, ledger, "acct-1")

	_, err := ledger.Deposit(ctx, domain.DepositCommand{StreamID: "acct-1", Amount: d(t, "200"), Booked: true})
	require.NoError(t, err)

	second, err := ledger.ClosePeriod(ctx, domain.ClosePeriodCommand{StreamID: "acct-1"})
	require.NoError(t, err)

	clk.advance(30 * 24 * time.Hour)
	_, err = ledger.Withdraw(ctx, domain.WithdrawCommand{StreamID: second.StreamID, Amount: d(t, "100"), Booked: true})
	require.NoError(t, err)

	third, err := ledger.ClosePeriod(ctx, domain.ClosePeriodCommand{StreamID: second.StreamID})
	require.NoError(t, err)

	history, err := stmts.GetAccountHistory(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.Equal(t, "acct-1", history[0].StreamID)
	assert.Equal(t, second.StreamID, history[1].StreamID)
	assert.Equal(t, third.StreamID, history[2].StreamID)

	assert.True(t, history[0].Closed)
	assert.True(t, history[1].Closed)
	assert.False(t, history[2].Closed)

	// Each period opens where the previous one closed.
	assert.True(t, history[1].OpeningBalance.Equal(history[0].ClosingBalance))
	assert.True(t, history[2].OpeningBalance.Equal(history[1].ClosingBalance))
	assert.True(t, history[2].ClosingBalance.Equal(d(t, "1100")))

	// Links run both ways through the chain.
	assert.Equal(t, history[1].StreamID, history[0].NextStreamID)
	assert.Equal(t, history[0].StreamID, history[1].PreviousStreamID)
	assert.Equal(t, history[1].StreamID, history[2].PreviousStreamID)
}

func TestHistoryStartsFromAnyStreamInTheChain(t *testing.T) {
	ledger, stmts, _ := newStatements(t)
	ctx := context.Background()
	createAccount(t, ledger, "acct-1")

	second, err := ledger.ClosePeriod(ctx, domain.ClosePeriodCommand{StreamID: "acct-1"})
	require.NoError(t, err)

	history, err := stmts.GetAccountHistory(ctx, second.StreamID)
	require.NoError(t, err)
	require.Len(t, history, 1, "walking forward from the tail yields only the live period")
	assert.Equal(t, second.StreamID, history[0].StreamID)
}
