package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionDeposit          TransactionType = "Deposit"
	TransactionWithdrawal       TransactionType = "Withdrawal"
	TransactionTransferSent     TransactionType = "TransferSent"
	TransactionTransferReceived TransactionType = "TransferReceived"
	TransactionInterest         TransactionType = "Interest"
	TransactionFee              TransactionType = "Fee"
	TransactionOpeningBalance   TransactionType = "OpeningBalance"
)

// Transaction is one line of an account statement. Amounts are signed:
// positive for credits, negative for debits. Records are append-only and
// their order defines the statement order.
type Transaction struct {
	Timestamp   time.Time
	Amount      decimal.Decimal
	Description string
	Type        TransactionType
	Booked      bool
}

// Account is the projected state of one account period, derived by
// replaying the period's event stream. It is never persisted directly.
type Account struct {
	StreamID             string
	Owner                string
	AccountNumber        string
	Balance              decimal.Decimal
	Reserved             decimal.Decimal
	DailyWithdrawalLimit decimal.Decimal
	TodaysWithdrawals    decimal.Decimal
	LastWithdrawalAt     time.Time
	Closed               bool
	ClosedAt             time.Time
	PeriodClosed         bool
	NextStreamID         string
	PreviousStreamID     string
	PeriodStart          time.Time
	PeriodEnd            time.Time
	Transactions         []Transaction
}

// Available returns the spendable amount: booked balance minus reserved.
func (a *Account) Available() decimal.Decimal {
	return a.Balance.Sub(a.Reserved)
}

// Mutable reports whether the stream still accepts business events. A
// closed account and a closed period are both frozen; a period-closed
// stream stays queryable for history.
func (a *Account) Mutable() bool {
	return !a.Closed && !a.PeriodClosed
}

// WithdrawnOn returns the running withdrawals counter as of the given
// moment. The counter resets on UTC calendar-day rollover, so withdrawals
// from a previous day never count against today's limit.
func (a *Account) WithdrawnOn(at time.Time) decimal.Decimal {
	if !sameUTCDay(a.LastWithdrawalAt, at) {
		return decimal.Zero
	}
	return a.TodaysWithdrawals
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
