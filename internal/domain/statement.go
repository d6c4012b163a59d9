package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is the bounded per-period view of an account: the opening
// balance, every transaction of the period in order, and the links to the
// neighboring periods in the chain.
type Statement struct {
	StreamID         string
	Owner            string
	AccountNumber    string
	OpeningBalance   decimal.Decimal
	ClosingBalance   decimal.Decimal
	Reserved         decimal.Decimal
	Available        decimal.Decimal
	PeriodStart      time.Time
	PeriodEnd        time.Time
	Transactions     []Transaction
	Closed           bool
	NextStreamID     string
	PreviousStreamID string
}

// NewStatement assembles a statement from projected period state. Opening
// balance is the first transaction's signed amount, zero when the period
// has no transactions.
func NewStatement(acct *Account) Statement {
	opening := decimal.Zero
	if len(acct.Transactions) > 0 {
		opening = acct.Transactions[0].Amount
	}

	transactions := make([]Transaction, len(acct.Transactions))
	copy(transactions, acct.Transactions)

	return Statement{
		StreamID:         acct.StreamID,
		Owner:            acct.Owner,
		AccountNumber:    acct.AccountNumber,
		OpeningBalance:   opening,
		ClosingBalance:   acct.Balance,
		Reserved:         acct.Reserved,
		Available:        acct.Available(),
		PeriodStart:      acct.PeriodStart,
		PeriodEnd:        acct.PeriodEnd,
		Transactions:     transactions,
		Closed:           acct.PeriodClosed,
		NextStreamID:     acct.NextStreamID,
		PreviousStreamID: acct.PreviousStreamID,
	}
}
