package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Apply folds one event into the projected account state. For stream
// origin events (AccountCreated, PeriodStarted) state must be nil; for
// every other event it must be the accumulator built so far. Apply never
// mutates its input decision-relevant fields based on wall clock: all day
// comparisons use the event's own timestamp so replay is reproducible.
func Apply(state *Account, evt Event) (*Account, error) {
	switch e := evt.(type) {
	case AccountCreated:
		if state != nil {
			return nil, fmt.Errorf("apply %s: stream %s already originated", e.Kind(), e.StreamID)
		}
		start, end := MonthRange(e.Timestamp)
		acct := &Account{
			StreamID:             e.StreamID,
			Owner:                e.Owner,
			AccountNumber:        e.AccountNumber,
			Balance:              e.InitialBalance,
			Reserved:             decimal.Zero,
			DailyWithdrawalLimit: e.DailyWithdrawalLimit,
			TodaysWithdrawals:    decimal.Zero,
			PeriodStart:          start,
			PeriodEnd:            end,
		}
		acct.record(Transaction{
			Timestamp:   e.Timestamp,
			Amount:      e.InitialBalance,
			Description: "Opening Balance",
			Type:        TransactionOpeningBalance,
			Booked:      true,
		})
		return acct, nil

	case PeriodStarted:
		if state != nil {
			return nil, fmt.Errorf("apply %s: stream %s already originated", e.Kind(), e.StreamID)
		}
		acct := &Account{
			StreamID:             e.StreamID,
			Owner:                e.Owner,
			AccountNumber:        e.AccountNumber,
			Balance:              e.OpeningBalance,
			Reserved:             e.OpeningReserved,
			DailyWithdrawalLimit: e.DailyWithdrawalLimit,
			TodaysWithdrawals:    decimal.Zero,
			PreviousStreamID:     e.PreviousStreamID,
			PeriodStart:          e.PeriodStart,
			PeriodEnd:            e.PeriodEnd,
		}
		acct.record(Transaction{
			Timestamp:   e.Timestamp,
			Amount:      e.OpeningBalance,
			Description: "Opening Balance",
			Type:        TransactionOpeningBalance,
			Booked:      true,
		})
		return acct, nil
	}

	if state == nil {
		return nil, fmt.Errorf("apply %s: stream not originated", evt.Kind())
	}
	acct := state.clone()

	switch e := evt.(type) {
	case MoneyDeposited:
		if e.Booked {
			acct.Balance = acct.Balance.Add(e.Amount)
		} else {
			acct.Reserved = acct.Reserved.Add(e.Amount)
		}
		acct.record(Transaction{
			Timestamp:   e.Timestamp,
			Amount:      e.Amount,
			Description: e.Description,
			Type:        TransactionDeposit,
			Booked:      e.Booked,
		})

	case MoneyWithdrawn:
		if e.Booked {
			acct.Balance = acct.Balance.Sub(e.Amount)
			acct.registerWithdrawal(e.Amount, e.Timestamp)
		} else {
			acct.Reserved = acct.Reserved.Add(e.Amount)
		}
		acct.record(Transaction{
			Timestamp:   e.Timestamp,
			Amount:      e.Amount.Neg(),
			Description: e.Description,
			Type:        TransactionWithdrawal,
			Booked:      e.Booked,
		})

	case TransferSent:
		if e.Booked {
			acct.Balance = acct.Balance.Sub(e.Amount)
			acct.registerWithdrawal(e.Amount, e.Timestamp)
		} else {
			acct.Reserved = acct.Reserved.Add(e.Amount)
		}
		acct.record(Transaction{
			Timestamp:   e.Timestamp,
			Amount:      e.Amount.Neg(),
			Description: e.Description,
			Type:        TransactionTransferSent,
			Booked:      e.Booked,
		})

	case TransferReceived:
		if e.Booked {
			acct.Balance = acct.Balance.Add(e.Amount)
		} else {
			// A pending receipt releases its reservation, while a pending
			// withdrawal never does. Inherited from the source system;
			// likely unintentional there, but kept intact.
			acct.Reserved = acct.Reserved.Sub(e.Amount)
			if acct.Reserved.IsNegative() {
				acct.Reserved = decimal.Zero
			}
		}
		acct.record(Transaction{
			Timestamp:   e.Timestamp,
			Amount:      e.Amount,
			Description: e.Description,
			Type:        TransactionTransferReceived,
			Booked:      e.Booked,
		})

	case InterestCredited:
		acct.Balance = acct.Balance.Add(e.Amount)
		acct.record(Transaction{
			Timestamp:   e.Timestamp,
			Amount:      e.Amount,
			Description: fmt.Sprintf("Interest at rate %s", e.Rate),
			Type:        TransactionInterest,
			Booked:      true,
		})

	case FeeCharged:
		acct.Balance = acct.Balance.Sub(e.Amount)
		acct.record(Transaction{
			Timestamp:   e.Timestamp,
			Amount:      e.Amount.Neg(),
			Description: e.FeeType,
			Type:        TransactionFee,
			Booked:      true,
		})

	case LimitUpdated:
		acct.DailyWithdrawalLimit = e.DailyWithdrawalLimit

	case AccountClosed:
		acct.Closed = true
		acct.ClosedAt = e.Timestamp

	case PeriodClosed:
		// Terminal marker: balances stay as they are, the period simply
		// ends on the closing date and links forward.
		acct.PeriodClosed = true
		acct.NextStreamID = e.NextStreamID
		acct.PeriodEnd = e.ClosingDate

	default:
		return nil, fmt.Errorf("apply: unknown event kind %q", evt.Kind())
	}

	return acct, nil
}

// Replay folds an ordered event slice into account state from scratch.
func Replay(events []Event) (*Account, error) {
	var acct *Account
	for _, evt := range events {
		next, err := Apply(acct, evt)
		if err != nil {
			return nil, err
		}
		acct = next
	}
	return acct, nil
}

func (a *Account) record(tx Transaction) {
	a.Transactions = append(a.Transactions, tx)
}

func (a *Account) registerWithdrawal(amount decimal.Decimal, at time.Time) {
	if !sameUTCDay(a.LastWithdrawalAt, at) {
		a.TodaysWithdrawals = decimal.Zero
	}
	a.TodaysWithdrawals = a.TodaysWithdrawals.Add(amount)
	a.LastWithdrawalAt = at
}

// clone copies the state so Apply can be used both for replay and for
// deriving post-command state without mutating the pre-read snapshot.
func (a *Account) clone() *Account {
	dup := *a
	dup.Transactions = make([]Transaction, len(a.Transactions), len(a.Transactions)+1)
	copy(dup.Transactions, a.Transactions)
	return &dup
}
