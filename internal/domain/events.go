package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventKind identifies the kind of a ledger event.
type EventKind string

const (
	EventAccountCreated   EventKind = "account.created"
	EventMoneyDeposited   EventKind = "money.deposited"
	EventMoneyWithdrawn   EventKind = "money.withdrawn"
	EventTransferSent     EventKind = "transfer.sent"
	EventTransferReceived EventKind = "transfer.received"
	EventInterestCredited EventKind = "interest.credited"
	EventFeeCharged       EventKind = "fee.charged"
	EventLimitUpdated     EventKind = "limit.updated"
	EventAccountClosed    EventKind = "account.closed"
	EventPeriodClosed     EventKind = "period.closed"
	EventPeriodStarted    EventKind = "period.started"
)

// Event is an immutable fact recorded on an account stream. Events are the
// sole source of truth; account state is always derived by replaying them
// in stream order.
type Event interface {
	Kind() EventKind
	Stream() string
	OccurredAt() time.Time
}

type AccountCreated struct {
	StreamID             string          `json:"stream_id"`
	Owner                string          `json:"owner"`
	AccountNumber        string          `json:"account_number"`
	InitialBalance       decimal.Decimal `json:"initial_balance"`
	DailyWithdrawalLimit decimal.Decimal `json:"daily_withdrawal_limit"`
	Timestamp            time.Time       `json:"timestamp"`
}

func (e AccountCreated) Kind() EventKind       { return EventAccountCreated }
func (e AccountCreated) Stream() string        { return e.StreamID }
func (e AccountCreated) OccurredAt() time.Time { return e.Timestamp }

type MoneyDeposited struct {
	StreamID    string          `json:"stream_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Booked      bool            `json:"booked"`
	Timestamp   time.Time       `json:"timestamp"`
}

func (e MoneyDeposited) Kind() EventKind       { return EventMoneyDeposited }
func (e MoneyDeposited) Stream() string        { return e.StreamID }
func (e MoneyDeposited) OccurredAt() time.Time { return e.Timestamp }

type MoneyWithdrawn struct {
	StreamID    string          `json:"stream_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Booked      bool            `json:"booked"`
	Timestamp   time.Time       `json:"timestamp"`
}

func (e MoneyWithdrawn) Kind() EventKind       { return EventMoneyWithdrawn }
func (e MoneyWithdrawn) Stream() string        { return e.StreamID }
func (e MoneyWithdrawn) OccurredAt() time.Time { return e.Timestamp }

// TransferSent is the debit side of a transfer; its counterpart
// TransferReceived is appended to the destination stream in the same
// atomic commit.
type TransferSent struct {
	StreamID      string          `json:"stream_id"`
	TransferID    string          `json:"transfer_id"`
	DestinationID string          `json:"destination_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Booked        bool            `json:"booked"`
	Timestamp     time.Time       `json:"timestamp"`
}

func (e TransferSent) Kind() EventKind       { return EventTransferSent }
func (e TransferSent) Stream() string        { return e.StreamID }
func (e TransferSent) OccurredAt() time.Time { return e.Timestamp }

type TransferReceived struct {
	StreamID    string          `json:"stream_id"`
	TransferID  string          `json:"transfer_id"`
	SourceID    string          `json:"source_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Booked      bool            `json:"booked"`
	Timestamp   time.Time       `json:"timestamp"`
}

func (e TransferReceived) Kind() EventKind       { return EventTransferReceived }
func (e TransferReceived) Stream() string        { return e.StreamID }
func (e TransferReceived) OccurredAt() time.Time { return e.Timestamp }

// InterestCredited carries the interest amount precomputed by the
// handler so replay never depends on rounding done elsewhere.
type InterestCredited struct {
	StreamID  string          `json:"stream_id"`
	Rate      decimal.Decimal `json:"rate"`
	Amount    decimal.Decimal `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
}

func (e InterestCredited) Kind() EventKind       { return EventInterestCredited }
func (e InterestCredited) Stream() string        { return e.StreamID }
func (e InterestCredited) OccurredAt() time.Time { return e.Timestamp }

type FeeCharged struct {
	StreamID  string          `json:"stream_id"`
	Amount    decimal.Decimal `json:"amount"`
	FeeType   string          `json:"fee_type"`
	Timestamp time.Time       `json:"timestamp"`
}

func (e FeeCharged) Kind() EventKind       { return EventFeeCharged }
func (e FeeCharged) Stream() string        { return e.StreamID }
func (e FeeCharged) OccurredAt() time.Time { return e.Timestamp }

type LimitUpdated struct {
	StreamID             string          `json:"stream_id"`
	DailyWithdrawalLimit decimal.Decimal `json:"daily_withdrawal_limit"`
	Timestamp            time.Time       `json:"timestamp"`
}

func (e LimitUpdated) Kind() EventKind       { return EventLimitUpdated }
func (e LimitUpdated) Stream() string        { return e.StreamID }
func (e LimitUpdated) OccurredAt() time.Time { return e.Timestamp }

type AccountClosed struct {
	StreamID  string    `json:"stream_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

func (e AccountClosed) Kind() EventKind       { return EventAccountClosed }
func (e AccountClosed) Stream() string        { return e.StreamID }
func (e AccountClosed) OccurredAt() time.Time { return e.Timestamp }

// PeriodClosed terminates a stream. It is always committed together with
// the PeriodStarted event that originates the successor stream.
type PeriodClosed struct {
	StreamID      string          `json:"stream_id"`
	NextStreamID  string          `json:"next_stream_id"`
	ClosingDate   time.Time       `json:"closing_date"`
	FinalBalance  decimal.Decimal `json:"final_balance"`
	FinalReserved decimal.Decimal `json:"final_reserved"`
	Timestamp     time.Time       `json:"timestamp"`
}

func (e PeriodClosed) Kind() EventKind       { return EventPeriodClosed }
func (e PeriodClosed) Stream() string        { return e.StreamID }
func (e PeriodClosed) OccurredAt() time.Time { return e.Timestamp }

// PeriodStarted is the first event of a successor stream. It carries
// everything needed to reconstruct the new period without consulting the
// previous stream.
type PeriodStarted struct {
	StreamID             string          `json:"stream_id"`
	PreviousStreamID     string          `json:"previous_stream_id"`
	Owner                string          `json:"owner"`
	AccountNumber        string          `json:"account_number"`
	OpeningBalance       decimal.Decimal `json:"opening_balance"`
	OpeningReserved      decimal.Decimal `json:"opening_reserved"`
	DailyWithdrawalLimit decimal.Decimal `json:"daily_withdrawal_limit"`
	PeriodStart          time.Time       `json:"period_start"`
	PeriodEnd            time.Time       `json:"period_end"`
	Timestamp            time.Time       `json:"timestamp"`
}

func (e PeriodStarted) Kind() EventKind       { return EventPeriodStarted }
func (e PeriodStarted) Stream() string        { return e.StreamID }
func (e PeriodStarted) OccurredAt() time.Time { return e.Timestamp }
