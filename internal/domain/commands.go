package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Commands describe requested operations. They are input-only: a handler
// validates a command against projected state and translates it into
// events; commands themselves are never persisted.

type CreateAccountCommand struct {
	StreamID             string // optional; generated when empty
	Owner                string
	AccountNumber        string
	InitialBalance       decimal.Decimal
	DailyWithdrawalLimit decimal.Decimal
}

type DepositCommand struct {
	StreamID    string
	Amount      decimal.Decimal
	Description string
	Booked      bool
}

type WithdrawCommand struct {
	StreamID    string
	Amount      decimal.Decimal
	Description string
	Booked      bool
}

type TransferCommand struct {
	SourceID      string
	DestinationID string
	Amount        decimal.Decimal
	Description   string
	Booked        bool
}

type CreditInterestCommand struct {
	StreamID string
	Rate     decimal.Decimal
}

type ChargeFeeCommand struct {
	StreamID string
	Amount   decimal.Decimal
	FeeType  string
}

type UpdateLimitCommand struct {
	StreamID string
	NewLimit decimal.Decimal
}

type CloseAccountCommand struct {
	StreamID string
	Reason   string
}

type ClosePeriodCommand struct {
	StreamID    string
	ClosingDate time.Time // zero value means "now"
}
