package models

import (
	"errors"
	"strings"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

// MoneyRequest covers deposits and withdrawals: an amount, an optional
// narration, and whether the movement is booked immediately or only
// reserved.
type MoneyRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Booked      bool            `json:"booked"`
}

func (r MoneyRequest) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("amount must be greater than zero")
	}
	return nil
}

func (r MoneyRequest) DepositCommand(streamID string) domain.DepositCommand {
	return domain.DepositCommand{
		StreamID:    streamID,
		Amount:      r.Amount,
		Description: strings.TrimSpace(r.Description),
		Booked:      r.Booked,
	}
}

func (r MoneyRequest) WithdrawCommand(streamID string) domain.WithdrawCommand {
	return domain.WithdrawCommand{
		StreamID:    streamID,
		Amount:      r.Amount,
		Description: strings.TrimSpace(r.Description),
		Booked:      r.Booked,
	}
}
