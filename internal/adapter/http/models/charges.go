package models

import (
	"errors"
	"strings"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type ChargeFeeRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	FeeType string          `json:"feeType"`
}

func (r ChargeFeeRequest) Validate() error {
	var errs []string

	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}
	if strings.TrimSpace(r.FeeType) == "" {
		errs = append(errs, "feeType is required")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (r ChargeFeeRequest) Command(streamID string) domain.ChargeFeeCommand {
	return domain.ChargeFeeCommand{
		StreamID: streamID,
		Amount:   r.Amount,
		FeeType:  strings.TrimSpace(r.FeeType),
	}
}

type CreditInterestRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

func (r CreditInterestRequest) Validate() error {
	if r.Rate.LessThanOrEqual(decimal.Zero) {
		return errors.New("rate must be greater than zero")
	}
	return nil
}

func (r CreditInterestRequest) Command(streamID string) domain.CreditInterestCommand {
	return domain.CreditInterestCommand{StreamID: streamID, Rate: r.Rate}
}

type UpdateLimitRequest struct {
	NewLimit decimal.Decimal `json:"newLimit"`
}

func (r UpdateLimitRequest) Validate() error {
	if r.NewLimit.LessThanOrEqual(decimal.Zero) {
		return errors.New("newLimit must be greater than zero")
	}
	return nil
}

func (r UpdateLimitRequest) Command(streamID string) domain.UpdateLimitCommand {
	return domain.UpdateLimitCommand{StreamID: streamID, NewLimit: r.NewLimit}
}
