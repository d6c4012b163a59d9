package models

import (
	"errors"
	"strings"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type TransferRequest struct {
	DestinationStreamID string          `json:"destinationStreamId"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description"`
	Booked              bool            `json:"booked"`
}

func (r TransferRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.DestinationStreamID) == "" {
		errs = append(errs, "destinationStreamId is required")
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "amount must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (r TransferRequest) Command(sourceStreamID string) domain.TransferCommand {
	return domain.TransferCommand{
		SourceID:      sourceStreamID,
		DestinationID: strings.TrimSpace(r.DestinationStreamID),
		Amount:        r.Amount,
		Description:   strings.TrimSpace(r.Description),
		Booked:        r.Booked,
	}
}
