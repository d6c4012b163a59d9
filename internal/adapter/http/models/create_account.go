package models

import (
	"errors"
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateAccountRequest struct {
	Owner                string          `json:"owner"`
	AccountNumber        string          `json:"accountNumber"`
	InitialBalance       decimal.Decimal `json:"initialBalance"`
	DailyWithdrawalLimit decimal.Decimal `json:"dailyWithdrawalLimit"`
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	if strings.TrimSpace(r.Owner) == "" {
		errs = append(errs, "owner is required")
	}
	if strings.TrimSpace(r.AccountNumber) == "" {
		errs = append(errs, "accountNumber is required")
	}
	if r.InitialBalance.IsNegative() {
		errs = append(errs, "initialBalance cannot be negative")
	}
	if r.DailyWithdrawalLimit.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, "dailyWithdrawalLimit must be greater than zero")
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func (r CreateAccountRequest) Command() domain.CreateAccountCommand {
	return domain.CreateAccountCommand{
		Owner:                strings.TrimSpace(r.Owner),
		AccountNumber:        strings.TrimSpace(r.AccountNumber),
		InitialBalance:       r.InitialBalance,
		DailyWithdrawalLimit: r.DailyWithdrawalLimit,
	}
}

type AccountResponse struct {
	StreamID             string          `json:"streamId"`
	Owner                string          `json:"owner"`
	AccountNumber        string          `json:"accountNumber"`
	Balance              decimal.Decimal `json:"balance"`
	Reserved             decimal.Decimal `json:"reserved"`
	Available            decimal.Decimal `json:"available"`
	DailyWithdrawalLimit decimal.Decimal `json:"dailyWithdrawalLimit"`
	Closed               bool            `json:"closed"`
	PeriodClosed         bool            `json:"periodClosed"`
	PeriodStart          time.Time       `json:"periodStart"`
	PeriodEnd            time.Time       `json:"periodEnd"`
	PreviousStreamID     string          `json:"previousStreamId,omitempty"`
	NextStreamID         string          `json:"nextStreamId,omitempty"`
}

func NewAccountResponse(acct *domain.Account) AccountResponse {
	return AccountResponse{
		StreamID:             acct.StreamID,
		Owner:                acct.Owner,
		AccountNumber:        acct.AccountNumber,
		Balance:              acct.Balance,
		Reserved:             acct.Reserved,
		Available:            acct.Available(),
		DailyWithdrawalLimit: acct.DailyWithdrawalLimit,
		Closed:               acct.Closed,
		PeriodClosed:         acct.PeriodClosed,
		PeriodStart:          acct.PeriodStart,
		PeriodEnd:            acct.PeriodEnd,
		PreviousStreamID:     acct.PreviousStreamID,
		NextStreamID:         acct.NextStreamID,
	}
}
