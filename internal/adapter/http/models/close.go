package models

import (
	"strings"
	"time"

	"github.com/api-sage/bank-ledger/internal/domain"
)

type CloseAccountRequest struct {
	Reason string `json:"reason"`
}

func (r CloseAccountRequest) Command(streamID string) domain.CloseAccountCommand {
	return domain.CloseAccountCommand{
		StreamID: streamID,
		Reason:   strings.TrimSpace(r.Reason),
	}
}

type ClosePeriodRequest struct {
	// ClosingDate is optional; the close defaults to the server's now.
	ClosingDate time.Time `json:"closingDate"`
}

func (r ClosePeriodRequest) Command(streamID string) domain.ClosePeriodCommand {
	return domain.ClosePeriodCommand{
		StreamID:    streamID,
		ClosingDate: r.ClosingDate,
	}
}
