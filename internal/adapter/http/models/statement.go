package models

import (
	"time"

	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/shopspring/decimal"
)

type TransactionResponse struct {
	Timestamp   time.Time       `json:"timestamp"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Booked      bool            `json:"booked"`
}

type StatementResponse struct {
	StreamID         string                `json:"streamId"`
	Owner            string                `json:"owner"`
	AccountNumber    string                `json:"accountNumber"`
	OpeningBalance   decimal.Decimal       `json:"openingBalance"`
	ClosingBalance   decimal.Decimal       `json:"closingBalance"`
	Reserved         decimal.Decimal       `json:"reserved"`
	Available        decimal.Decimal       `json:"available"`
	PeriodStart      time.Time             `json:"periodStart"`
	PeriodEnd        time.Time             `json:"periodEnd"`
	Transactions     []TransactionResponse `json:"transactions"`
	Closed           bool                  `json:"closed"`
	NextStreamID     string                `json:"nextStreamId,omitempty"`
	PreviousStreamID string                `json:"previousStreamId,omitempty"`
}

func NewStatementResponse(stmt domain.Statement) StatementResponse {
	transactions := make([]TransactionResponse, 0, len(stmt.Transactions))
	for _, tx := range stmt.Transactions {
		transactions = append(transactions, TransactionResponse{
			Timestamp:   tx.Timestamp,
			Amount:      tx.Amount,
			Description: tx.Description,
			Type:        string(tx.Type),
			Booked:      tx.Booked,
		})
	}

	return StatementResponse{
		StreamID:         stmt.StreamID,
		Owner:            stmt.Owner,
		AccountNumber:    stmt.AccountNumber,
		OpeningBalance:   stmt.OpeningBalance,
		ClosingBalance:   stmt.ClosingBalance,
		Reserved:         stmt.Reserved,
		Available:        stmt.Available,
		PeriodStart:      stmt.PeriodStart,
		PeriodEnd:        stmt.PeriodEnd,
		Transactions:     transactions,
		Closed:           stmt.Closed,
		NextStreamID:     stmt.NextStreamID,
		PreviousStreamID: stmt.PreviousStreamID,
	}
}

type HistoryResponse struct {
	Periods []StatementResponse `json:"periods"`
}

func NewHistoryResponse(statements []domain.Statement) HistoryResponse {
	periods := make([]StatementResponse, 0, len(statements))
	for _, stmt := range statements {
		periods = append(periods, NewStatementResponse(stmt))
	}
	return HistoryResponse{Periods: periods}
}
