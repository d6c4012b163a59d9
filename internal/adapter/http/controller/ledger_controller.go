package controller

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/eventstore"
	"github.com/gorilla/mux"
)

type LedgerService interface {
	CreateAccount(ctx context.Context, cmd domain.CreateAccountCommand) (*domain.Account, error)
	Deposit(ctx context.Context, cmd domain.DepositCommand) (*domain.Account, error)
	Withdraw(ctx context.Context, cmd domain.WithdrawCommand) (*domain.Account, error)
	Transfer(ctx context.Context, cmd domain.TransferCommand) (*domain.Account, error)
	CreditInterest(ctx context.Context, cmd domain.CreditInterestCommand) (*domain.Account, error)
	ChargeFee(ctx context.Context, cmd domain.ChargeFeeCommand) (*domain.Account, error)
	UpdateLimit(ctx context.Context, cmd domain.UpdateLimitCommand) (*domain.Account, error)
	CloseAccount(ctx context.Context, cmd domain.CloseAccountCommand) (*domain.Account, error)
	ClosePeriod(ctx context.Context, cmd domain.ClosePeriodCommand) (*domain.Account, error)
}

// LedgerController exposes one endpoint per ledger command.
type LedgerController struct {
	service LedgerService
}

func NewLedgerController(service LedgerService) *LedgerController {
	return &LedgerController{service: service}
}

func (c *LedgerController) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/accounts", c.createAccount).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/deposits", c.deposit).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/withdrawals", c.withdraw).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/transfers", c.transfer).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/interest", c.creditInterest).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/fees", c.chargeFee).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/limit", c.updateLimit).Methods(http.MethodPut)
	r.HandleFunc("/accounts/{id}/close", c.closeAccount).Methods(http.MethodPost)
	r.HandleFunc("/accounts/{id}/close-period", c.closePeriod).Methods(http.MethodPost)
}

func (c *LedgerController) createAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	acct, err := c.service.CreateAccount(r.Context(), req.Command())
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	response := commons.SuccessResponse("account created", models.NewAccountResponse(acct))
	writeJSON(w, http.StatusCreated, response)
	logResponse(r, http.StatusCreated, response, start)
}

func (c *LedgerController) deposit(w http.ResponseWriter, r *http.Request) {
	c.moneyCommand(w, r, "deposit completed", func(ctx context.Context, streamID string, req models.MoneyRequest) (*domain.Account, error) {
		return c.service.Deposit(ctx, req.DepositCommand(streamID))
	})
}

func (c *LedgerController) withdraw(w http.ResponseWriter, r *http.Request) {
	c.moneyCommand(w, r, "withdrawal completed", func(ctx context.Context, streamID string, req models.MoneyRequest) (*domain.Account, error) {
		return c.service.Withdraw(ctx, req.WithdrawCommand(streamID))
	})
}

func (c *LedgerController) moneyCommand(
	w http.ResponseWriter,
	r *http.Request,
	message string,
	invoke func(ctx context.Context, streamID string, req models.MoneyRequest) (*domain.Account, error),
) {
	start := time.Now()
	streamID := mux.Vars(r)["id"]

	var req models.MoneyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	acct, err := invoke(r.Context(), streamID, req)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	response := commons.SuccessResponse(message, models.NewAccountResponse(acct))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *LedgerController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	streamID := mux.Vars(r)["id"]

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	acct, err := c.service.Transfer(r.Context(), req.Command(streamID))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	response := commons.SuccessResponse("transfer completed", models.NewAccountResponse(acct))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *LedgerController) creditInterest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	streamID := mux.Vars(r)["id"]

	var req models.CreditInterestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	acct, err := c.service.CreditInterest(r.Context(), req.Command(streamID))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	response := commons.SuccessResponse("interest credited", models.NewAccountResponse(acct))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *LedgerController) chargeFee(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	streamID := mux.Vars(r)["id"]

	var req models.ChargeFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	acct, err := c.service.ChargeFee(r.Context(), req.Command(streamID))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	response := commons.SuccessResponse("fee charged", models.NewAccountResponse(acct))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *LedgerController) updateLimit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	streamID := mux.Vars(r)["id"]

	var req models.UpdateLimitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("validation failed", err.Error()))
		return
	}

	acct, err := c.service.UpdateLimit(r.Context(), req.Command(streamID))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	response := commons.SuccessResponse("limit updated", models.NewAccountResponse(acct))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *LedgerController) closeAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	streamID := mux.Vars(r)["id"]

	// Every field is optional, so a bodyless close is valid.
	var req models.CloseAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	acct, err := c.service.CloseAccount(r.Context(), req.Command(streamID))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	response := commons.SuccessResponse("account closed", models.NewAccountResponse(acct))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *LedgerController) closePeriod(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	streamID := mux.Vars(r)["id"]

	var req models.ClosePeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, commons.ErrorResponse[models.AccountResponse]("invalid request body", err.Error()))
		return
	}
	logRequest(r, req)

	acct, err := c.service.ClosePeriod(r.Context(), req.Command(streamID))
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	response := commons.SuccessResponse("period closed", models.NewAccountResponse(acct))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *LedgerController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logError(r, err, nil)
		writeJSON(w, status, commons.ErrorResponse[models.AccountResponse]("failed to process request", "unable to process request right now"))
		return
	}
	writeJSON(w, status, commons.ErrorResponse[models.AccountResponse]("request rejected", err.Error()))
}

// statusForError maps the domain error taxonomy onto transport codes.
// Version conflicts come back as 409 so callers know the command is safe
// to re-issue after a fresh read.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound), errors.Is(err, domain.ErrDestinationNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrAccountAlreadyExists), errors.Is(err, eventstore.ErrVersionConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrAccountClosed),
		errors.Is(err, domain.ErrInsufficientFunds),
		errors.Is(err, domain.ErrWithdrawalLimitExceeded),
		errors.Is(err, domain.ErrSameAccount):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
