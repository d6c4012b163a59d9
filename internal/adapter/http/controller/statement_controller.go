package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/http/models"
	"github.com/api-sage/bank-ledger/internal/commons"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/gorilla/mux"
)

type StatementService interface {
	GetStatement(ctx context.Context, streamID string) (domain.Statement, error)
	GetAccountHistory(ctx context.Context, startStreamID string) ([]domain.Statement, error)
}

type StatementController struct {
	service StatementService
}

func NewStatementController(service StatementService) *StatementController {
	return &StatementController{service: service}
}

func (c *StatementController) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/accounts/{id}/statement", c.getStatement).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/history", c.getHistory).Methods(http.MethodGet)
}

func (c *StatementController) getStatement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	streamID := mux.Vars(r)["id"]
	logRequest(r, nil)

	stmt, err := c.service.GetStatement(r.Context(), streamID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	response := commons.SuccessResponse("statement retrieved", models.NewStatementResponse(stmt))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *StatementController) getHistory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	streamID := mux.Vars(r)["id"]
	logRequest(r, nil)

	statements, err := c.service.GetAccountHistory(r.Context(), streamID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	response := commons.SuccessResponse("history retrieved", models.NewHistoryResponse(statements))
	writeJSON(w, http.StatusOK, response)
	logResponse(r, http.StatusOK, response, start)
}

func (c *StatementController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		logError(r, err, nil)
		writeJSON(w, status, commons.ErrorResponse[models.StatementResponse]("failed to process request", "unable to process request right now"))
		return
	}
	writeJSON(w, status, commons.ErrorResponse[models.StatementResponse]("request rejected", err.Error()))
}
