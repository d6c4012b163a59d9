package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/api-sage/bank-ledger/internal/adapter/eventstore/memory"
	"github.com/api-sage/bank-ledger/internal/adapter/http/controller"
	"github.com/api-sage/bank-ledger/internal/domain"
	"github.com/api-sage/bank-ledger/internal/usecase/services"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLedgerRouter(t *testing.T) *mux.Router {
	t.Helper()
	store := memory.NewStore()
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	svc := services.NewLedgerService(store, func() time.Time { return now })

	_, err := svc.CreateAccount(context.Background(), domain.CreateAccountCommand{
		StreamID:             "acct-1",
		Owner:                "Ada Marsh",
		AccountNumber:        "0001112223",
		InitialBalance:       decimal.NewFromInt(1000),
		DailyWithdrawalLimit: decimal.NewFromInt(500),
	})
	require.NoError(t, err)

	r := mux.NewRouter()
	controller.NewLedgerController(svc).RegisterRoutes(r)
	return r
}

// The close endpoints have no required fields, so a bodyless POST must
// be accepted.
func TestCloseEndpointsAcceptEmptyBody(t *testing.T) {
	for _, path := range []string{"/accounts/acct-1/close", "/accounts/acct-1/close-period"} {
		r := newLedgerRouter(t)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, "%s: %s", path, rec.Body.String())
	}
}

func TestCloseEndpointRejectsMalformedBody(t *testing.T) {
	r := newLedgerRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/accounts/acct-1/close", strings.NewReader("{not json"))
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
