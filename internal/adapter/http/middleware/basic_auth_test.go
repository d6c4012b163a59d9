package middleware

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBasicAuth_AllowsValidCredentials(t *testing.T) {
	mw := BasicAuth("LedgerApp", "LedgerKey001", "")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("LedgerApp:LedgerKey001")))

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
}

func TestBasicAuth_RejectsInvalidCredentials(t *testing.T) {
	mw := BasicAuth("LedgerApp", "LedgerKey001", "")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("LedgerApp:WrongKey")))

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestBasicAuth_VerifiesAgainstBcryptHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("LedgerKey001"), bcrypt.MinCost)
	require.NoError(t, err)

	mw := BasicAuth("LedgerApp", "", string(hash))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("LedgerApp:LedgerKey001")))

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	bad := httptest.NewRequest(http.MethodGet, "/", nil)
	bad.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("LedgerApp:WrongKey")))

	rr = httptest.NewRecorder()
	mw(next).ServeHTTP(rr, bad)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestBasicAuth_MissingServerConfig(t *testing.T) {
	mw := BasicAuth("", "", "")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rr := httptest.NewRecorder()
	mw(next).ServeHTTP(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
