package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/bank-ledger/internal/logger"
	"github.com/gorilla/mux"
)

// requestFields returns the base fields for a handler log line. The
// stream id from the route is included when present so every line for
// an account can be correlated.
func requestFields(r *http.Request) logger.Fields {
	fields := logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}
	if id, ok := mux.Vars(r)["id"]; ok {
		fields["stream_id"] = id
	}
	return fields
}

func logRequest(r *http.Request, payload any) {
	fields := requestFields(r)
	fields["payload"] = logger.SanitizePayload(payload)
	logger.Info("http request", fields)
}

func logResponse(r *http.Request, status int, payload any, start time.Time) {
	fields := requestFields(r)
	fields["status"] = status
	fields["durationMs"] = time.Since(start).Milliseconds()
	fields["response"] = logger.SanitizePayload(payload)
	logger.Info("http response", fields)
}

func logError(r *http.Request, err error, extra logger.Fields) {
	fields := requestFields(r)
	for k, v := range extra {
		fields[k] = v
	}
	logger.Error("http handler error", err, fields)
}
