package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/api-sage/bank-ledger/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// BasicAuth gates every endpoint behind channel credentials. When
// channelKeyHash is non-empty the presented key is verified against that
// bcrypt hash; otherwise it is compared to channelKey in constant time.
func BasicAuth(channelID, channelKey, channelKeyHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if channelID == "" || (channelKey == "" && channelKeyHash == "") {
				logger.Error("basic auth middleware missing server configuration", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				http.Error(w, "server auth configuration is missing", http.StatusInternalServerError)
				return
			}

			id, key, ok := r.BasicAuth()
			if !ok || !secureEqual(id, channelID) || !keyMatches(key, channelKey, channelKeyHash) {
				logger.Info("basic auth middleware unauthorized request", logger.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"credentials": "invalid_or_missing",
				})
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func keyMatches(presented, channelKey, channelKeyHash string) bool {
	if channelKeyHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(channelKeyHash), []byte(presented)) == nil
	}
	return secureEqual(presented, channelKey)
}

func secureEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
