// FilePath: api/middleware/api.middleware.auth.go
package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"github.com/terrasense/meteohub/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// headerAPIKey is the header stations and operators authenticate with.
const headerAPIKey = "X-Api-Key"

type APIKeyConfig struct {
	Key string
}

// APIKeyMiddleware guards the ingestion endpoints with a shared key.
type APIKeyMiddleware struct {
	config APIKeyConfig
}

func NewAPIKeyMiddleware(config APIKeyConfig) *APIKeyMiddleware {
	return &APIKeyMiddleware{config: config}
}

// Authenticate rejects requests without a valid key.
func (m *APIKeyMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(headerAPIKey)
		if key == "" {
			handleError(w, errors.NewAuthError("no api key provided", nil))
			return
		}
		if subtle.ConstantTimeCompare([]byte(key), []byte(m.config.Key)) != 1 {
			handleError(w, errors.NewAuthError("unauthorized access", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func handleError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[Auth] %s", err.Error())
}
