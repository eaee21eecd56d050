// FilePath: api/resources/respond.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/terrasense/meteohub/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// apiResponse is the uniform success envelope of the ingestion endpoints.
type apiResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func successResponse(message string, details interface{}) apiResponse {
	return apiResponse{Status: "success", Message: message, Details: details}
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}

// respondServiceError maps a service error onto the wire, keeping the
// structured code when the service already classified it.
func respondServiceError(w http.ResponseWriter, requestID string, err error, fallback string) {
	if apiErr, ok := err.(*errors.APIError); ok {
		respondWithError(w, apiErr.WithRequestID(requestID))
		return
	}
	respondWithError(w, errors.NewInternalError(fallback, err).WithRequestID(requestID))
}
