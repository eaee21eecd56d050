// FilePath: api/resources/api.resource.meteofrance.go
package resources

import (
	"net/http"

	"github.com/terrasense/meteohub/internal/meteofrance"
	"github.com/terrasense/meteohub/internal/monitoring"
	nuts "github.com/vaudience/go-nuts"
)

// MeteoFranceHandlers encapsulates the Météo-France HTTP handlers
type MeteoFranceHandlers struct {
	service *meteofrance.Service
	stats   *monitoring.Service
}

// @Summary Trigger a Météo-France ingestion
// @Description Pull the latest 6-minute observations for a station
// @Tags meteofrance
// @Produce json
// @Param station_id query string false "Station id (defaults to the configured station)"
// @Success 200 {object} apiResponse
// @Failure 502 {object} errors.APIError
// @Router /meteofrance/receive_message [get]
// @Security ApiKeyAuth
func (h *MeteoFranceHandlers) TriggerIngest(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	stationID := r.URL.Query().Get("station_id")

	result, err := h.service.Ingest(r.Context(), stationID)
	if err != nil {
		h.stats.RecordFailure("meteofrance", err)
		respondServiceError(w, requestID, err, "failed to ingest observations")
		return
	}

	h.stats.RecordIngest("meteofrance", result.Inserted, result.Skipped)
	respondWithJSON(w, http.StatusOK, successResponse("observations ingested", result))
}
