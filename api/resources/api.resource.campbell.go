// FilePath: api/resources/api.resource.campbell.go
package resources

import (
	"net/http"

	"github.com/terrasense/meteohub/internal/campbell"
	"github.com/terrasense/meteohub/internal/monitoring"
	nuts "github.com/vaudience/go-nuts"
)

// CampbellHandlers encapsulates the Campbell logger HTTP handlers
type CampbellHandlers struct {
	service *campbell.Service
	stats   *monitoring.Service
}

// @Summary Trigger a logger scrape
// @Description Download the latest logger file and import its rows
// @Tags campbell
// @Produce json
// @Param hourly query bool false "Fetch the hourly file instead of the daily one"
// @Success 200 {object} apiResponse
// @Failure 502 {object} errors.APIError
// @Router /campbell/scrape [post]
// @Security ApiKeyAuth
func (h *CampbellHandlers) TriggerScrape(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)
	hourly := r.URL.Query().Get("hourly") == "true"

	result, err := h.service.Scrape(r.Context(), hourly)
	if err != nil {
		h.stats.RecordFailure("campbell", err)
		respondServiceError(w, requestID, err, "failed to scrape logger data")
		return
	}

	nuts.L.Infof("[CampbellHandler] Imported %d rows from %s (%d skipped)", result.Inserted, result.File, result.Skipped)
	h.stats.RecordIngest("campbell", result.Inserted, result.Skipped)
	respondWithJSON(w, http.StatusOK, successResponse("logger file imported", result))
}
