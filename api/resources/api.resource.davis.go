// FilePath: api/resources/api.resource.davis.go
package resources

import (
	"net/http"

	"github.com/terrasense/meteohub/internal/davis"
	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/monitoring"
	nuts "github.com/vaudience/go-nuts"
)

// Uploaded exports arrive as multipart files, a day of records is well
// below this.
const maxUploadBytes = 32 << 20

// DavisHandlers encapsulates the Davis station HTTP handlers
type DavisHandlers struct {
	service *davis.Service
	stats   *monitoring.Service
}

// @Summary Trigger a live ingestion
// @Description Pull the current WeatherLink snapshot and store it
// @Tags davis
// @Produce json
// @Success 200 {object} apiResponse
// @Failure 502 {object} errors.APIError
// @Router /davis/receive_message [post]
// @Security ApiKeyAuth
func (h *DavisHandlers) TriggerLive(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	result, err := h.service.IngestLive(r.Context())
	if err != nil {
		h.stats.RecordFailure("davis", err)
		respondServiceError(w, requestID, err, "failed to ingest live message")
		return
	}

	h.stats.RecordIngest("davis", result.Inserted, result.Skipped)
	respondWithJSON(w, http.StatusOK, successResponse("live message ingested", result))
}

type historicQuery struct {
	Start int64 `schema:"start"`
	End   int64 `schema:"end"`
}

// @Summary Trigger a historic ingestion
// @Description Pull archived WeatherLink samples for a unix time range
// @Tags davis
// @Produce json
// @Param start query int true "Range start (unix seconds)"
// @Param end query int true "Range end (unix seconds), at most 24h after start"
// @Success 200 {object} apiResponse
// @Failure 400 {object} errors.APIError
// @Router /davis/historic [get]
// @Security ApiKeyAuth
func (h *DavisHandlers) TriggerHistoric(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var q historicQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}
	if q.Start == 0 || q.End == 0 {
		respondWithError(w, errors.NewValidationError("start and end are required", nil).WithRequestID(requestID))
		return
	}

	result, err := h.service.IngestHistoric(r.Context(), q.Start, q.End)
	if err != nil {
		h.stats.RecordFailure("davis", err)
		respondServiceError(w, requestID, err, "failed to ingest historic range")
		return
	}

	h.stats.RecordIngest("davis", result.Inserted, result.Skipped)
	respondWithJSON(w, http.StatusOK, successResponse("historic range ingested", result))
}

// @Summary Upload a WeatherLink export
// @Description Parse a desktop CSV export and store its rows
// @Tags davis
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Export file"
// @Success 200 {object} apiResponse
// @Failure 400 {object} errors.APIError
// @Router /davis/upload [post]
// @Security ApiKeyAuth
func (h *DavisHandlers) UploadExport(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithError(w, errors.NewValidationError("invalid multipart form", err).WithRequestID(requestID))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		respondWithError(w, errors.NewValidationError("missing upload file", err).WithRequestID(requestID))
		return
	}
	defer file.Close()
	nuts.L.Infof("[DavisHandler] Processing export upload %s (%d bytes)", header.Filename, header.Size)

	result, err := h.service.IngestExport(r.Context(), file)
	if err != nil {
		h.stats.RecordFailure("davis", err)
		respondServiceError(w, requestID, err, "failed to ingest export file")
		return
	}

	h.stats.RecordIngest("davis", result.Inserted, result.Skipped)
	respondWithJSON(w, http.StatusOK, successResponse("export ingested", result))
}
