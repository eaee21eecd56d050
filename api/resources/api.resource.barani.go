// FilePath: api/resources/api.resource.barani.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/schema"
	"github.com/terrasense/meteohub/internal/barani"
	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/monitoring"
	nuts "github.com/vaudience/go-nuts"
)

var queryDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

// BaraniHandlers encapsulates the Barani station HTTP handlers
type BaraniHandlers struct {
	service *barani.Service
	stats   *monitoring.Service
}

// @Summary Receive a Helix message
// @Description Store a single MeteoHelix all-in-one reading
// @Tags barani
// @Accept json
// @Produce json
// @Param message body barani.HelixMessage true "Helix payload"
// @Success 201 {object} apiResponse
// @Failure 400 {object} errors.APIError
// @Router /messages/helix [post]
// @Security ApiKeyAuth
func (h *BaraniHandlers) PostHelixMessage(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var msg barani.HelixMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	reading, inserted, err := h.service.ProcessHelixMessage(r.Context(), &msg)
	if err != nil {
		h.stats.RecordFailure("barani_helix", err)
		respondServiceError(w, requestID, err, "failed to store helix message")
		return
	}

	if inserted {
		h.stats.RecordIngest("barani_helix", 1, 0)
		respondWithJSON(w, http.StatusCreated, successResponse("message stored", reading))
		return
	}
	h.stats.RecordIngest("barani_helix", 0, 1)
	respondWithJSON(w, http.StatusOK, successResponse("message already stored", reading))
}

// @Summary Receive a wind message
// @Description Store a single MeteoWind reading
// @Tags barani
// @Accept json
// @Produce json
// @Param message body barani.WindMessage true "Wind payload"
// @Success 201 {object} apiResponse
// @Failure 400 {object} errors.APIError
// @Router /messages/wind [post]
// @Security ApiKeyAuth
func (h *BaraniHandlers) PostWindMessage(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var msg barani.WindMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	reading, inserted, err := h.service.ProcessWindMessage(r.Context(), &msg)
	if err != nil {
		h.stats.RecordFailure("barani_wind", err)
		respondServiceError(w, requestID, err, "failed to store wind message")
		return
	}

	if inserted {
		h.stats.RecordIngest("barani_wind", 1, 0)
		respondWithJSON(w, http.StatusCreated, successResponse("message stored", reading))
		return
	}
	h.stats.RecordIngest("barani_wind", 0, 1)
	respondWithJSON(w, http.StatusOK, successResponse("message already stored", reading))
}

type sensorQuery struct {
	Limit int `schema:"limit"`
}

// @Summary List readings for a sensor
// @Description Return the most recent Helix readings for a serial number
// @Tags barani
// @Produce json
// @Param serial_number path string true "Sensor serial number"
// @Param limit query int false "Maximum number of readings (default 100)"
// @Success 200 {array} models.BaraniHelixReading
// @Failure 404 {object} errors.APIError
// @Router /messages/sensors/{serial_number} [get]
// @Security ApiKeyAuth
func (h *BaraniHandlers) GetSensorBySerial(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serialNumber := vars["serial_number"]
	requestID := nuts.NID("req", 12)

	var q sensorQuery
	if err := queryDecoder.Decode(&q, r.URL.Query()); err != nil {
		respondWithError(w, errors.NewValidationError("invalid query parameters", err).WithRequestID(requestID))
		return
	}
	if q.Limit <= 0 {
		q.Limit = 100
	}

	readings, err := h.service.GetSensorBySerial(r.Context(), serialNumber, q.Limit)
	if err != nil {
		respondServiceError(w, requestID, err, "failed to get sensor readings")
		return
	}

	respondWithJSON(w, http.StatusOK, readings)
}
