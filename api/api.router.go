// FilePath: api/api.router.go
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/terrasense/meteohub/api/middleware"
	"github.com/terrasense/meteohub/api/resources"
)

type Router struct {
	router    *mux.Router
	auth      *middleware.APIKeyMiddleware
	resources *resources.Resources
}

func NewRouter(res *resources.Resources, authConfig middleware.APIKeyConfig) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		auth:      middleware.NewAPIKeyMiddleware(authConfig),
		resources: res,
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	r.router.Use(middleware.LogRequestBody)

	// API version prefix
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/health", r.resources.HealthCheck).Methods(http.MethodGet)

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(r.auth.Authenticate)

	protected.HandleFunc("/stats", r.resources.Stats).Methods(http.MethodGet)

	// Barani LoRa uplinks
	messages := protected.PathPrefix("/messages").Subrouter()
	messages.HandleFunc("/helix", r.resources.Barani.PostHelixMessage).Methods(http.MethodPost)
	messages.HandleFunc("/wind", r.resources.Barani.PostWindMessage).Methods(http.MethodPost)
	messages.HandleFunc("/sensors/{serial_number}", r.resources.Barani.GetSensorBySerial).Methods(http.MethodGet)

	// Davis WeatherLink
	dvs := protected.PathPrefix("/davis").Subrouter()
	dvs.HandleFunc("/receive_message", r.resources.Davis.TriggerLive).Methods(http.MethodPost)
	dvs.HandleFunc("/historic", r.resources.Davis.TriggerHistoric).Methods(http.MethodGet)
	dvs.HandleFunc("/upload", r.resources.Davis.UploadExport).Methods(http.MethodPost)

	// Campbell logger
	protected.HandleFunc("/campbell/scrape", r.resources.Campbell.TriggerScrape).Methods(http.MethodPost)

	// Météo-France observations
	protected.HandleFunc("/meteofrance/receive_message", r.resources.MeteoFrance.TriggerIngest).Methods(http.MethodGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
