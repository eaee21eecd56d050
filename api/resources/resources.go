// FilePath: api/resources/resources.go
package resources

import (
	"net/http"

	"github.com/terrasense/meteohub/internal/barani"
	"github.com/terrasense/meteohub/internal/campbell"
	"github.com/terrasense/meteohub/internal/davis"
	"github.com/terrasense/meteohub/internal/meteofrance"
	"github.com/terrasense/meteohub/internal/monitoring"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Barani      *BaraniHandlers
	Davis       *DavisHandlers
	Campbell    *CampbellHandlers
	MeteoFrance *MeteoFranceHandlers
	HealthCheck func(w http.ResponseWriter, r *http.Request)
	Stats       func(w http.ResponseWriter, r *http.Request)
}

// NewResources creates a new Resources instance
func NewResources(
	baraniSvc *barani.Service,
	davisSvc *davis.Service,
	campbellSvc *campbell.Service,
	meteofranceSvc *meteofrance.Service,
	stats *monitoring.Service,
) *Resources {
	return &Resources{
		Barani:      &BaraniHandlers{service: baraniSvc, stats: stats},
		Davis:       &DavisHandlers{service: davisSvc, stats: stats},
		Campbell:    &CampbellHandlers{service: campbellSvc, stats: stats},
		MeteoFrance: &MeteoFranceHandlers{service: meteofranceSvc, stats: stats},
	}
}

// SetHealthCheck sets the health check handler
func (r *Resources) SetHealthCheck(h func(w http.ResponseWriter, r *http.Request)) {
	r.HealthCheck = h
}

// SetStats sets the ingestion stats handler
func (r *Resources) SetStats(h func(w http.ResponseWriter, r *http.Request)) {
	r.Stats = h
}
