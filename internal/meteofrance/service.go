// FilePath: internal/meteofrance/service.go
package meteofrance

import (
	"context"

	"github.com/terrasense/meteohub/internal/config"
	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Service pulls and stores Météo-France observations.
type Service struct {
	repo      repository.MeteoFranceRepository
	api       ObservationAPI
	stationID string
}

// IngestResult reports how a pull went.
type IngestResult struct {
	StationID string `json:"station_id"`
	Inserted  int    `json:"inserted"`
	Skipped   int    `json:"skipped"`
}

func NewService(repo repository.MeteoFranceRepository, api ObservationAPI, cfg config.MeteoFranceConfig) *Service {
	return &Service{repo: repo, api: api, stationID: cfg.StationID}
}

// Ingest pulls the latest observations for a station and stores the ones
// not seen before. An empty stationID falls back to the configured one.
func (s *Service) Ingest(ctx context.Context, stationID string) (*IngestResult, error) {
	if stationID == "" {
		stationID = s.stationID
	}
	if stationID == "" {
		return nil, errors.NewValidationError("station id is required", nil)
	}

	observations, err := s.api.Infrahoraire(ctx, stationID)
	if err != nil {
		return nil, err
	}
	nuts.L.Infof("[MeteoFranceService] Received %d observations for station %s", len(observations), stationID)

	result := &IngestResult{StationID: stationID}
	for i := range observations {
		obs, err := observations[i].toModel()
		if err != nil {
			return result, errors.NewValidationError("unparseable observation reference time", err)
		}

		exists, err := s.repo.ObservationExists(ctx, obs.GeoIDInsee, obs.ReferenceTime)
		if err != nil {
			return result, err
		}
		if exists {
			nuts.L.Infof("[MeteoFranceService] Observation already stored for %s at %s",
				obs.GeoIDInsee, obs.ReferenceTime)
			result.Skipped++
			continue
		}

		if err := s.repo.CreateObservation(ctx, obs); err != nil {
			if err == repository.ErrDuplicate {
				result.Skipped++
				continue
			}
			return result, err
		}
		result.Inserted++
	}
	return result, nil
}
