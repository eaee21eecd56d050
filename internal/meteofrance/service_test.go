// FilePath: internal/meteofrance/service_test.go
package meteofrance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrasense/meteohub/internal/config"
	"github.com/terrasense/meteohub/internal/database"
	"github.com/terrasense/meteohub/internal/models"
	"gopkg.in/guregu/null.v4"
)

type obsKey struct {
	insee string
	ts    time.Time
}

type fakeMeteoFranceRepo struct {
	stored map[obsKey]*models.MeteoFranceObservation
}

func newFakeMeteoFranceRepo() *fakeMeteoFranceRepo {
	return &fakeMeteoFranceRepo{stored: make(map[obsKey]*models.MeteoFranceObservation)}
}

func (r *fakeMeteoFranceRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (r *fakeMeteoFranceRepo) ObservationExists(ctx context.Context, geoIDInsee string, referenceTime time.Time) (bool, error) {
	_, ok := r.stored[obsKey{geoIDInsee, referenceTime}]
	return ok, nil
}

func (r *fakeMeteoFranceRepo) CreateObservation(ctx context.Context, obs *models.MeteoFranceObservation) error {
	r.stored[obsKey{obs.GeoIDInsee, obs.ReferenceTime}] = obs
	return nil
}

type fakeObservationAPI struct {
	observations []Observation
	calls        int
	lastStation  string
}

func (a *fakeObservationAPI) Infrahoraire(ctx context.Context, stationID string) ([]Observation, error) {
	a.calls++
	a.lastStation = stationID
	return a.observations, nil
}

func observation(referenceTime string) Observation {
	return Observation{
		GeoIDInsee:    "35281001",
		ReferenceTime: referenceTime,
		InsertTime:    referenceTime,
		ValidityTime:  referenceTime,
		T:             null.FloatFrom(287.45),
		U:             null.FloatFrom(84.0),
		EtatSol:       null.StringFrom("1"),
	}
}

func TestIngestStoresObservations(t *testing.T) {
	repo := newFakeMeteoFranceRepo()
	api := &fakeObservationAPI{observations: []Observation{
		observation("2024-01-15T10:06:00Z"),
		observation("2024-01-15T10:12:00Z"),
	}}
	svc := NewService(repo, api, config.MeteoFranceConfig{StationID: "35281001"})

	result, err := svc.Ingest(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "35281001", result.StationID)
	assert.Equal(t, "35281001", api.lastStation)
	assert.Equal(t, 2, result.Inserted)
	assert.Equal(t, 0, result.Skipped)

	// Temperatures stay in the provider's Kelvin scale.
	key := obsKey{"35281001", time.Date(2024, 1, 15, 10, 6, 0, 0, time.UTC)}
	require.Contains(t, repo.stored, key)
	assert.Equal(t, 287.45, repo.stored[key].T.Float64)
	assert.Equal(t, "1", repo.stored[key].EtatSol.String)
}

func TestIngestSkipsStoredObservations(t *testing.T) {
	repo := newFakeMeteoFranceRepo()
	api := &fakeObservationAPI{observations: []Observation{
		observation("2024-01-15T10:06:00Z"),
	}}
	svc := NewService(repo, api, config.MeteoFranceConfig{StationID: "35281001"})

	_, err := svc.Ingest(context.Background(), "")
	require.NoError(t, err)

	result, err := svc.Ingest(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
}

func TestIngestExplicitStationOverridesConfig(t *testing.T) {
	api := &fakeObservationAPI{}
	svc := NewService(newFakeMeteoFranceRepo(), api, config.MeteoFranceConfig{StationID: "35281001"})

	result, err := svc.Ingest(context.Background(), "75114001")
	require.NoError(t, err)

	assert.Equal(t, "75114001", result.StationID)
	assert.Equal(t, "75114001", api.lastStation)
}

func TestIngestRequiresStation(t *testing.T) {
	api := &fakeObservationAPI{}
	svc := NewService(newFakeMeteoFranceRepo(), api, config.MeteoFranceConfig{})

	_, err := svc.Ingest(context.Background(), "")
	assert.Error(t, err)
	assert.Zero(t, api.calls)
}

func TestIngestRejectsBadReferenceTime(t *testing.T) {
	api := &fakeObservationAPI{observations: []Observation{observation("not-a-time")}}
	svc := NewService(newFakeMeteoFranceRepo(), api, config.MeteoFranceConfig{StationID: "35281001"})

	_, err := svc.Ingest(context.Background(), "")
	assert.Error(t, err)
}
