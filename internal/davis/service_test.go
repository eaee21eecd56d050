// FilePath: internal/davis/service_test.go
package davis

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrasense/meteohub/internal/config"
	"github.com/terrasense/meteohub/internal/database"
	"github.com/terrasense/meteohub/internal/models"
	"github.com/terrasense/meteohub/internal/repository"
)

type fakeDavisRepo struct {
	existing  map[int64]bool
	createErr error
	snapshots []*models.DavisMessage
}

func newFakeDavisRepo() *fakeDavisRepo {
	return &fakeDavisRepo{existing: make(map[int64]bool)}
}

func (r *fakeDavisRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (r *fakeDavisRepo) ExistsByTS(ctx context.Context, ts int64) (bool, error) {
	return r.existing[ts], nil
}

func (r *fakeDavisRepo) CreateSnapshot(ctx context.Context, msg *models.DavisMessage) (*models.DavisStation, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.existing[msg.VantagePro2.TS] = true
	r.snapshots = append(r.snapshots, msg)
	return &models.DavisStation{ID: "dst_test"}, nil
}

func (r *fakeDavisRepo) GetSnapshot(ctx context.Context, ts int64) (*models.DavisStation, error) {
	return nil, repository.ErrNotFound
}

func (r *fakeDavisRepo) ListSnapshots(ctx context.Context, start, end time.Time, limit int) ([]*models.DavisStation, error) {
	return nil, nil
}

type fakeStationAPI struct {
	payload *StationPayload
	calls   int
}

func (a *fakeStationAPI) Current(ctx context.Context) (*StationPayload, error) {
	a.calls++
	return a.payload, nil
}

func (a *fakeStationAPI) Historic(ctx context.Context, start, end int64) (*StationPayload, error) {
	a.calls++
	return a.payload, nil
}

func newTestService(repo *fakeDavisRepo, api *fakeStationAPI) *Service {
	return NewService(repo, api, config.DavisConfig{
		StationID:   175979,
		StationUUID: "c19d7da3-8e50-4e87-b1bc-fa7d9b9a70d8",
	})
}

func TestIngestLiveStoresSnapshot(t *testing.T) {
	repo := newFakeDavisRepo()
	api := &fakeStationAPI{payload: livePayload(t)}
	svc := newTestService(repo, api)

	result, err := svc.IngestLive(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Inserted)
	assert.Equal(t, 0, result.Skipped)
	require.Len(t, repo.snapshots, 1)
	assert.Equal(t, int64(1700000000), repo.snapshots[0].VantagePro2.TS)
}

func TestIngestLiveSkipsKnownTimestamp(t *testing.T) {
	repo := newFakeDavisRepo()
	repo.existing[1700000000] = true
	api := &fakeStationAPI{payload: livePayload(t)}
	svc := newTestService(repo, api)

	result, err := svc.IngestLive(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, repo.snapshots)
}

func TestIngestLiveSkipsDuplicateRace(t *testing.T) {
	// A concurrent writer can slip in between the existence check and
	// the insert; the unique violation is a skip, not a failure.
	repo := newFakeDavisRepo()
	repo.createErr = repository.ErrDuplicate
	api := &fakeStationAPI{payload: livePayload(t)}
	svc := newTestService(repo, api)

	result, err := svc.IngestLive(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 1, result.Skipped)
}

func TestIngestHistoricRejectsInvertedRange(t *testing.T) {
	repo := newFakeDavisRepo()
	api := &fakeStationAPI{}
	svc := newTestService(repo, api)

	_, err := svc.IngestHistoric(context.Background(), 2000, 1000)
	assert.Error(t, err)
	assert.Zero(t, api.calls)
}

func TestIngestHistoricRejectsRangeOverOneDay(t *testing.T) {
	repo := newFakeDavisRepo()
	api := &fakeStationAPI{}
	svc := newTestService(repo, api)

	_, err := svc.IngestHistoric(context.Background(), 0, 86401)
	assert.Error(t, err)
	assert.Zero(t, api.calls)
}

func TestIngestHistoricStoresAllSamples(t *testing.T) {
	repo := newFakeDavisRepo()
	api := &fakeStationAPI{payload: historicPayload(t,
		[]int64{100, 200, 300},
		[]int64{90, 150, 250},
		[]int64{100, 200, 300})}
	svc := newTestService(repo, api)

	result, err := svc.IngestHistoric(context.Background(), 0, 86400)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 0, result.Skipped)
}

func TestIngestExport(t *testing.T) {
	repo := newFakeDavisRepo()
	svc := newTestService(repo, &fakeStationAPI{})

	body := exportCSV(
		"01/15/2024 10:30,756.5,4.4,1.2,80,9.7,SW,SW,14.5,1.0,312,0.0,0.05,3.9,2.5,3.1,3.0",
		"01/15/2024 10:45,756.7,4.6,1.3,79,8.0,W,WNW,12.9,1.1,320,0.0,0.05,4.1,2.7,3.3,3.2",
	)
	result, err := svc.IngestExport(context.Background(), strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Inserted)
	require.Len(t, repo.snapshots, 2)
	assert.Equal(t, int64(175979), repo.snapshots[0].StationID)
}
