// FilePath: internal/barani/service_test.go
package barani

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrasense/meteohub/internal/database"
	"github.com/terrasense/meteohub/internal/models"
	"github.com/terrasense/meteohub/internal/repository"
	"gopkg.in/guregu/null.v4"
)

type helixKey struct {
	serial string
	ts     time.Time
}

type fakeBaraniRepo struct {
	helix     map[helixKey]*models.BaraniHelixReading
	wind      map[helixKey]*models.BaraniWindReading
	createErr error
}

func newFakeBaraniRepo() *fakeBaraniRepo {
	return &fakeBaraniRepo{
		helix: make(map[helixKey]*models.BaraniHelixReading),
		wind:  make(map[helixKey]*models.BaraniWindReading),
	}
}

func (r *fakeBaraniRepo) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, nil
}

func (r *fakeBaraniRepo) HelixExists(ctx context.Context, serialNumber string, timestamp time.Time) (bool, error) {
	_, ok := r.helix[helixKey{serialNumber, timestamp}]
	return ok, nil
}

func (r *fakeBaraniRepo) CreateHelixReading(ctx context.Context, reading *models.BaraniHelixReading) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.helix[helixKey{reading.SerialNumber, reading.Timestamp}] = reading
	return nil
}

func (r *fakeBaraniRepo) WindExists(ctx context.Context, serialNumber string, timestamp time.Time) (bool, error) {
	_, ok := r.wind[helixKey{serialNumber, timestamp}]
	return ok, nil
}

func (r *fakeBaraniRepo) CreateWindReading(ctx context.Context, reading *models.BaraniWindReading) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.wind[helixKey{reading.SerialNumber, reading.Timestamp}] = reading
	return nil
}

func (r *fakeBaraniRepo) ListHelixBySerial(ctx context.Context, serialNumber string, limit int) ([]*models.BaraniHelixReading, error) {
	var readings []*models.BaraniHelixReading
	for key, reading := range r.helix {
		if key.serial == serialNumber {
			readings = append(readings, reading)
		}
	}
	if len(readings) > limit {
		readings = readings[:limit]
	}
	return readings, nil
}

func (r *fakeBaraniRepo) ListWindBySerial(ctx context.Context, serialNumber string, limit int) ([]*models.BaraniWindReading, error) {
	return nil, nil
}

func helixMessage() *HelixMessage {
	return &HelixMessage{
		Time:         "2024-01-15T10:30:00Z",
		SerialNumber: "4B00123",
		Temperature:  null.FloatFrom(4.2),
		Humidity:     null.FloatFrom(80.0),
	}
}

func TestProcessHelixMessageStoresReading(t *testing.T) {
	repo := newFakeBaraniRepo()
	svc := NewService(repo)

	reading, inserted, err := svc.ProcessHelixMessage(context.Background(), helixMessage())
	require.NoError(t, err)

	assert.True(t, inserted)
	assert.Equal(t, "4B00123", reading.SerialNumber)
	assert.Len(t, repo.helix, 1)
}

func TestProcessHelixMessageSkipsDuplicate(t *testing.T) {
	repo := newFakeBaraniRepo()
	svc := NewService(repo)

	_, inserted, err := svc.ProcessHelixMessage(context.Background(), helixMessage())
	require.NoError(t, err)
	require.True(t, inserted)

	reading, inserted, err := svc.ProcessHelixMessage(context.Background(), helixMessage())
	require.NoError(t, err)
	assert.False(t, inserted)
	assert.NotNil(t, reading)
	assert.Len(t, repo.helix, 1)
}

func TestProcessHelixMessageSkipsDuplicateRace(t *testing.T) {
	repo := newFakeBaraniRepo()
	repo.createErr = repository.ErrDuplicate
	svc := NewService(repo)

	_, inserted, err := svc.ProcessHelixMessage(context.Background(), helixMessage())
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestProcessHelixMessageRequiresSerialNumber(t *testing.T) {
	svc := NewService(newFakeBaraniRepo())

	msg := helixMessage()
	msg.SerialNumber = ""
	_, _, err := svc.ProcessHelixMessage(context.Background(), msg)
	assert.Error(t, err)
}

func TestProcessWindMessageStoresReading(t *testing.T) {
	repo := newFakeBaraniRepo()
	svc := NewService(repo)

	msg := &WindMessage{
		Time:         "2024-01-15T10:30:00Z",
		SerialNumber: "4W00077",
		WindAvg10:    null.FloatFrom(3.4),
	}
	reading, inserted, err := svc.ProcessWindMessage(context.Background(), msg)
	require.NoError(t, err)

	assert.True(t, inserted)
	assert.Equal(t, 3.4, reading.WindAvg10.Float64)
	assert.Len(t, repo.wind, 1)
}

func TestGetSensorBySerial(t *testing.T) {
	repo := newFakeBaraniRepo()
	svc := NewService(repo)

	_, _, err := svc.ProcessHelixMessage(context.Background(), helixMessage())
	require.NoError(t, err)

	readings, err := svc.GetSensorBySerial(context.Background(), "4B00123", 10)
	require.NoError(t, err)
	assert.Len(t, readings, 1)

	_, err = svc.GetSensorBySerial(context.Background(), "unknown", 10)
	assert.Error(t, err)
}
