// FilePath: internal/repository/repository.go
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/terrasense/meteohub/internal/database"
	"github.com/terrasense/meteohub/internal/models"
)

var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("resource not found")
	// ErrDuplicate indicates that a resource already exists
	ErrDuplicate = errors.New("resource already exists")
	// ErrInvalidInput indicates that the input data is invalid
	ErrInvalidInput = errors.New("invalid input")
)

// DavisRepository stores normalized WeatherLink station snapshots. A
// snapshot is keyed by its weather record timestamp; callers check
// ExistsByTS before CreateSnapshot so retransmitted messages are skipped
// rather than rejected.
type DavisRepository interface {
	database.Repository
	ExistsByTS(ctx context.Context, ts int64) (bool, error)
	CreateSnapshot(ctx context.Context, msg *models.DavisMessage) (*models.DavisStation, error)
	GetSnapshot(ctx context.Context, ts int64) (*models.DavisStation, error)
	ListSnapshots(ctx context.Context, start, end time.Time, limit int) ([]*models.DavisStation, error)
}

// BaraniRepository stores Barani MeteoHelix and MeteoWind readings keyed
// by (serial_number, timestamp).
type BaraniRepository interface {
	database.Repository
	HelixExists(ctx context.Context, serialNumber string, timestamp time.Time) (bool, error)
	CreateHelixReading(ctx context.Context, reading *models.BaraniHelixReading) error
	WindExists(ctx context.Context, serialNumber string, timestamp time.Time) (bool, error)
	CreateWindReading(ctx context.Context, reading *models.BaraniWindReading) error
	ListHelixBySerial(ctx context.Context, serialNumber string, limit int) ([]*models.BaraniHelixReading, error)
	ListWindBySerial(ctx context.Context, serialNumber string, limit int) ([]*models.BaraniWindReading, error)
}

// CampbellRepository stores Campbell datalogger readings keyed by the
// logger timestamp.
type CampbellRepository interface {
	database.Repository
	InsertBatch(ctx context.Context, readings []*models.CampbellReading) (inserted int, skipped int, err error)
	LatestTimestamp(ctx context.Context) (time.Time, error)
}

// MeteoFranceRepository stores Météo-France observations keyed by
// (geo_id_insee, reference_time).
type MeteoFranceRepository interface {
	database.Repository
	ObservationExists(ctx context.Context, geoID string, referenceTime time.Time) (bool, error)
	CreateObservation(ctx context.Context, obs *models.MeteoFranceObservation) error
}
