// FilePath: internal/repository/postgres/postgres.barani.go
package postgres

import (
	"context"
	"time"

	"github.com/terrasense/meteohub/internal/database"
	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/models"
	"github.com/terrasense/meteohub/internal/repository"
)

type BaraniRepo struct {
	PostgresBaseRepo
}

func NewBaraniRepository(db database.DB) (*BaraniRepo, error) {
	repo := &BaraniRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *BaraniRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS barani_helix_readings (
			serial_number TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			battery DOUBLE PRECISION,
			temperature DOUBLE PRECISION,
			temperature_wet_bulb DOUBLE PRECISION,
			dew_point DOUBLE PRECISION,
			humidity DOUBLE PRECISION,
			pressure DOUBLE PRECISION,
			irradiation DOUBLE PRECISION,
			rain DOUBLE PRECISION,
			rainfall_rate_max DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (serial_number, timestamp)
		)`,
		`CREATE TABLE IF NOT EXISTS barani_wind_readings (
			serial_number TEXT NOT NULL,
			timestamp TIMESTAMPTZ NOT NULL,
			battery DOUBLE PRECISION,
			wind_avg10 DOUBLE PRECISION,
			wind_max10 DOUBLE PRECISION,
			wind_min10 DOUBLE PRECISION,
			wind_stdev10 DOUBLE PRECISION,
			wdir_avg10 DOUBLE PRECISION,
			wdir_max10 DOUBLE PRECISION,
			wdir_min10 DOUBLE PRECISION,
			wdir_gust10 DOUBLE PRECISION,
			wdir_stdev10 DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (serial_number, timestamp)
		)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize barani schema", err)
		}
	}
	return nil
}

func (r *BaraniRepo) HelixExists(ctx context.Context, serialNumber string, timestamp time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM barani_helix_readings WHERE serial_number = $1 AND timestamp = $2)`
	if err := r.db.GetDB().GetContext(ctx, &exists, query, serialNumber, timestamp); err != nil {
		return false, errors.NewDatabaseError("failed to check for existing helix reading", err)
	}
	return exists, nil
}

func (r *BaraniRepo) CreateHelixReading(ctx context.Context, reading *models.BaraniHelixReading) error {
	reading.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO barani_helix_readings (
			serial_number, timestamp, battery, temperature, temperature_wet_bulb,
			dew_point, humidity, pressure, irradiation, rain, rainfall_rate_max,
			created_at
		) VALUES (
			:serial_number, :timestamp, :battery, :temperature, :temperature_wet_bulb,
			:dew_point, :humidity, :pressure, :irradiation, :rain, :rainfall_rate_max,
			:created_at
		)`
	if _, err := r.db.GetDB().NamedExecContext(ctx, query, reading); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return errors.NewDatabaseError("failed to insert helix reading", err)
	}
	return nil
}

func (r *BaraniRepo) WindExists(ctx context.Context, serialNumber string, timestamp time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM barani_wind_readings WHERE serial_number = $1 AND timestamp = $2)`
	if err := r.db.GetDB().GetContext(ctx, &exists, query, serialNumber, timestamp); err != nil {
		return false, errors.NewDatabaseError("failed to check for existing wind reading", err)
	}
	return exists, nil
}

func (r *BaraniRepo) CreateWindReading(ctx context.Context, reading *models.BaraniWindReading) error {
	reading.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO barani_wind_readings (
			serial_number, timestamp, battery, wind_avg10, wind_max10, wind_min10,
			wind_stdev10, wdir_avg10, wdir_max10, wdir_min10, wdir_gust10,
			wdir_stdev10, created_at
		) VALUES (
			:serial_number, :timestamp, :battery, :wind_avg10, :wind_max10, :wind_min10,
			:wind_stdev10, :wdir_avg10, :wdir_max10, :wdir_min10, :wdir_gust10,
			:wdir_stdev10, :created_at
		)`
	if _, err := r.db.GetDB().NamedExecContext(ctx, query, reading); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return errors.NewDatabaseError("failed to insert wind reading", err)
	}
	return nil
}

func (r *BaraniRepo) ListHelixBySerial(ctx context.Context, serialNumber string, limit int) ([]*models.BaraniHelixReading, error) {
	readings := []*models.BaraniHelixReading{}
	query := `
		SELECT * FROM barani_helix_readings
		WHERE serial_number = $1
		ORDER BY timestamp DESC
		LIMIT $2`
	if err := r.db.GetDB().SelectContext(ctx, &readings, query, serialNumber, limit); err != nil {
		return nil, errors.NewDatabaseError("failed to list helix readings", err)
	}
	return readings, nil
}

func (r *BaraniRepo) ListWindBySerial(ctx context.Context, serialNumber string, limit int) ([]*models.BaraniWindReading, error) {
	readings := []*models.BaraniWindReading{}
	query := `
		SELECT * FROM barani_wind_readings
		WHERE serial_number = $1
		ORDER BY timestamp DESC
		LIMIT $2`
	if err := r.db.GetDB().SelectContext(ctx, &readings, query, serialNumber, limit); err != nil {
		return nil, errors.NewDatabaseError("failed to list wind readings", err)
	}
	return readings, nil
}
