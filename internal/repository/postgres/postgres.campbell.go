// FilePath: internal/repository/postgres/postgres.campbell.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/terrasense/meteohub/internal/database"
	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/models"
	nuts "github.com/vaudience/go-nuts"
)

// commitBatchSize bounds how many rows go into one transaction when
// loading an export file, so a bad row late in a large file does not
// throw away the whole import.
const commitBatchSize = 100

type CampbellRepo struct {
	PostgresBaseRepo
}

func NewCampbellRepository(db database.DB) (*CampbellRepo, error) {
	repo := &CampbellRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *CampbellRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS campbell_readings (
			timestamp TIMESTAMPTZ PRIMARY KEY,
			air_temp_avg DOUBLE PRECISION,
			batt_voltage_avg DOUBLE PRECISION,
			bp_mbar_avg DOUBLE PRECISION,
			dew_point_avg DOUBLE PRECISION,
			met_sens_status TEXT,
			ms60_irradiance_avg DOUBLE PRECISION,
			p_temp_avg DOUBLE PRECISION,
			rain_mm_tot DOUBLE PRECISION,
			humidity DOUBLE PRECISION,
			wind_dir DOUBLE PRECISION,
			wind_speed DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL
		)`
	if _, err := r.db.GetDB().Exec(query); err != nil {
		return errors.NewDatabaseError("failed to initialize campbell schema", err)
	}
	return nil
}

// InsertBatch loads readings in transactions of commitBatchSize rows.
// Rows whose timestamp is already present are counted as skipped; any
// other insert failure aborts the current batch and returns, keeping the
// batches committed so far.
func (r *CampbellRepo) InsertBatch(ctx context.Context, readings []*models.CampbellReading) (int, int, error) {
	query := `
		INSERT INTO campbell_readings (
			timestamp, air_temp_avg, batt_voltage_avg, bp_mbar_avg, dew_point_avg,
			met_sens_status, ms60_irradiance_avg, p_temp_avg, rain_mm_tot,
			humidity, wind_dir, wind_speed, created_at
		) VALUES (
			:timestamp, :air_temp_avg, :batt_voltage_avg, :bp_mbar_avg, :dew_point_avg,
			:met_sens_status, :ms60_irradiance_avg, :p_temp_avg, :rain_mm_tot,
			:humidity, :wind_dir, :wind_speed, :created_at
		) ON CONFLICT (timestamp) DO NOTHING`

	inserted, skipped := 0, 0
	now := time.Now().UTC()

	for offset := 0; offset < len(readings); offset += commitBatchSize {
		end := offset + commitBatchSize
		if end > len(readings) {
			end = len(readings)
		}

		tx, err := r.db.GetDB().BeginTxx(ctx, nil)
		if err != nil {
			return inserted, skipped, errors.NewDatabaseError("failed to begin batch transaction", err)
		}

		for _, reading := range readings[offset:end] {
			reading.CreatedAt = now
			result, err := tx.NamedExecContext(ctx, query, reading)
			if err != nil {
				tx.Rollback()
				return inserted, skipped, errors.NewDatabaseError("failed to insert campbell reading", err)
			}
			rows, err := result.RowsAffected()
			if err != nil {
				tx.Rollback()
				return inserted, skipped, errors.NewDatabaseError("failed to get rows affected", err)
			}
			if rows == 0 {
				skipped++
			} else {
				inserted++
			}
		}

		if err := tx.Commit(); err != nil {
			return inserted, skipped, errors.NewDatabaseError("failed to commit batch", err)
		}
		nuts.L.Debugf("[CampbellRepo] Committed batch of %d rows (%d/%d)", end-offset, end, len(readings))
	}
	return inserted, skipped, nil
}

// LatestTimestamp returns the newest stored logger timestamp, or the zero
// time when the table is empty.
func (r *CampbellRepo) LatestTimestamp(ctx context.Context) (time.Time, error) {
	var latest time.Time
	query := `SELECT timestamp FROM campbell_readings ORDER BY timestamp DESC LIMIT 1`
	err := r.db.GetDB().GetContext(ctx, &latest, query)
	if err != nil {
		if err == sql.ErrNoRows {
			return time.Time{}, nil
		}
		return time.Time{}, errors.NewDatabaseError("failed to get latest campbell timestamp", err)
	}
	return latest, nil
}
