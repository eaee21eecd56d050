// FilePath: internal/repository/postgres/postgres.meteofrance.go
package postgres

import (
	"context"
	"time"

	"github.com/terrasense/meteohub/internal/database"
	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/models"
	"github.com/terrasense/meteohub/internal/repository"
)

type MeteoFranceRepo struct {
	PostgresBaseRepo
}

func NewMeteoFranceRepository(db database.DB) (*MeteoFranceRepo, error) {
	repo := &MeteoFranceRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *MeteoFranceRepo) initializeSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS meteofrance_observations (
			geo_id_insee TEXT NOT NULL,
			reference_time TIMESTAMPTZ NOT NULL,
			insert_time TIMESTAMPTZ,
			validity_time TIMESTAMPTZ,
			lat DOUBLE PRECISION,
			lon DOUBLE PRECISION,
			t DOUBLE PRECISION,
			td DOUBLE PRECISION,
			u DOUBLE PRECISION,
			dd DOUBLE PRECISION,
			ff DOUBLE PRECISION,
			dxi10 DOUBLE PRECISION,
			fxi10 DOUBLE PRECISION,
			rr_per DOUBLE PRECISION,
			t_10 DOUBLE PRECISION,
			t_20 DOUBLE PRECISION,
			t_50 DOUBLE PRECISION,
			t_100 DOUBLE PRECISION,
			vv DOUBLE PRECISION,
			etat_sol TEXT,
			sss DOUBLE PRECISION,
			insolh DOUBLE PRECISION,
			ray_glo01 DOUBLE PRECISION,
			pres DOUBLE PRECISION,
			pmer DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL,
			PRIMARY KEY (geo_id_insee, reference_time)
		)`
	if _, err := r.db.GetDB().Exec(query); err != nil {
		return errors.NewDatabaseError("failed to initialize meteofrance schema", err)
	}
	return nil
}

func (r *MeteoFranceRepo) ObservationExists(ctx context.Context, geoID string, referenceTime time.Time) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM meteofrance_observations WHERE geo_id_insee = $1 AND reference_time = $2)`
	if err := r.db.GetDB().GetContext(ctx, &exists, query, geoID, referenceTime); err != nil {
		return false, errors.NewDatabaseError("failed to check for existing observation", err)
	}
	return exists, nil
}

func (r *MeteoFranceRepo) CreateObservation(ctx context.Context, obs *models.MeteoFranceObservation) error {
	obs.CreatedAt = time.Now().UTC()
	query := `
		INSERT INTO meteofrance_observations (
			geo_id_insee, reference_time, insert_time, validity_time, lat, lon,
			t, td, u, dd, ff, dxi10, fxi10, rr_per, t_10, t_20, t_50, t_100,
			vv, etat_sol, sss, insolh, ray_glo01, pres, pmer, created_at
		) VALUES (
			:geo_id_insee, :reference_time, :insert_time, :validity_time, :lat, :lon,
			:t, :td, :u, :dd, :ff, :dxi10, :fxi10, :rr_per, :t_10, :t_20, :t_50, :t_100,
			:vv, :etat_sol, :sss, :insolh, :ray_glo01, :pres, :pmer, :created_at
		)`
	if _, err := r.db.GetDB().NamedExecContext(ctx, query, obs); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return errors.NewDatabaseError("failed to insert observation", err)
	}
	return nil
}
