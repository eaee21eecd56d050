// FilePath: internal/repository/postgres/postgres.davis.go
package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/terrasense/meteohub/internal/database"
	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/models"
	"github.com/terrasense/meteohub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
	"gopkg.in/guregu/null.v4"
)

type DavisRepo struct {
	PostgresBaseRepo
}

func NewDavisRepository(db database.DB) (*DavisRepo, error) {
	repo := &DavisRepo{PostgresBaseRepo: PostgresBaseRepo{db: db}}
	if err := repo.initializeSchema(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *DavisRepo) initializeSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS davis_vantagepro2 (
			id TEXT PRIMARY KEY,
			sensor_data_structure_id TEXT NOT NULL,
			lsid BIGINT NOT NULL,
			sensor_type INT NOT NULL,
			data_structure_type INT NOT NULL,
			ts BIGINT NOT NULL UNIQUE,
			date TIMESTAMPTZ NOT NULL,
			tz_offset INT NOT NULL,
			bar DOUBLE PRECISION,
			bar_absolute DOUBLE PRECISION,
			bar_trend DOUBLE PRECISION,
			dew_point DOUBLE PRECISION,
			et_day DOUBLE PRECISION,
			forecast_rule BIGINT,
			forecast_desc TEXT,
			heat_index DOUBLE PRECISION,
			hum_out DOUBLE PRECISION,
			rain_15_min_clicks BIGINT,
			rain_15_min_in DOUBLE PRECISION,
			rain_15_min_mm DOUBLE PRECISION,
			rain_60_min_clicks BIGINT,
			rain_60_min_in DOUBLE PRECISION,
			rain_60_min_mm DOUBLE PRECISION,
			rain_24_hr_clicks BIGINT,
			rain_24_hr_in DOUBLE PRECISION,
			rain_24_hr_mm DOUBLE PRECISION,
			rain_day_clicks BIGINT,
			rain_day_in DOUBLE PRECISION,
			rain_day_mm DOUBLE PRECISION,
			rain_rate_clicks BIGINT,
			rain_rate_in DOUBLE PRECISION,
			rain_rate_mm DOUBLE PRECISION,
			rain_storm_clicks BIGINT,
			rain_storm_in DOUBLE PRECISION,
			rain_storm_mm DOUBLE PRECISION,
			rain_storm_start_date BIGINT,
			solar_rad DOUBLE PRECISION,
			temp_out DOUBLE PRECISION,
			thsw_index DOUBLE PRECISION,
			uv DOUBLE PRECISION,
			wind_chill DOUBLE PRECISION,
			wind_dir BIGINT,
			wind_dir_of_gust_10_min BIGINT,
			wind_gust_10_min DOUBLE PRECISION,
			wind_speed DOUBLE PRECISION,
			wind_speed_2_min DOUBLE PRECISION,
			wind_speed_10_min DOUBLE PRECISION,
			wet_bulb DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS davis_gateway_health (
			id TEXT PRIMARY KEY,
			sensor_data_structure_id TEXT NOT NULL,
			lsid BIGINT NOT NULL,
			sensor_type INT NOT NULL,
			data_structure_type INT NOT NULL,
			ts BIGINT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			tz_offset INT NOT NULL,
			afc_setting BIGINT,
			beacon_interval BIGINT,
			bluetooth_firmware_version BIGINT,
			bootloader_version BIGINT,
			cc1310_firmware_version BIGINT,
			cell_channel BIGINT,
			cell_id BIGINT,
			cereg TEXT,
			cme BIGINT,
			crc_errors BIGINT,
			creg_cgreg TEXT,
			davistalk_rssi BIGINT,
			elevation DOUBLE PRECISION,
			etx BIGINT,
			false_wakeup_count BIGINT,
			false_wakeup_rssi BIGINT,
			good_packet_streak BIGINT,
			health_version BIGINT,
			inside_box_temp DOUBLE PRECISION,
			iss_solar_panel_voltage DOUBLE PRECISION,
			iss_super_cap_voltage DOUBLE PRECISION,
			iss_transmitter_battery_voltage DOUBLE PRECISION,
			last_cme_error_timestamp BIGINT,
			last_gps_reading_timestamp BIGINT,
			last_parent_rtt_ping BIGINT,
			last_rx_rssi BIGINT,
			latitude DOUBLE PRECISION,
			lead_acid_battery_voltage DOUBLE PRECISION,
			link_layer_packets_received BIGINT,
			link_uptime BIGINT,
			location_area_code TEXT,
			longitude DOUBLE PRECISION,
			mcc_mnc TEXT,
			noise_floor_rssi BIGINT,
			number_of_neighbors BIGINT,
			overall_access_technology TEXT,
			platform_id BIGINT,
			power_percentage_mcu BIGINT,
			power_percentage_rx BIGINT,
			power_percentage_tx BIGINT,
			rank BIGINT,
			reception_percent DOUBLE PRECISION,
			resyncs BIGINT,
			rpl_mode BIGINT,
			rpl_parent_node_id TEXT,
			rssi BIGINT,
			rx_bytes BIGINT,
			solar_panel_voltage DOUBLE PRECISION,
			tiva_application_firmware_version BIGINT,
			transmitter_battery_state BIGINT,
			tx_bytes BIGINT,
			uptime BIGINT,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS davis_barometer (
			id TEXT PRIMARY KEY,
			sensor_data_structure_id TEXT NOT NULL,
			lsid BIGINT NOT NULL,
			sensor_type INT NOT NULL,
			data_structure_type INT NOT NULL,
			ts BIGINT NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			tz_offset INT NOT NULL,
			bar_trend_3_hr DOUBLE PRECISION,
			pressure_last DOUBLE PRECISION,
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS davis_stations (
			id TEXT PRIMARY KEY,
			station_id BIGINT NOT NULL,
			station_id_uuid TEXT NOT NULL,
			generated_at BIGINT,
			barometer_reading TEXT REFERENCES davis_barometer(id),
			gateway_reading TEXT NOT NULL REFERENCES davis_gateway_health(id),
			vantagepro2_reading TEXT NOT NULL REFERENCES davis_vantagepro2(id),
			created_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_davis_vantagepro2_date ON davis_vantagepro2(date DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_davis_stations_created ON davis_stations(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := r.db.GetDB().Exec(query); err != nil {
			return errors.NewDatabaseError("failed to initialize davis schema", err)
		}
	}
	return nil
}

func (r *DavisRepo) ExistsByTS(ctx context.Context, ts int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM davis_vantagepro2 WHERE ts = $1)`
	if err := r.db.GetDB().GetContext(ctx, &exists, query, ts); err != nil {
		return false, errors.NewDatabaseError("failed to check for existing reading", err)
	}
	return exists, nil
}

// CreateSnapshot persists the three leaf records first and the linking row
// last, each in its own statement. There is deliberately no surrounding
// transaction: a partial failure leaves orphaned leaf rows rather than
// losing the whole snapshot, and the linking row is only written once all
// leaves exist.
func (r *DavisRepo) CreateSnapshot(ctx context.Context, msg *models.DavisMessage) (*models.DavisStation, error) {
	now := time.Now().UTC()

	vantage := *msg.VantagePro2
	vantage.ID = nuts.NID("dvp", 12)
	vantage.CreatedAt = now
	if err := r.insertVantage(ctx, &vantage); err != nil {
		return nil, err
	}

	gateway := *msg.Gateway
	gateway.ID = nuts.NID("dgw", 12)
	gateway.CreatedAt = now
	if err := r.insertGateway(ctx, &gateway); err != nil {
		return nil, err
	}

	station := &models.DavisStation{
		ID:                 nuts.NID("dst", 12),
		StationID:          msg.StationID,
		StationIDUUID:      msg.StationIDUUID,
		GeneratedAt:        msg.GeneratedAt,
		GatewayReading:     gateway.ID,
		VantagePro2Reading: vantage.ID,
		CreatedAt:          now,
	}

	if msg.Barometer != nil {
		barometer := *msg.Barometer
		barometer.ID = nuts.NID("dbr", 12)
		barometer.CreatedAt = now
		if err := r.insertBarometer(ctx, &barometer); err != nil {
			return nil, err
		}
		station.BarometerReading = null.StringFrom(barometer.ID)
	}

	query := `
		INSERT INTO davis_stations (
			id, station_id, station_id_uuid, generated_at,
			barometer_reading, gateway_reading, vantagepro2_reading, created_at
		) VALUES (
			:id, :station_id, :station_id_uuid, :generated_at,
			:barometer_reading, :gateway_reading, :vantagepro2_reading, :created_at
		)`
	if _, err := r.db.GetDB().NamedExecContext(ctx, query, station); err != nil {
		return nil, errors.NewDatabaseError("failed to create station snapshot", err)
	}
	return station, nil
}

func (r *DavisRepo) insertVantage(ctx context.Context, rec *models.DavisVantagePro2) error {
	query := `
		INSERT INTO davis_vantagepro2 (
			id, sensor_data_structure_id, lsid, sensor_type, data_structure_type,
			ts, date, tz_offset, bar, bar_absolute, bar_trend, dew_point, et_day,
			forecast_rule, forecast_desc, heat_index, hum_out,
			rain_15_min_clicks, rain_15_min_in, rain_15_min_mm,
			rain_60_min_clicks, rain_60_min_in, rain_60_min_mm,
			rain_24_hr_clicks, rain_24_hr_in, rain_24_hr_mm,
			rain_day_clicks, rain_day_in, rain_day_mm,
			rain_rate_clicks, rain_rate_in, rain_rate_mm,
			rain_storm_clicks, rain_storm_in, rain_storm_mm, rain_storm_start_date,
			solar_rad, temp_out, thsw_index, uv, wind_chill,
			wind_dir, wind_dir_of_gust_10_min, wind_gust_10_min,
			wind_speed, wind_speed_2_min, wind_speed_10_min, wet_bulb, created_at
		) VALUES (
			:id, :sensor_data_structure_id, :lsid, :sensor_type, :data_structure_type,
			:ts, :date, :tz_offset, :bar, :bar_absolute, :bar_trend, :dew_point, :et_day,
			:forecast_rule, :forecast_desc, :heat_index, :hum_out,
			:rain_15_min_clicks, :rain_15_min_in, :rain_15_min_mm,
			:rain_60_min_clicks, :rain_60_min_in, :rain_60_min_mm,
			:rain_24_hr_clicks, :rain_24_hr_in, :rain_24_hr_mm,
			:rain_day_clicks, :rain_day_in, :rain_day_mm,
			:rain_rate_clicks, :rain_rate_in, :rain_rate_mm,
			:rain_storm_clicks, :rain_storm_in, :rain_storm_mm, :rain_storm_start_date,
			:solar_rad, :temp_out, :thsw_index, :uv, :wind_chill,
			:wind_dir, :wind_dir_of_gust_10_min, :wind_gust_10_min,
			:wind_speed, :wind_speed_2_min, :wind_speed_10_min, :wet_bulb, :created_at
		)`
	if _, err := r.db.GetDB().NamedExecContext(ctx, query, rec); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return errors.NewDatabaseError("failed to insert weather record", err)
	}
	return nil
}

func (r *DavisRepo) insertGateway(ctx context.Context, rec *models.DavisGatewayHealth) error {
	query := `
		INSERT INTO davis_gateway_health (
			id, sensor_data_structure_id, lsid, sensor_type, data_structure_type,
			ts, date, tz_offset, afc_setting, beacon_interval,
			bluetooth_firmware_version, bootloader_version, cc1310_firmware_version,
			cell_channel, cell_id, cereg, cme, crc_errors, creg_cgreg,
			davistalk_rssi, elevation, etx, false_wakeup_count, false_wakeup_rssi,
			good_packet_streak, health_version, inside_box_temp,
			iss_solar_panel_voltage, iss_super_cap_voltage, iss_transmitter_battery_voltage,
			last_cme_error_timestamp, last_gps_reading_timestamp, last_parent_rtt_ping,
			last_rx_rssi, latitude, lead_acid_battery_voltage,
			link_layer_packets_received, link_uptime, location_area_code, longitude,
			mcc_mnc, noise_floor_rssi, number_of_neighbors, overall_access_technology,
			platform_id, power_percentage_mcu, power_percentage_rx, power_percentage_tx,
			rank, reception_percent, resyncs, rpl_mode, rpl_parent_node_id, rssi,
			rx_bytes, solar_panel_voltage, tiva_application_firmware_version,
			transmitter_battery_state, tx_bytes, uptime, created_at
		) VALUES (
			:id, :sensor_data_structure_id, :lsid, :sensor_type, :data_structure_type,
			:ts, :date, :tz_offset, :afc_setting, :beacon_interval,
			:bluetooth_firmware_version, :bootloader_version, :cc1310_firmware_version,
			:cell_channel, :cell_id, :cereg, :cme, :crc_errors, :creg_cgreg,
			:davistalk_rssi, :elevation, :etx, :false_wakeup_count, :false_wakeup_rssi,
			:good_packet_streak, :health_version, :inside_box_temp,
			:iss_solar_panel_voltage, :iss_super_cap_voltage, :iss_transmitter_battery_voltage,
			:last_cme_error_timestamp, :last_gps_reading_timestamp, :last_parent_rtt_ping,
			:last_rx_rssi, :latitude, :lead_acid_battery_voltage,
			:link_layer_packets_received, :link_uptime, :location_area_code, :longitude,
			:mcc_mnc, :noise_floor_rssi, :number_of_neighbors, :overall_access_technology,
			:platform_id, :power_percentage_mcu, :power_percentage_rx, :power_percentage_tx,
			:rank, :reception_percent, :resyncs, :rpl_mode, :rpl_parent_node_id, :rssi,
			:rx_bytes, :solar_panel_voltage, :tiva_application_firmware_version,
			:transmitter_battery_state, :tx_bytes, :uptime, :created_at
		)`
	if _, err := r.db.GetDB().NamedExecContext(ctx, query, rec); err != nil {
		return errors.NewDatabaseError("failed to insert gateway health record", err)
	}
	return nil
}

func (r *DavisRepo) insertBarometer(ctx context.Context, rec *models.DavisBarometer) error {
	query := `
		INSERT INTO davis_barometer (
			id, sensor_data_structure_id, lsid, sensor_type, data_structure_type,
			ts, date, tz_offset, bar_trend_3_hr, pressure_last, created_at
		) VALUES (
			:id, :sensor_data_structure_id, :lsid, :sensor_type, :data_structure_type,
			:ts, :date, :tz_offset, :bar_trend_3_hr, :pressure_last, :created_at
		)`
	if _, err := r.db.GetDB().NamedExecContext(ctx, query, rec); err != nil {
		return errors.NewDatabaseError("failed to insert barometer record", err)
	}
	return nil
}

func (r *DavisRepo) GetSnapshot(ctx context.Context, ts int64) (*models.DavisStation, error) {
	station := &models.DavisStation{}
	query := `
		SELECT s.* FROM davis_stations s
		JOIN davis_vantagepro2 v ON v.id = s.vantagepro2_reading
		WHERE v.ts = $1`
	err := r.db.GetDB().GetContext(ctx, station, query, ts)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NewNotFoundError("station snapshot not found", err)
		}
		return nil, errors.NewDatabaseError("failed to get station snapshot", err)
	}
	return station, nil
}

func (r *DavisRepo) ListSnapshots(ctx context.Context, start, end time.Time, limit int) ([]*models.DavisStation, error) {
	stations := []*models.DavisStation{}
	query := `
		SELECT * FROM davis_stations
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY created_at DESC
		LIMIT $3`
	if err := r.db.GetDB().SelectContext(ctx, &stations, query, start, end, limit); err != nil {
		return nil, errors.NewDatabaseError("failed to list station snapshots", err)
	}
	return stations, nil
}
