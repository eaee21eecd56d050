// FilePath: internal/models/models.campbell.go
package models

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

// CampbellReading is one row from a Campbell datalogger export. The
// logger timestamp is the primary key, so re-importing an overlapping
// export does not duplicate rows.
type CampbellReading struct {
	Timestamp         time.Time   `json:"timestamp" db:"timestamp"`
	AirTempAvg        null.Float  `json:"air_temp_avg" db:"air_temp_avg"`
	BattVoltageAvg    null.Float  `json:"batt_voltage_avg" db:"batt_voltage_avg"`
	BPMbarAvg         null.Float  `json:"bp_mbar_avg" db:"bp_mbar_avg"`
	DewPointAvg       null.Float  `json:"dew_point_avg" db:"dew_point_avg"`
	MetSensStatus     null.String `json:"met_sens_status" db:"met_sens_status"`
	MS60IrradianceAvg null.Float  `json:"ms60_irradiance_avg" db:"ms60_irradiance_avg"`
	PTempAvg          null.Float  `json:"p_temp_avg" db:"p_temp_avg"`
	RainMmTot         null.Float  `json:"rain_mm_tot" db:"rain_mm_tot"`
	Humidity          null.Float  `json:"humidity" db:"humidity"`
	WindDir           null.Float  `json:"wind_dir" db:"wind_dir"`
	WindSpeed         null.Float  `json:"wind_speed" db:"wind_speed"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
}
