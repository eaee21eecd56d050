// FilePath: internal/models/models.barani.go
package models

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

// BaraniHelixReading is one normalized MeteoHelix message. The composite
// key (serial_number, timestamp) makes station retransmissions idempotent.
type BaraniHelixReading struct {
	SerialNumber       string     `json:"serial_number" db:"serial_number"`
	Timestamp          time.Time  `json:"timestamp" db:"timestamp"`
	Battery            null.Float `json:"battery" db:"battery"`
	Temperature        null.Float `json:"temperature" db:"temperature"`
	TemperatureWetBulb null.Float `json:"temperature_wet_bulb" db:"temperature_wet_bulb"`
	DewPoint           null.Float `json:"dew_point" db:"dew_point"`
	Humidity           null.Float `json:"humidity" db:"humidity"`
	Pressure           null.Float `json:"pressure" db:"pressure"`
	Irradiation        null.Float `json:"irradiation" db:"irradiation"`
	Rain               null.Float `json:"rain" db:"rain"`
	RainfallRateMax    null.Float `json:"rainfall_rate_max" db:"rainfall_rate_max"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
}

// BaraniWindReading is one normalized MeteoWind message.
type BaraniWindReading struct {
	SerialNumber string     `json:"serial_number" db:"serial_number"`
	Timestamp    time.Time  `json:"timestamp" db:"timestamp"`
	Battery      null.Float `json:"battery" db:"battery"`
	WindAvg10    null.Float `json:"wind_avg10" db:"wind_avg10"`
	WindMax10    null.Float `json:"wind_max10" db:"wind_max10"`
	WindMin10    null.Float `json:"wind_min10" db:"wind_min10"`
	WindStdev10  null.Float `json:"wind_stdev10" db:"wind_stdev10"`
	WdirAvg10    null.Float `json:"wdir_avg10" db:"wdir_avg10"`
	WdirMax10    null.Float `json:"wdir_max10" db:"wdir_max10"`
	WdirMin10    null.Float `json:"wdir_min10" db:"wdir_min10"`
	WdirGust10   null.Float `json:"wdir_gust10" db:"wdir_gust10"`
	WdirStdev10  null.Float `json:"wdir_stdev10" db:"wdir_stdev10"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}
