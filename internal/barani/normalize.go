// FilePath: internal/barani/normalize.go
package barani

import (
	"strconv"
	"time"

	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/models"
	"github.com/terrasense/meteohub/internal/units"
	nuts "github.com/vaudience/go-nuts"
	"gopkg.in/guregu/null.v4"
)

// Plausible absolute temperature band. Some Helix firmware revisions
// report temperatures in Kelvin; a reading inside this band cannot be a
// Celsius air temperature, so it is treated as Kelvin and converted.
// Converted values land well below the band, so the fix never applies
// twice.
const (
	kelvinBandLow  = 173.15
	kelvinBandHigh = 373.15
)

// timestampLayouts are the formats stations have been observed to send.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeHelix converts a raw Helix message into a storable reading,
// repairing Kelvin-scaled temperature fields on the way.
func NormalizeHelix(msg *HelixMessage) (*models.BaraniHelixReading, error) {
	timestamp, err := parseTimestamp(msg.Time)
	if err != nil {
		return nil, err
	}

	return &models.BaraniHelixReading{
		SerialNumber:       msg.SerialNumber,
		Timestamp:          timestamp,
		Battery:            msg.Battery,
		Temperature:        fixKelvin(msg.Temperature, "temperature"),
		TemperatureWetBulb: fixKelvin(msg.WetBulb, "temperature_wet_bulb"),
		DewPoint:           fixKelvin(msg.DewPoint, "dew_point"),
		Humidity:           msg.Humidity,
		Pressure:           msg.Pressure,
		Irradiation:        msg.Irradiation,
		Rain:               msg.Rain,
		RainfallRateMax:    msg.RainfallRateMax,
	}, nil
}

// NormalizeWind converts a raw Wind message into a storable reading.
func NormalizeWind(msg *WindMessage) (*models.BaraniWindReading, error) {
	timestamp, err := parseTimestamp(msg.Time)
	if err != nil {
		return nil, err
	}

	return &models.BaraniWindReading{
		SerialNumber: msg.SerialNumber,
		Timestamp:    timestamp,
		Battery:      msg.Battery,
		WindAvg10:    msg.WindAvg10,
		WindMax10:    msg.WindMax10,
		WindMin10:    msg.WindMin10,
		WindStdev10:  msg.WindStdev10,
		WdirAvg10:    msg.WdirAvg10,
		WdirMax10:    msg.WdirMax10,
		WdirMin10:    msg.WdirMin10,
		WdirGust10:   msg.WdirGust10,
		WdirStdev10:  msg.WdirStdev10,
	}, nil
}

func fixKelvin(v null.Float, field string) null.Float {
	if !v.Valid || v.Float64 <= kelvinBandLow || v.Float64 >= kelvinBandHigh {
		return v
	}
	fixed := units.KelvinToCelsius(v)
	nuts.L.Infof("[Barani] %s modified to fix Kelvin values: %v -> %v", field, v.Float64, fixed.Float64)
	return fixed
}

func parseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	// stations configured for epoch output send milliseconds
	if ms, err := strconv.ParseInt(value, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	return time.Time{}, errors.NewValidationError("unparseable message timestamp", nil).WithDetails(value)
}
