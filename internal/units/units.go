// FilePath: internal/units/units.go

// Package units converts vendor measurement units into the metric units
// stored by the hub. Sensors report pressure, speed and length readings of
// zero when the measurement is missing, so those converters map zero to an
// invalid (null) value instead of converting it.
package units

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/guregu/null.v4"
)

const (
	mphToKmhFactor  = 1.609344
	inchToMmFactor  = 25.4
	compassStepDeg  = 22.5
	kelvinOffset    = 273.15
)

// compassPoints maps the 16-point compass rose to degrees in 22.5 steps.
var compassPoints = map[string]float64{
	"N":   0,
	"NNE": 22.5,
	"NE":  45,
	"ENE": 67.5,
	"E":   90,
	"ESE": 112.5,
	"SE":  135,
	"SSE": 157.5,
	"S":   180,
	"SSW": 202.5,
	"SW":  225,
	"WSW": 247.5,
	"W":   270,
	"WNW": 292.5,
	"NW":  315,
	"NNW": 337.5,
}

// FahrenheitToCelsius converts a temperature reading to Celsius.
// Null propagates; zero is a legitimate temperature and converts normally.
func FahrenheitToCelsius(v null.Float) null.Float {
	if !v.Valid {
		return null.Float{}
	}
	return null.FloatFrom((v.Float64 - 32) * 5 / 9)
}

// FahrenheitToCelsiusRounded converts to Celsius and rounds to the nearest
// whole degree, for fields the vendor reports as integers.
func FahrenheitToCelsiusRounded(v null.Float) null.Int {
	if !v.Valid {
		return null.Int{}
	}
	return null.IntFrom(int64(math.Round((v.Float64 - 32) * 5 / 9)))
}

// InHgToMmHg converts a barometric reading from inches of mercury to
// millimeters of mercury. A zero reading means the sensor had no value.
func InHgToMmHg(v null.Float) null.Float {
	if !v.Valid || v.Float64 == 0 {
		return null.Float{}
	}
	return null.FloatFrom(v.Float64 * inchToMmFactor)
}

// InHgToMmHgRounded is InHgToMmHg rounded to the nearest integer.
func InHgToMmHgRounded(v null.Float) null.Float {
	converted := InHgToMmHg(v)
	if !converted.Valid {
		return null.Float{}
	}
	return null.FloatFrom(math.Round(converted.Float64))
}

// MphToKmh converts a wind speed reading to km/h, rounded to the nearest
// integer. A zero reading means the anemometer had no value.
func MphToKmh(v null.Float) null.Int {
	if !v.Valid || v.Float64 == 0 {
		return null.Int{}
	}
	return null.IntFrom(int64(math.Round(v.Float64 * mphToKmhFactor)))
}

// InchToMm converts a length reading (rain, evapotranspiration) to
// millimeters. A zero reading means no value.
func InchToMm(v null.Float) null.Float {
	if !v.Valid || v.Float64 == 0 {
		return null.Float{}
	}
	return null.FloatFrom(v.Float64 * inchToMmFactor)
}

// CompassPointToDegrees resolves a 16-point compass abbreviation ("N",
// "NNE", ...) to degrees, rounded to the nearest integer.
func CompassPointToDegrees(point null.String) (null.Int, error) {
	if !point.Valid || point.String == "" {
		return null.Int{}, nil
	}
	deg, ok := compassPoints[strings.ToUpper(strings.TrimSpace(point.String))]
	if !ok {
		return null.Int{}, fmt.Errorf("unknown compass point %q", point.String)
	}
	return null.IntFrom(int64(math.Round(deg))), nil
}

// CompassCodeToDegrees resolves a 16-sector direction code (0..15) to
// degrees. The historic Davis feed encodes wind direction this way.
func CompassCodeToDegrees(code null.Int) (null.Int, error) {
	if !code.Valid {
		return null.Int{}, nil
	}
	if code.Int64 < 0 || code.Int64 > 15 {
		return null.Int{}, fmt.Errorf("compass code %d out of range [0,15]", code.Int64)
	}
	return null.IntFrom(int64(math.Round(compassStepDeg * float64(code.Int64)))), nil
}

// KelvinToCelsius converts an absolute temperature to Celsius, rounded to
// two decimal places.
func KelvinToCelsius(v null.Float) null.Float {
	if !v.Valid {
		return null.Float{}
	}
	return null.FloatFrom(math.Round((v.Float64-kelvinOffset)*100) / 100)
}
