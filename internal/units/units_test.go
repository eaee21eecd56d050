// FilePath: internal/units/units_test.go
package units_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terrasense/meteohub/internal/units"
	"gopkg.in/guregu/null.v4"
)

func TestFahrenheitToCelsius(t *testing.T) {
	assert.Equal(t, null.FloatFrom(0), units.FahrenheitToCelsius(null.FloatFrom(32)))
	assert.Equal(t, null.FloatFrom(100), units.FahrenheitToCelsius(null.FloatFrom(212)))
	assert.False(t, units.FahrenheitToCelsius(null.Float{}).Valid)
	// zero is a real temperature, not a missing value
	assert.Equal(t, null.FloatFrom(-160.0/9.0), units.FahrenheitToCelsius(null.FloatFrom(0)))
}

func TestFahrenheitToCelsiusRounded(t *testing.T) {
	assert.Equal(t, null.IntFrom(0), units.FahrenheitToCelsiusRounded(null.FloatFrom(32)))
	assert.Equal(t, null.IntFrom(27), units.FahrenheitToCelsiusRounded(null.FloatFrom(80)))
	assert.False(t, units.FahrenheitToCelsiusRounded(null.Float{}).Valid)
}

func TestMphToKmh(t *testing.T) {
	assert.Equal(t, null.IntFrom(16), units.MphToKmh(null.FloatFrom(10)))
	assert.Equal(t, null.IntFrom(2), units.MphToKmh(null.FloatFrom(1)))
	assert.False(t, units.MphToKmh(null.FloatFrom(0)).Valid, "zero speed means no reading")
	assert.False(t, units.MphToKmh(null.Float{}).Valid)
}

func TestInHgToMmHg(t *testing.T) {
	got := units.InHgToMmHg(null.FloatFrom(29.92))
	require.True(t, got.Valid)
	assert.InDelta(t, 760, got.Float64, 0.5)

	assert.False(t, units.InHgToMmHg(null.FloatFrom(0)).Valid, "zero pressure means no reading")
	assert.False(t, units.InHgToMmHg(null.Float{}).Valid)

	rounded := units.InHgToMmHgRounded(null.FloatFrom(29.92))
	require.True(t, rounded.Valid)
	assert.Equal(t, float64(760), rounded.Float64)
}

func TestInchToMm(t *testing.T) {
	got := units.InchToMm(null.FloatFrom(1))
	require.True(t, got.Valid)
	assert.Equal(t, 25.4, got.Float64)

	assert.False(t, units.InchToMm(null.FloatFrom(0)).Valid)
	assert.False(t, units.InchToMm(null.Float{}).Valid)
}

func TestCompassPointToDegrees(t *testing.T) {
	tests := []struct {
		point string
		want  int64
	}{
		{"N", 0},
		{"NNE", 23},
		{"E", 90},
		{"SSW", 203},
		{"NNW", 338},
	}
	for _, tc := range tests {
		got, err := units.CompassPointToDegrees(null.StringFrom(tc.point))
		require.NoError(t, err, tc.point)
		assert.Equal(t, null.IntFrom(tc.want), got, tc.point)
	}

	_, err := units.CompassPointToDegrees(null.StringFrom("NORTHISH"))
	assert.Error(t, err)

	got, err := units.CompassPointToDegrees(null.String{})
	require.NoError(t, err)
	assert.False(t, got.Valid)
}

func TestCompassCodeToDegrees(t *testing.T) {
	got, err := units.CompassCodeToDegrees(null.IntFrom(8))
	require.NoError(t, err)
	assert.Equal(t, null.IntFrom(180), got)

	got, err = units.CompassCodeToDegrees(null.IntFrom(0))
	require.NoError(t, err)
	assert.Equal(t, null.IntFrom(0), got)

	_, err = units.CompassCodeToDegrees(null.IntFrom(16))
	assert.Error(t, err)

	got, err = units.CompassCodeToDegrees(null.Int{})
	require.NoError(t, err)
	assert.False(t, got.Valid)
}

func TestKelvinToCelsius(t *testing.T) {
	assert.Equal(t, null.FloatFrom(26.85), units.KelvinToCelsius(null.FloatFrom(300)))
	assert.Equal(t, null.FloatFrom(16.85), units.KelvinToCelsius(null.FloatFrom(290)))
	assert.False(t, units.KelvinToCelsius(null.Float{}).Valid)
}
