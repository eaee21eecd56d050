// FilePath: internal/davis/normalize_test.go
package davis

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func livePayload(t *testing.T) *StationPayload {
	t.Helper()
	raw := `{
		"station_id": 175979,
		"station_id_uuid": "c19d7da3-8e50-4e87-b1bc-fa7d9b9a70d8",
		"generated_at": 1700000100,
		"sensors": [
			{
				"lsid": 685219, "sensor_type": 79, "data_structure_type": 6,
				"data": [{
					"ts": 1700000000, "tz_offset": 3600,
					"bar": 29.92, "bar_absolute": 29.5, "bar_trend": 0.02,
					"temp_out": 32.0, "dew_point": 50.0, "heat_index": 51.0,
					"thsw_index": 49.0, "wind_chill": 30.0, "wet_bulb": 41.0,
					"hum_out": 87.0, "uv": 1.2, "solar_rad": 410.0, "et_day": 0.04,
					"wind_speed": 10.0, "wind_speed_2_min": 8.0, "wind_speed_10_min": 0.0,
					"wind_gust_10_min": 14.0, "wind_dir": 225, "wind_dir_of_gust_10_min": 240
				}]
			},
			{
				"lsid": 685204, "sensor_type": 507, "data_structure_type": 14,
				"data": [{
					"ts": 1700000000, "tz_offset": 3600,
					"inside_box_temp": 68.0, "platform_id": 12,
					"rssi": -67, "uptime": 86400
				}]
			},
			{
				"lsid": 685205, "sensor_type": 3, "data_structure_type": 9,
				"data": [{
					"ts": 1700000000, "tz_offset": 3600,
					"bar_trend_3_hr": 0.01, "pressure_last": 29.92
				}]
			}
		]
	}`
	var p StationPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func TestConsumeLiveConversions(t *testing.T) {
	msg, err := ConsumeLive(livePayload(t))
	require.NoError(t, err)

	assert.Equal(t, int64(175979), msg.StationID)
	assert.Equal(t, "c19d7da3-8e50-4e87-b1bc-fa7d9b9a70d8", msg.StationIDUUID)

	v := msg.VantagePro2
	require.NotNil(t, v)
	assert.Equal(t, int64(1700000000), v.TS)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), v.Date)
	assert.Equal(t, "79_6", v.SensorDataStructureID)

	// Fahrenheit to Celsius, precise and rounded variants.
	assert.InDelta(t, 0.0, v.TempOut.Float64, 1e-9)
	assert.InDelta(t, 5.0, v.WetBulb.Float64, 1e-9)
	assert.Equal(t, 10.0, v.DewPoint.Float64)
	assert.Equal(t, 11.0, v.HeatIndex.Float64)
	assert.Equal(t, 9.0, v.THSWIndex.Float64)
	assert.Equal(t, -1.0, v.WindChill.Float64)

	// inHg to mmHg.
	assert.InDelta(t, 759.968, v.Bar.Float64, 1e-6)
	assert.InDelta(t, 749.3, v.BarAbsolute.Float64, 1e-6)

	// mph to km/h, zero speed means no reading.
	assert.Equal(t, 16.0, v.WindSpeed.Float64)
	assert.Equal(t, 13.0, v.WindSpeed2Min.Float64)
	assert.False(t, v.WindSpeed10Min.Valid)
	assert.Equal(t, 23.0, v.WindGust10Min.Float64)

	// Live wind direction is already degrees.
	assert.Equal(t, int64(225), v.WindDir.Int64)
	assert.Equal(t, int64(240), v.WindDirOfGust10Min.Int64)

	// Passthrough fields keep vendor values.
	assert.Equal(t, 0.02, v.BarTrend.Float64)
	assert.Equal(t, 0.04, v.ETDay.Float64)
	assert.Equal(t, 87.0, v.HumOut.Float64)

	g := msg.Gateway
	require.NotNil(t, g)
	assert.Equal(t, "507_14", g.SensorDataStructureID)
	assert.InDelta(t, 20.0, g.InsideBoxTemp.Float64, 1e-9)
	assert.Equal(t, int64(12), g.PlatformID.Int64)

	b := msg.Barometer
	require.NotNil(t, b)
	assert.Equal(t, "3_9", b.SensorDataStructureID)
	assert.InDelta(t, 759.968, b.PressureLast.Float64, 1e-6)
	assert.Equal(t, 0.01, b.BarTrend3Hr.Float64)
}

func TestConsumeLiveRejectsShortSensorList(t *testing.T) {
	p := livePayload(t)
	p.Sensors = p.Sensors[:2]

	_, err := ConsumeLive(p)
	assert.Error(t, err)
}

func TestConsumeLiveRequiresStationIdentity(t *testing.T) {
	p := livePayload(t)
	p.StationID = 0
	_, err := ConsumeLive(p)
	assert.Error(t, err)

	p = livePayload(t)
	p.StationIDUUID = ""
	_, err = ConsumeLive(p)
	assert.Error(t, err)
}

func TestConsumeLiveRequiresRecordTimestamp(t *testing.T) {
	p := livePayload(t)
	p.Sensors[sensorIdxVantage].Data[0] = json.RawMessage(`{"tz_offset": 3600, "temp_out": 32.0}`)

	_, err := ConsumeLive(p)
	assert.Error(t, err)
}

func historicPayload(t *testing.T, sampleTS []int64, gatewayTS []int64, barometerTS []int64) *StationPayload {
	t.Helper()
	p := &StationPayload{
		StationID:     175979,
		StationIDUUID: "c19d7da3-8e50-4e87-b1bc-fa7d9b9a70d8",
		Sensors: []SensorBlock{
			{LSID: 685219, SensorType: 79, DataStructureType: 6},
			{LSID: 685204, SensorType: 507, DataStructureType: 14},
			{LSID: 685205, SensorType: 3, DataStructureType: 9},
		},
	}
	for _, ts := range sampleTS {
		p.Sensors[sensorIdxVantage].Data = append(p.Sensors[sensorIdxVantage].Data,
			json.RawMessage(fmt.Sprintf(`{"ts": %d, "tz_offset": 3600, "temp_out": 50.0, "wind_dir_of_prevail": 8}`, ts)))
	}
	for _, ts := range gatewayTS {
		p.Sensors[sensorIdxGateway].Data = append(p.Sensors[sensorIdxGateway].Data,
			json.RawMessage(fmt.Sprintf(`{"ts": %d, "tz_offset": 3600, "uptime": %d}`, ts, ts)))
	}
	for _, ts := range barometerTS {
		p.Sensors[sensorIdxBarometer].Data = append(p.Sensors[sensorIdxBarometer].Data,
			json.RawMessage(fmt.Sprintf(`{"ts": %d, "tz_offset": 3600, "pressure_last": 29.92}`, ts)))
	}
	return p
}

func TestConsumeHistoricPairsGatewaySamples(t *testing.T) {
	p := historicPayload(t,
		[]int64{100, 200, 300},
		[]int64{90, 150, 250},
		[]int64{100, 200, 300})

	messages, err := ConsumeHistoric(p)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	// Each weather sample carries the gateway sample covering its interval.
	assert.Equal(t, int64(90), messages[0].Gateway.TS)
	assert.Equal(t, int64(150), messages[1].Gateway.TS)
	assert.Equal(t, int64(250), messages[2].Gateway.TS)

	for _, msg := range messages {
		require.NotNil(t, msg.Barometer)
		// Barometer samples share the weather cadence and pair by index.
		assert.Equal(t, msg.VantagePro2.TS, msg.Barometer.TS)
		// Historic wind direction arrives as a 16-sector code.
		assert.Equal(t, int64(180), msg.VantagePro2.WindDir.Int64)
		assert.InDelta(t, 10.0, msg.VantagePro2.TempOut.Float64, 1e-9)
	}
}

func TestConsumeHistoricBarometerCoIndexedWithWeather(t *testing.T) {
	// A single stale gateway sample covers every weather sample; the
	// barometer pairing must still follow the weather index, not the
	// gateway one.
	p := historicPayload(t,
		[]int64{100, 200, 300},
		[]int64{90},
		[]int64{100, 200, 300})

	messages, err := ConsumeHistoric(p)
	require.NoError(t, err)
	require.Len(t, messages, 3)

	for _, msg := range messages {
		assert.Equal(t, int64(90), msg.Gateway.TS)
		require.NotNil(t, msg.Barometer)
		assert.Equal(t, msg.VantagePro2.TS, msg.Barometer.TS)
	}
	assert.Equal(t, int64(200), messages[1].Barometer.TS)
}

func TestConsumeHistoricMissingBarometerSample(t *testing.T) {
	p := historicPayload(t,
		[]int64{100, 200},
		[]int64{90, 150},
		[]int64{100})

	messages, err := ConsumeHistoric(p)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.NotNil(t, messages[0].Barometer)
	assert.Nil(t, messages[1].Barometer)
}

func TestConsumeHistoricEmptyWeatherBlock(t *testing.T) {
	p := historicPayload(t, nil, []int64{90}, []int64{90})

	messages, err := ConsumeHistoric(p)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestConsumeHistoricRequiresGatewaySamples(t *testing.T) {
	p := historicPayload(t, []int64{100}, nil, nil)

	_, err := ConsumeHistoric(p)
	assert.Error(t, err)
}

func TestConsumeHistoricRequiresStationIdentity(t *testing.T) {
	p := historicPayload(t, []int64{100}, []int64{90}, []int64{100})
	p.StationIDUUID = ""

	_, err := ConsumeHistoric(p)
	assert.Error(t, err)
}

func TestConsumeHistoricRequiresRecordTimestamp(t *testing.T) {
	p := historicPayload(t, []int64{100}, []int64{90}, []int64{100})
	p.Sensors[sensorIdxVantage].Data[0] = json.RawMessage(`{"tz_offset": 3600, "temp_out": 50.0}`)

	_, err := ConsumeHistoric(p)
	assert.Error(t, err)
}

func TestConsumeHistoricRejectsBadDirectionCode(t *testing.T) {
	p := historicPayload(t, nil, []int64{90}, nil)
	p.Sensors[sensorIdxVantage].Data = append(p.Sensors[sensorIdxVantage].Data,
		json.RawMessage(`{"ts": 100, "tz_offset": 3600, "wind_dir_of_prevail": 16}`))

	_, err := ConsumeHistoric(p)
	assert.Error(t, err)
}
