// FilePath: internal/davis/normalize.go
package davis

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/models"
	"github.com/terrasense/meteohub/internal/units"
	"gopkg.in/guregu/null.v4"
)

// conversions bundles the unit converters for one feed variant. The live
// and historic feeds deliver the same record shape but differ in how wind
// direction is encoded, so each variant plugs in its own direction rule.
type conversions struct {
	temperature        func(null.Float) null.Float
	temperatureRounded func(null.Float) null.Float
	pressure           func(null.Float) null.Float
	windSpeed          func(null.Float) null.Float
	windDir            func(*vantageRecord) (null.Int, error)
}

var liveConversions = conversions{
	temperature:        units.FahrenheitToCelsius,
	temperatureRounded: roundedCelsius,
	pressure:           units.InHgToMmHg,
	windSpeed:          kmhSpeed,
	windDir: func(r *vantageRecord) (null.Int, error) {
		// already degrees in the live feed
		return r.WindDir, nil
	},
}

var historicConversions = conversions{
	temperature:        units.FahrenheitToCelsius,
	temperatureRounded: roundedCelsius,
	pressure:           units.InHgToMmHg,
	windSpeed:          kmhSpeed,
	windDir: func(r *vantageRecord) (null.Int, error) {
		return units.CompassCodeToDegrees(r.WindDirOfPrevail)
	},
}

func roundedCelsius(v null.Float) null.Float {
	return intToFloat(units.FahrenheitToCelsiusRounded(v))
}

func kmhSpeed(v null.Float) null.Float {
	return intToFloat(units.MphToKmh(v))
}

func intToFloat(v null.Int) null.Float {
	if !v.Valid {
		return null.Float{}
	}
	return null.FloatFrom(float64(v.Int64))
}

// ConsumeLive normalizes a live station payload into one storable message.
func ConsumeLive(p *StationPayload) (*models.DavisMessage, error) {
	if err := validateStationIdentity(p); err != nil {
		return nil, err
	}
	if len(p.Sensors) <= sensorIdxBarometer {
		return nil, errors.NewValidationError(
			fmt.Sprintf("station payload carries %d sensors, expected 3", len(p.Sensors)), nil)
	}

	vantage, err := decodeVantage(p.Sensors[sensorIdxVantage], 0)
	if err != nil {
		return nil, err
	}
	gateway, err := decodeGateway(p.Sensors[sensorIdxGateway], 0)
	if err != nil {
		return nil, err
	}
	barometer, err := decodeBarometer(p.Sensors[sensorIdxBarometer], 0)
	if err != nil {
		return nil, err
	}

	vantageMsg, err := normalizeVantage(vantage, p.Sensors[sensorIdxVantage], liveConversions)
	if err != nil {
		return nil, err
	}

	return &models.DavisMessage{
		StationID:     p.StationID,
		StationIDUUID: p.StationIDUUID,
		GeneratedAt:   p.GeneratedAt,
		VantagePro2:   vantageMsg,
		Gateway:       normalizeGateway(gateway, p.Sensors[sensorIdxGateway]),
		Barometer:     normalizeBarometer(barometer, p.Sensors[sensorIdxBarometer]),
	}, nil
}

// ConsumeHistoric normalizes a historic payload into one message per
// archived weather sample. The gateway reports health on its own slower
// cadence, so each weather sample is paired with the gateway sample whose
// reporting interval covers its timestamp; samples past the last interval
// fall back to the final gateway sample. Barometer samples track the
// weather cadence and pair positionally with the weather sample at the
// same index.
func ConsumeHistoric(p *StationPayload) ([]*models.DavisMessage, error) {
	if err := validateStationIdentity(p); err != nil {
		return nil, err
	}
	if len(p.Sensors) <= sensorIdxBarometer {
		return nil, errors.NewValidationError(
			fmt.Sprintf("station payload carries %d sensors, expected 3", len(p.Sensors)), nil)
	}

	vantageBlock := p.Sensors[sensorIdxVantage]
	gatewayBlock := p.Sensors[sensorIdxGateway]
	barometerBlock := p.Sensors[sensorIdxBarometer]

	if len(vantageBlock.Data) == 0 {
		return nil, nil
	}
	if len(gatewayBlock.Data) == 0 {
		return nil, errors.NewValidationError("historic payload has no gateway samples", nil)
	}

	vantageRecords := make([]*vantageRecord, len(vantageBlock.Data))
	vantageTS := make([]int64, len(vantageBlock.Data))
	for i := range vantageBlock.Data {
		rec, err := decodeVantage(vantageBlock, i)
		if err != nil {
			return nil, err
		}
		vantageRecords[i] = rec
		vantageTS[i] = rec.TS
	}

	gatewayRecords := make([]*gatewayRecord, len(gatewayBlock.Data))
	gatewayTS := make([]int64, len(gatewayBlock.Data))
	for i := range gatewayBlock.Data {
		rec, err := decodeGateway(gatewayBlock, i)
		if err != nil {
			return nil, err
		}
		gatewayRecords[i] = rec
		gatewayTS[i] = rec.TS
	}

	barometerRecords := make([]*barometerRecord, len(barometerBlock.Data))
	for i := range barometerBlock.Data {
		rec, err := decodeBarometer(barometerBlock, i)
		if err != nil {
			return nil, err
		}
		barometerRecords[i] = rec
	}

	pairing := AlignSamples(vantageTS, gatewayTS)

	messages := make([]*models.DavisMessage, 0, len(vantageRecords))
	for i, rec := range vantageRecords {
		vantageMsg, err := normalizeVantage(rec, vantageBlock, historicConversions)
		if err != nil {
			return nil, err
		}

		msg := &models.DavisMessage{
			StationID:     p.StationID,
			StationIDUUID: p.StationIDUUID,
			GeneratedAt:   p.GeneratedAt,
			VantagePro2:   vantageMsg,
			Gateway:       normalizeGateway(gatewayRecords[pairing[i]], gatewayBlock),
		}
		if i < len(barometerRecords) {
			msg.Barometer = normalizeBarometer(barometerRecords[i], barometerBlock)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

func validateStationIdentity(p *StationPayload) error {
	if p.StationID == 0 {
		return errors.NewValidationError("station payload has no station_id", nil)
	}
	if p.StationIDUUID == "" {
		return errors.NewValidationError("station payload has no station_id_uuid", nil)
	}
	return nil
}

func decodeVantage(block SensorBlock, idx int) (*vantageRecord, error) {
	var rec vantageRecord
	if err := json.Unmarshal(block.Data[idx], &rec); err != nil {
		return nil, errors.NewValidationError("malformed weather sensor record", err)
	}
	if rec.TS == 0 {
		return nil, errors.NewValidationError("weather sensor record has no timestamp", nil)
	}
	return &rec, nil
}

func decodeGateway(block SensorBlock, idx int) (*gatewayRecord, error) {
	var rec gatewayRecord
	if err := json.Unmarshal(block.Data[idx], &rec); err != nil {
		return nil, errors.NewValidationError("malformed gateway health record", err)
	}
	if rec.TS == 0 {
		return nil, errors.NewValidationError("gateway health record has no timestamp", nil)
	}
	return &rec, nil
}

func decodeBarometer(block SensorBlock, idx int) (*barometerRecord, error) {
	var rec barometerRecord
	if err := json.Unmarshal(block.Data[idx], &rec); err != nil {
		return nil, errors.NewValidationError("malformed barometer record", err)
	}
	if rec.TS == 0 {
		return nil, errors.NewValidationError("barometer record has no timestamp", nil)
	}
	return &rec, nil
}

func normalizeVantage(r *vantageRecord, block SensorBlock, conv conversions) (*models.DavisVantagePro2, error) {
	windDir, err := conv.windDir(r)
	if err != nil {
		return nil, errors.NewValidationError("unresolvable wind direction", err)
	}

	return &models.DavisVantagePro2{
		SensorDataStructureID: models.SensorDataStructureID(block.SensorType, block.DataStructureType),
		LSID:                  block.LSID,
		SensorType:            block.SensorType,
		DataStructureType:     block.DataStructureType,
		TS:                    r.TS,
		Date:                  time.Unix(r.TS, 0).UTC(),
		TZOffset:              r.TZOffset,
		Bar:                   conv.pressure(r.Bar),
		BarAbsolute:           conv.pressure(r.BarAbsolute),
		BarTrend:              r.BarTrend,
		DewPoint:              conv.temperatureRounded(r.DewPoint),
		ETDay:                 r.ETDay,
		ForecastRule:          r.ForecastRule,
		ForecastDesc:          r.ForecastDesc,
		HeatIndex:             conv.temperatureRounded(r.HeatIndex),
		HumOut:                r.HumOut,
		Rain15MinClicks:       r.Rain15MinClicks,
		Rain15MinIn:           r.Rain15MinIn,
		Rain15MinMm:           r.Rain15MinMm,
		Rain60MinClicks:       r.Rain60MinClicks,
		Rain60MinIn:           r.Rain60MinIn,
		Rain60MinMm:           r.Rain60MinMm,
		Rain24HrClicks:        r.Rain24HrClicks,
		Rain24HrIn:            r.Rain24HrIn,
		Rain24HrMm:            r.Rain24HrMm,
		RainDayClicks:         r.RainDayClicks,
		RainDayIn:             r.RainDayIn,
		RainDayMm:             r.RainDayMm,
		RainRateClicks:        r.RainRateClicks,
		RainRateIn:            r.RainRateIn,
		RainRateMm:            r.RainRateMm,
		RainStormClicks:       r.RainStormClicks,
		RainStormIn:           r.RainStormIn,
		RainStormMm:           r.RainStormMm,
		RainStormStartDate:    r.RainStormStartDate,
		SolarRad:              r.SolarRad,
		TempOut:               conv.temperature(r.TempOut),
		THSWIndex:             conv.temperatureRounded(r.THSWIndex),
		UV:                    r.UV,
		WindChill:             conv.temperatureRounded(r.WindChill),
		WindDir:               windDir,
		WindDirOfGust10Min:    r.WindDirOfGust10Min,
		WindGust10Min:         conv.windSpeed(r.WindGust10Min),
		WindSpeed:             conv.windSpeed(r.WindSpeed),
		WindSpeed2Min:         conv.windSpeed(r.WindSpeed2Min),
		WindSpeed10Min:        conv.windSpeed(r.WindSpeed10Min),
		WetBulb:               conv.temperature(r.WetBulb),
	}, nil
}

func normalizeGateway(r *gatewayRecord, block SensorBlock) *models.DavisGatewayHealth {
	return &models.DavisGatewayHealth{
		SensorDataStructureID:          models.SensorDataStructureID(block.SensorType, block.DataStructureType),
		LSID:                           block.LSID,
		SensorType:                     block.SensorType,
		DataStructureType:              block.DataStructureType,
		TS:                             r.TS,
		Date:                           time.Unix(r.TS, 0).UTC(),
		TZOffset:                       r.TZOffset,
		AFCSetting:                     r.AFCSetting,
		BeaconInterval:                 r.BeaconInterval,
		BluetoothFirmwareVersion:       r.BluetoothFirmwareVersion,
		BootloaderVersion:              r.BootloaderVersion,
		CC1310FirmwareVersion:          r.CC1310FirmwareVersion,
		CellChannel:                    r.CellChannel,
		CellID:                         r.CellID,
		Cereg:                          r.Cereg,
		CME:                            r.CME,
		CRCErrors:                      r.CRCErrors,
		CregCgreg:                      r.CregCgreg,
		DavistalkRSSI:                  r.DavistalkRSSI,
		Elevation:                      r.Elevation,
		ETX:                            r.ETX,
		FalseWakeupCount:               r.FalseWakeupCount,
		FalseWakeupRSSI:                r.FalseWakeupRSSI,
		GoodPacketStreak:               r.GoodPacketStreak,
		HealthVersion:                  r.HealthVersion,
		InsideBoxTemp:                  units.FahrenheitToCelsius(r.InsideBoxTemp),
		ISSSolarPanelVoltage:           r.ISSSolarPanelVoltage,
		ISSSuperCapVoltage:             r.ISSSuperCapVoltage,
		ISSTransmitterBatteryVoltage:   r.ISSTransmitterBatteryVoltage,
		LastCMEErrorTimestamp:          r.LastCMEErrorTimestamp,
		LastGPSReadingTimestamp:        r.LastGPSReadingTimestamp,
		LastParentRTTPing:              r.LastParentRTTPing,
		LastRxRSSI:                     r.LastRxRSSI,
		Latitude:                       r.Latitude,
		LeadAcidBatteryVoltage:         r.LeadAcidBatteryVoltage,
		LinkLayerPacketsReceived:       r.LinkLayerPacketsReceived,
		LinkUptime:                     r.LinkUptime,
		LocationAreaCode:               r.LocationAreaCode,
		Longitude:                      r.Longitude,
		MccMnc:                         r.MccMnc,
		NoiseFloorRSSI:                 r.NoiseFloorRSSI,
		NumberOfNeighbors:              r.NumberOfNeighbors,
		OverallAccessTechnology:        r.OverallAccessTechnology,
		PlatformID:                     r.PlatformID,
		PowerPercentageMCU:             r.PowerPercentageMCU,
		PowerPercentageRx:              r.PowerPercentageRx,
		PowerPercentageTx:              r.PowerPercentageTx,
		Rank:                           r.Rank,
		ReceptionPercent:               r.ReceptionPercent,
		Resyncs:                        r.Resyncs,
		RPLMode:                        r.RPLMode,
		RPLParentNodeID:                r.RPLParentNodeID,
		RSSI:                           r.RSSI,
		RxBytes:                        r.RxBytes,
		SolarPanelVoltage:              r.SolarPanelVoltage,
		TivaApplicationFirmwareVersion: r.TivaApplicationFirmwareVersion,
		TransmitterBatteryState:        r.TransmitterBatteryState,
		TxBytes:                        r.TxBytes,
		Uptime:                         r.Uptime,
	}
}

func normalizeBarometer(r *barometerRecord, block SensorBlock) *models.DavisBarometer {
	return &models.DavisBarometer{
		SensorDataStructureID: models.SensorDataStructureID(block.SensorType, block.DataStructureType),
		LSID:                  block.LSID,
		SensorType:            block.SensorType,
		DataStructureType:     block.DataStructureType,
		TS:                    r.TS,
		Date:                  time.Unix(r.TS, 0).UTC(),
		TZOffset:              r.TZOffset,
		BarTrend3Hr:           r.BarTrend3Hr,
		PressureLast:          units.InHgToMmHg(r.PressureLast),
	}
}
