// FilePath: internal/davis/schemas.go

// Package davis ingests WeatherLink station data: the live snapshot feed,
// the historic archive feed and the manual export files written by the
// WeatherLink desktop software.
package davis

import (
	"encoding/json"

	"gopkg.in/guregu/null.v4"
)

// Sensor positions inside a WeatherLink station payload. The upstream API
// reports them in a fixed order for this station class.
const (
	sensorIdxVantage   = 0
	sensorIdxGateway   = 1
	sensorIdxBarometer = 2
)

// Sensor identity constants for rows built from export files, which carry
// no sensor metadata of their own.
const (
	exportVantageLSID      int64 = 685219
	exportVantageType            = 79
	exportVantageStructure       = 6

	exportGatewayLSID      int64 = 685204
	exportGatewayType            = 507
	exportGatewayStructure       = 14
	exportGatewayPlatform  int64 = 12

	exportBarometerLSID      int64 = 685205
	exportBarometerType            = 3
	exportBarometerStructure       = 9

	exportTZOffset = 3600
)

// StationPayload is the envelope of both the /current and /historic
// WeatherLink endpoints. Sensor data blocks are decoded lazily because
// each sensor carries a different record shape.
type StationPayload struct {
	StationID     int64         `json:"station_id"`
	StationIDUUID string        `json:"station_id_uuid"`
	GeneratedAt   null.Int      `json:"generated_at"`
	Sensors       []SensorBlock `json:"sensors"`
}

// SensorBlock is one sensor's slice of a station payload.
type SensorBlock struct {
	LSID              int64             `json:"lsid"`
	SensorType        int               `json:"sensor_type"`
	DataStructureType int               `json:"data_structure_type"`
	Data              []json.RawMessage `json:"data"`
}

// vantageRecord is a raw Vantage Pro2 sample in vendor units: Fahrenheit,
// inHg, mph. The live feed carries wind_dir in degrees; the historic feed
// carries wind_dir_of_prevail as a 16-sector code.
type vantageRecord struct {
	TS                 int64       `json:"ts"`
	TZOffset           int         `json:"tz_offset"`
	Bar                null.Float  `json:"bar"`
	BarAbsolute        null.Float  `json:"bar_absolute"`
	BarTrend           null.Float  `json:"bar_trend"`
	DewPoint           null.Float  `json:"dew_point"`
	ETDay              null.Float  `json:"et_day"`
	ForecastRule       null.Int    `json:"forecast_rule"`
	ForecastDesc       null.String `json:"forecast_desc"`
	HeatIndex          null.Float  `json:"heat_index"`
	HumOut             null.Float  `json:"hum_out"`
	Rain15MinClicks    null.Int    `json:"rain_15_min_clicks"`
	Rain15MinIn        null.Float  `json:"rain_15_min_in"`
	Rain15MinMm        null.Float  `json:"rain_15_min_mm"`
	Rain60MinClicks    null.Int    `json:"rain_60_min_clicks"`
	Rain60MinIn        null.Float  `json:"rain_60_min_in"`
	Rain60MinMm        null.Float  `json:"rain_60_min_mm"`
	Rain24HrClicks     null.Int    `json:"rain_24_hr_clicks"`
	Rain24HrIn         null.Float  `json:"rain_24_hr_in"`
	Rain24HrMm         null.Float  `json:"rain_24_hr_mm"`
	RainDayClicks      null.Int    `json:"rain_day_clicks"`
	RainDayIn          null.Float  `json:"rain_day_in"`
	RainDayMm          null.Float  `json:"rain_day_mm"`
	RainRateClicks     null.Int    `json:"rain_rate_clicks"`
	RainRateIn         null.Float  `json:"rain_rate_in"`
	RainRateMm         null.Float  `json:"rain_rate_mm"`
	RainStormClicks    null.Int    `json:"rain_storm_clicks"`
	RainStormIn        null.Float  `json:"rain_storm_in"`
	RainStormMm        null.Float  `json:"rain_storm_mm"`
	RainStormStartDate null.Int    `json:"rain_storm_start_date"`
	SolarRad           null.Float  `json:"solar_rad"`
	TempOut            null.Float  `json:"temp_out"`
	THSWIndex          null.Float  `json:"thsw_index"`
	UV                 null.Float  `json:"uv"`
	WindChill          null.Float  `json:"wind_chill"`
	WindDir            null.Int    `json:"wind_dir"`
	WindDirOfPrevail   null.Int    `json:"wind_dir_of_prevail"`
	WindDirOfGust10Min null.Int    `json:"wind_dir_of_gust_10_min"`
	WindGust10Min      null.Float  `json:"wind_gust_10_min"`
	WindSpeed          null.Float  `json:"wind_speed"`
	WindSpeed2Min      null.Float  `json:"wind_speed_2_min"`
	WindSpeed10Min     null.Float  `json:"wind_speed_10_min"`
	WetBulb            null.Float  `json:"wet_bulb"`
}

// gatewayRecord is a raw Quectel gateway health sample. Everything passes
// through unconverted except inside_box_temp.
type gatewayRecord struct {
	TS                             int64       `json:"ts"`
	TZOffset                       int         `json:"tz_offset"`
	AFCSetting                     null.Int    `json:"afc_setting"`
	BeaconInterval                 null.Int    `json:"beacon_interval"`
	BluetoothFirmwareVersion       null.Int    `json:"bluetooth_firmware_version"`
	BootloaderVersion              null.Int    `json:"bootloader_version"`
	CC1310FirmwareVersion          null.Int    `json:"cc1310_firmware_version"`
	CellChannel                    null.Int    `json:"cell_channel"`
	CellID                         null.Int    `json:"cell_id"`
	Cereg                          null.String `json:"cereg"`
	CME                            null.Int    `json:"cme"`
	CRCErrors                      null.Int    `json:"crc_errors"`
	CregCgreg                      null.String `json:"creg_cgreg"`
	DavistalkRSSI                  null.Int    `json:"davistalk_rssi"`
	Elevation                      null.Float  `json:"elevation"`
	ETX                            null.Int    `json:"etx"`
	FalseWakeupCount               null.Int    `json:"false_wakeup_count"`
	FalseWakeupRSSI                null.Int    `json:"false_wakeup_rssi"`
	GoodPacketStreak               null.Int    `json:"good_packet_streak"`
	HealthVersion                  null.Int    `json:"health_version"`
	InsideBoxTemp                  null.Float  `json:"inside_box_temp"`
	ISSSolarPanelVoltage           null.Float  `json:"iss_solar_panel_voltage"`
	ISSSuperCapVoltage             null.Float  `json:"iss_super_cap_voltage"`
	ISSTransmitterBatteryVoltage   null.Float  `json:"iss_transmitter_battery_voltage"`
	LastCMEErrorTimestamp          null.Int    `json:"last_cme_error_timestamp"`
	LastGPSReadingTimestamp        null.Int    `json:"last_gps_reading_timestamp"`
	LastParentRTTPing              null.Int    `json:"last_parent_rtt_ping"`
	LastRxRSSI                     null.Int    `json:"last_rx_rssi"`
	Latitude                       null.Float  `json:"latitude"`
	LeadAcidBatteryVoltage         null.Float  `json:"lead_acid_battery_voltage"`
	LinkLayerPacketsReceived       null.Int    `json:"link_layer_packets_received"`
	LinkUptime                     null.Int    `json:"link_uptime"`
	LocationAreaCode               null.String `json:"location_area_code"`
	Longitude                      null.Float  `json:"longitude"`
	MccMnc                         null.String `json:"mcc_mnc"`
	NoiseFloorRSSI                 null.Int    `json:"noise_floor_rssi"`
	NumberOfNeighbors              null.Int    `json:"number_of_neighbors"`
	OverallAccessTechnology        null.String `json:"overall_access_technology"`
	PlatformID                     null.Int    `json:"platform_id"`
	PowerPercentageMCU             null.Int    `json:"power_percentage_mcu"`
	PowerPercentageRx              null.Int    `json:"power_percentage_rx"`
	PowerPercentageTx              null.Int    `json:"power_percentage_tx"`
	Rank                           null.Int    `json:"rank"`
	ReceptionPercent               null.Float  `json:"reception_percent"`
	Resyncs                        null.Int    `json:"resyncs"`
	RPLMode                        null.Int    `json:"rpl_mode"`
	RPLParentNodeID                null.String `json:"rpl_parent_node_id"`
	RSSI                           null.Int    `json:"rssi"`
	RxBytes                        null.Int    `json:"rx_bytes"`
	SolarPanelVoltage              null.Float  `json:"solar_panel_voltage"`
	TivaApplicationFirmwareVersion null.Int    `json:"tiva_application_firmware_version"`
	TransmitterBatteryState        null.Int    `json:"transmitter_battery_state"`
	TxBytes                        null.Int    `json:"tx_bytes"`
	Uptime                         null.Int    `json:"uptime"`
}

// barometerRecord is a raw gateway barometer sample in inHg.
type barometerRecord struct {
	TS           int64      `json:"ts"`
	TZOffset     int        `json:"tz_offset"`
	BarTrend3Hr  null.Float `json:"bar_trend_3_hr"`
	PressureLast null.Float `json:"pressure_last"`
}
