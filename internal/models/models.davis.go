// FilePath: internal/models/models.davis.go
package models

import (
	"fmt"
	"time"

	"gopkg.in/guregu/null.v4"
)

// DavisVantagePro2 is one normalized weather record from the Vantage Pro2
// ISS. All values are metric: temperatures in Celsius, pressures in mmHg,
// speeds in km/h, lengths in mm, directions in degrees.
type DavisVantagePro2 struct {
	ID                    string      `json:"id" db:"id"`
	SensorDataStructureID string      `json:"sensor_data_structure_id" db:"sensor_data_structure_id"`
	LSID                  int64       `json:"lsid" db:"lsid"`
	SensorType            int         `json:"sensor_type" db:"sensor_type"`
	DataStructureType     int         `json:"data_structure_type" db:"data_structure_type"`
	TS                    int64       `json:"ts" db:"ts"`
	Date                  time.Time   `json:"date" db:"date"`
	TZOffset              int         `json:"tz_offset" db:"tz_offset"`
	Bar                   null.Float  `json:"bar" db:"bar"`
	BarAbsolute           null.Float  `json:"bar_absolute" db:"bar_absolute"`
	BarTrend              null.Float  `json:"bar_trend" db:"bar_trend"`
	DewPoint              null.Float  `json:"dew_point" db:"dew_point"`
	ETDay                 null.Float  `json:"et_day" db:"et_day"`
	ForecastRule          null.Int    `json:"forecast_rule" db:"forecast_rule"`
	ForecastDesc          null.String `json:"forecast_desc" db:"forecast_desc"`
	HeatIndex             null.Float  `json:"heat_index" db:"heat_index"`
	HumOut                null.Float  `json:"hum_out" db:"hum_out"`
	Rain15MinClicks       null.Int    `json:"rain_15_min_clicks" db:"rain_15_min_clicks"`
	Rain15MinIn           null.Float  `json:"rain_15_min_in" db:"rain_15_min_in"`
	Rain15MinMm           null.Float  `json:"rain_15_min_mm" db:"rain_15_min_mm"`
	Rain60MinClicks       null.Int    `json:"rain_60_min_clicks" db:"rain_60_min_clicks"`
	Rain60MinIn           null.Float  `json:"rain_60_min_in" db:"rain_60_min_in"`
	Rain60MinMm           null.Float  `json:"rain_60_min_mm" db:"rain_60_min_mm"`
	Rain24HrClicks        null.Int    `json:"rain_24_hr_clicks" db:"rain_24_hr_clicks"`
	Rain24HrIn            null.Float  `json:"rain_24_hr_in" db:"rain_24_hr_in"`
	Rain24HrMm            null.Float  `json:"rain_24_hr_mm" db:"rain_24_hr_mm"`
	RainDayClicks         null.Int    `json:"rain_day_clicks" db:"rain_day_clicks"`
	RainDayIn             null.Float  `json:"rain_day_in" db:"rain_day_in"`
	RainDayMm             null.Float  `json:"rain_day_mm" db:"rain_day_mm"`
	RainRateClicks        null.Int    `json:"rain_rate_clicks" db:"rain_rate_clicks"`
	RainRateIn            null.Float  `json:"rain_rate_in" db:"rain_rate_in"`
	RainRateMm            null.Float  `json:"rain_rate_mm" db:"rain_rate_mm"`
	RainStormClicks       null.Int    `json:"rain_storm_clicks" db:"rain_storm_clicks"`
	RainStormIn           null.Float  `json:"rain_storm_in" db:"rain_storm_in"`
	RainStormMm           null.Float  `json:"rain_storm_mm" db:"rain_storm_mm"`
	RainStormStartDate    null.Int    `json:"rain_storm_start_date" db:"rain_storm_start_date"`
	SolarRad              null.Float  `json:"solar_rad" db:"solar_rad"`
	TempOut               null.Float  `json:"temp_out" db:"temp_out"`
	THSWIndex             null.Float  `json:"thsw_index" db:"thsw_index"`
	UV                    null.Float  `json:"uv" db:"uv"`
	WindChill             null.Float  `json:"wind_chill" db:"wind_chill"`
	WindDir               null.Int    `json:"wind_dir" db:"wind_dir"`
	WindDirOfGust10Min    null.Int    `json:"wind_dir_of_gust_10_min" db:"wind_dir_of_gust_10_min"`
	WindGust10Min         null.Float  `json:"wind_gust_10_min" db:"wind_gust_10_min"`
	WindSpeed             null.Float  `json:"wind_speed" db:"wind_speed"`
	WindSpeed2Min         null.Float  `json:"wind_speed_2_min" db:"wind_speed_2_min"`
	WindSpeed10Min        null.Float  `json:"wind_speed_10_min" db:"wind_speed_10_min"`
	WetBulb               null.Float  `json:"wet_bulb" db:"wet_bulb"`
	CreatedAt             time.Time   `json:"created_at" db:"created_at"`
}

// DavisGatewayHealth is one diagnostics record from the Quectel gateway.
// Values pass through unconverted except inside_box_temp (Celsius).
type DavisGatewayHealth struct {
	ID                             string      `json:"id" db:"id"`
	SensorDataStructureID          string      `json:"sensor_data_structure_id" db:"sensor_data_structure_id"`
	LSID                           int64       `json:"lsid" db:"lsid"`
	SensorType                     int         `json:"sensor_type" db:"sensor_type"`
	DataStructureType              int         `json:"data_structure_type" db:"data_structure_type"`
	TS                             int64       `json:"ts" db:"ts"`
	Date                           time.Time   `json:"date" db:"date"`
	TZOffset                       int         `json:"tz_offset" db:"tz_offset"`
	AFCSetting                     null.Int    `json:"afc_setting" db:"afc_setting"`
	BeaconInterval                 null.Int    `json:"beacon_interval" db:"beacon_interval"`
	BluetoothFirmwareVersion       null.Int    `json:"bluetooth_firmware_version" db:"bluetooth_firmware_version"`
	BootloaderVersion              null.Int    `json:"bootloader_version" db:"bootloader_version"`
	CC1310FirmwareVersion          null.Int    `json:"cc1310_firmware_version" db:"cc1310_firmware_version"`
	CellChannel                    null.Int    `json:"cell_channel" db:"cell_channel"`
	CellID                         null.Int    `json:"cell_id" db:"cell_id"`
	Cereg                          null.String `json:"cereg" db:"cereg"`
	CME                            null.Int    `json:"cme" db:"cme"`
	CRCErrors                      null.Int    `json:"crc_errors" db:"crc_errors"`
	CregCgreg                      null.String `json:"creg_cgreg" db:"creg_cgreg"`
	DavistalkRSSI                  null.Int    `json:"davistalk_rssi" db:"davistalk_rssi"`
	Elevation                      null.Float  `json:"elevation" db:"elevation"`
	ETX                            null.Int    `json:"etx" db:"etx"`
	FalseWakeupCount               null.Int    `json:"false_wakeup_count" db:"false_wakeup_count"`
	FalseWakeupRSSI                null.Int    `json:"false_wakeup_rssi" db:"false_wakeup_rssi"`
	GoodPacketStreak               null.Int    `json:"good_packet_streak" db:"good_packet_streak"`
	HealthVersion                  null.Int    `json:"health_version" db:"health_version"`
	InsideBoxTemp                  null.Float  `json:"inside_box_temp" db:"inside_box_temp"`
	ISSSolarPanelVoltage           null.Float  `json:"iss_solar_panel_voltage" db:"iss_solar_panel_voltage"`
	ISSSuperCapVoltage             null.Float  `json:"iss_super_cap_voltage" db:"iss_super_cap_voltage"`
	ISSTransmitterBatteryVoltage   null.Float  `json:"iss_transmitter_battery_voltage" db:"iss_transmitter_battery_voltage"`
	LastCMEErrorTimestamp          null.Int    `json:"last_cme_error_timestamp" db:"last_cme_error_timestamp"`
	LastGPSReadingTimestamp        null.Int    `json:"last_gps_reading_timestamp" db:"last_gps_reading_timestamp"`
	LastParentRTTPing              null.Int    `json:"last_parent_rtt_ping" db:"last_parent_rtt_ping"`
	LastRxRSSI                     null.Int    `json:"last_rx_rssi" db:"last_rx_rssi"`
	Latitude                       null.Float  `json:"latitude" db:"latitude"`
	LeadAcidBatteryVoltage         null.Float  `json:"lead_acid_battery_voltage" db:"lead_acid_battery_voltage"`
	LinkLayerPacketsReceived       null.Int    `json:"link_layer_packets_received" db:"link_layer_packets_received"`
	LinkUptime                     null.Int    `json:"link_uptime" db:"link_uptime"`
	LocationAreaCode               null.String `json:"location_area_code" db:"location_area_code"`
	Longitude                      null.Float  `json:"longitude" db:"longitude"`
	MccMnc                         null.String `json:"mcc_mnc" db:"mcc_mnc"`
	NoiseFloorRSSI                 null.Int    `json:"noise_floor_rssi" db:"noise_floor_rssi"`
	NumberOfNeighbors              null.Int    `json:"number_of_neighbors" db:"number_of_neighbors"`
	OverallAccessTechnology        null.String `json:"overall_access_technology" db:"overall_access_technology"`
	PlatformID                     null.Int    `json:"platform_id" db:"platform_id"`
	PowerPercentageMCU             null.Int    `json:"power_percentage_mcu" db:"power_percentage_mcu"`
	PowerPercentageRx              null.Int    `json:"power_percentage_rx" db:"power_percentage_rx"`
	PowerPercentageTx              null.Int    `json:"power_percentage_tx" db:"power_percentage_tx"`
	Rank                           null.Int    `json:"rank" db:"rank"`
	ReceptionPercent               null.Float  `json:"reception_percent" db:"reception_percent"`
	Resyncs                        null.Int    `json:"resyncs" db:"resyncs"`
	RPLMode                        null.Int    `json:"rpl_mode" db:"rpl_mode"`
	RPLParentNodeID                null.String `json:"rpl_parent_node_id" db:"rpl_parent_node_id"`
	RSSI                           null.Int    `json:"rssi" db:"rssi"`
	RxBytes                        null.Int    `json:"rx_bytes" db:"rx_bytes"`
	SolarPanelVoltage              null.Float  `json:"solar_panel_voltage" db:"solar_panel_voltage"`
	TivaApplicationFirmwareVersion null.Int    `json:"tiva_application_firmware_version" db:"tiva_application_firmware_version"`
	TransmitterBatteryState        null.Int    `json:"transmitter_battery_state" db:"transmitter_battery_state"`
	TxBytes                        null.Int    `json:"tx_bytes" db:"tx_bytes"`
	Uptime                         null.Int    `json:"uptime" db:"uptime"`
	CreatedAt                      time.Time   `json:"created_at" db:"created_at"`
}

// DavisBarometer is one pressure record from the gateway barometer,
// in mmHg after conversion.
type DavisBarometer struct {
	ID                    string     `json:"id" db:"id"`
	SensorDataStructureID string     `json:"sensor_data_structure_id" db:"sensor_data_structure_id"`
	LSID                  int64      `json:"lsid" db:"lsid"`
	SensorType            int        `json:"sensor_type" db:"sensor_type"`
	DataStructureType     int        `json:"data_structure_type" db:"data_structure_type"`
	TS                    int64      `json:"ts" db:"ts"`
	Date                  time.Time  `json:"date" db:"date"`
	TZOffset              int        `json:"tz_offset" db:"tz_offset"`
	BarTrend3Hr           null.Float `json:"bar_trend_3_hr" db:"bar_trend_3_hr"`
	PressureLast          null.Float `json:"pressure_last" db:"pressure_last"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
}

// DavisStation links the three per-sensor records of one station snapshot.
// It is inserted after its leaf records so a linking row never points at
// rows that were not persisted.
type DavisStation struct {
	ID                 string      `json:"id" db:"id"`
	StationID          int64       `json:"station_id" db:"station_id"`
	StationIDUUID      string      `json:"station_id_uuid" db:"station_id_uuid"`
	GeneratedAt        null.Int    `json:"generated_at" db:"generated_at"`
	BarometerReading   null.String `json:"barometer_reading" db:"barometer_reading"`
	GatewayReading     string      `json:"gateway_reading" db:"gateway_reading"`
	VantagePro2Reading string      `json:"vantagepro2_reading" db:"vantagepro2_reading"`
	CreatedAt          time.Time   `json:"created_at" db:"created_at"`
}

// DavisMessage is a fully normalized station snapshot ready for storage.
type DavisMessage struct {
	StationID     int64               `json:"station_id"`
	StationIDUUID string              `json:"station_id_uuid"`
	GeneratedAt   null.Int            `json:"generated_at"`
	VantagePro2   *DavisVantagePro2   `json:"vantagepro2"`
	Gateway       *DavisGatewayHealth `json:"gateway"`
	Barometer     *DavisBarometer     `json:"barometer"`
}

// SensorDataStructureID identifies a sensor payload shape as
// "<sensor_type>_<data_structure_type>".
func SensorDataStructureID(sensorType, dataStructureType int) string {
	return fmt.Sprintf("%d_%d", sensorType, dataStructureType)
}
