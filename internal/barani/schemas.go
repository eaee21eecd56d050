// FilePath: internal/barani/schemas.go

// Package barani ingests webhook messages pushed by Barani MeteoHelix
// all-in-one stations and MeteoWind anemometers.
package barani

import (
	"gopkg.in/guregu/null.v4"
)

// HelixMessage is the raw webhook body of a MeteoHelix station. Field
// names follow the vendor's payload keys.
type HelixMessage struct {
	Time            string     `json:"time" validate:"required"`
	SerialNumber    string     `json:"sn" validate:"required"`
	Rain            null.Float `json:"Rain"`
	Battery         null.Float `json:"Battery"`
	DewPoint        null.Float `json:"DewPoint"`
	Humidity        null.Float `json:"Humidity"`
	Pressure        null.Float `json:"Pressure"`
	Irradiation     null.Float `json:"Irradiation"`
	Temperature     null.Float `json:"Temperature"`
	RainfallRateMax null.Float `json:"Rainfall_rate_max"`
	WetBulb         null.Float `json:"Temperature_wetbulb_stull2011_C"`
}

// WindMessage is the raw webhook body of a MeteoWind sensor.
type WindMessage struct {
	Time         string     `json:"time" validate:"required"`
	SerialNumber string     `json:"sn" validate:"required"`
	Battery      null.Float `json:"Battery"`
	WdirAvg10    null.Float `json:"Wdir_Avg10"`
	WdirMax10    null.Float `json:"Wdir_Max10"`
	WdirMin10    null.Float `json:"Wdir_Min10"`
	WindAvg10    null.Float `json:"Wind_Avg10"`
	WindMax10    null.Float `json:"Wind_Max10"`
	WindMin10    null.Float `json:"Wind_Min10"`
	WdirGust10   null.Float `json:"Wdir_Gust10"`
	WdirStdev10  null.Float `json:"Wdir_Stdev10"`
	WindStdev10  null.Float `json:"Wind_Stdev10"`
}
