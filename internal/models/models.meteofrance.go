// FilePath: internal/models/models.meteofrance.go
package models

import (
	"time"

	"gopkg.in/guregu/null.v4"
)

// MeteoFranceObservation is one infra-hourly observation from the Météo-France
// DPObs API, stored in the provider's own units (temperatures in Kelvin).
// The composite key (geo_id_insee, reference_time) deduplicates pulls.
type MeteoFranceObservation struct {
	GeoIDInsee    string      `json:"geo_id_insee" db:"geo_id_insee"`
	ReferenceTime time.Time   `json:"reference_time" db:"reference_time"`
	InsertTime    null.Time   `json:"insert_time" db:"insert_time"`
	ValidityTime  null.Time   `json:"validity_time" db:"validity_time"`
	Lat           null.Float  `json:"lat" db:"lat"`
	Lon           null.Float  `json:"lon" db:"lon"`
	T             null.Float  `json:"t" db:"t"`
	Td            null.Float  `json:"td" db:"td"`
	U             null.Float  `json:"u" db:"u"`
	DD            null.Float  `json:"dd" db:"dd"`
	FF            null.Float  `json:"ff" db:"ff"`
	Dxi10         null.Float  `json:"dxi10" db:"dxi10"`
	Fxi10         null.Float  `json:"fxi10" db:"fxi10"`
	RRPer         null.Float  `json:"rr_per" db:"rr_per"`
	T10           null.Float  `json:"t_10" db:"t_10"`
	T20           null.Float  `json:"t_20" db:"t_20"`
	T50           null.Float  `json:"t_50" db:"t_50"`
	T100          null.Float  `json:"t_100" db:"t_100"`
	VV            null.Float  `json:"vv" db:"vv"`
	EtatSol       null.String `json:"etat_sol" db:"etat_sol"`
	SSS           null.Float  `json:"sss" db:"sss"`
	InsolH        null.Float  `json:"insolh" db:"insolh"`
	RayGlo01      null.Float  `json:"ray_glo01" db:"ray_glo01"`
	Pres          null.Float  `json:"pres" db:"pres"`
	Pmer          null.Float  `json:"pmer" db:"pmer"`
	CreatedAt     time.Time   `json:"created_at" db:"created_at"`
}
