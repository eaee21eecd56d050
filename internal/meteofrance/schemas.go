// FilePath: internal/meteofrance/schemas.go

// Package meteofrance pulls infra-hourly observations from the
// Météo-France DPObs public API. Values are stored in the provider's
// units; temperatures stay in Kelvin.
package meteofrance

import (
	"time"

	"github.com/terrasense/meteohub/internal/models"
	"gopkg.in/guregu/null.v4"
)

// Observation is one raw infra-hourly record as returned by the API.
type Observation struct {
	Lat           null.Float  `json:"lat"`
	Lon           null.Float  `json:"lon"`
	GeoIDInsee    string      `json:"geo_id_insee"`
	ReferenceTime string      `json:"reference_time"`
	InsertTime    string      `json:"insert_time"`
	ValidityTime  string      `json:"validity_time"`
	T             null.Float  `json:"t"`
	Td            null.Float  `json:"td"`
	U             null.Float  `json:"u"`
	DD            null.Float  `json:"dd"`
	FF            null.Float  `json:"ff"`
	Dxi10         null.Float  `json:"dxi10"`
	Fxi10         null.Float  `json:"fxi10"`
	RRPer         null.Float  `json:"rr_per"`
	T10           null.Float  `json:"t_10"`
	T20           null.Float  `json:"t_20"`
	T50           null.Float  `json:"t_50"`
	T100          null.Float  `json:"t_100"`
	VV            null.Float  `json:"vv"`
	EtatSol       null.String `json:"etat_sol"`
	SSS           null.Float  `json:"sss"`
	InsolH        null.Float  `json:"insolh"`
	RayGlo01      null.Float  `json:"ray_glo01"`
	Pres          null.Float  `json:"pres"`
	Pmer          null.Float  `json:"pmer"`
}

// toModel converts a raw observation, resolving its ISO timestamps.
func (o *Observation) toModel() (*models.MeteoFranceObservation, error) {
	referenceTime, err := time.Parse(time.RFC3339, o.ReferenceTime)
	if err != nil {
		return nil, err
	}

	obs := &models.MeteoFranceObservation{
		GeoIDInsee:    o.GeoIDInsee,
		ReferenceTime: referenceTime.UTC(),
		Lat:           o.Lat,
		Lon:           o.Lon,
		T:             o.T,
		Td:            o.Td,
		U:             o.U,
		DD:            o.DD,
		FF:            o.FF,
		Dxi10:         o.Dxi10,
		Fxi10:         o.Fxi10,
		RRPer:         o.RRPer,
		T10:           o.T10,
		T20:           o.T20,
		T50:           o.T50,
		T100:          o.T100,
		VV:            o.VV,
		EtatSol:       o.EtatSol,
		SSS:           o.SSS,
		InsolH:        o.InsolH,
		RayGlo01:      o.RayGlo01,
		Pres:          o.Pres,
		Pmer:          o.Pmer,
	}
	if ts, err := time.Parse(time.RFC3339, o.InsertTime); err == nil {
		obs.InsertTime = null.TimeFrom(ts.UTC())
	}
	if ts, err := time.Parse(time.RFC3339, o.ValidityTime); err == nil {
		obs.ValidityTime = null.TimeFrom(ts.UTC())
	}
	return obs, nil
}
