// FilePath: internal/davis/export.go
package davis

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/models"
	"github.com/terrasense/meteohub/internal/units"
	"golang.org/x/text/encoding/charmap"
	"gopkg.in/guregu/null.v4"
)

// exportTimeLayout is the timestamp format of WeatherLink desktop exports.
const exportTimeLayout = "01/02/2006 15:04"

// Export column headers. The desktop software writes values already in
// metric units, so no unit conversion applies except compass directions.
const (
	colDateTime      = "Date & Time"
	colBarometer     = "Barometer - mm Hg"
	colDewPoint      = "Dew Point - °C"
	colET            = "ET - mm"
	colHeatIndex     = "Heat Index - °C"
	colHumidity      = "Hum - %"
	colRainRate      = "Rain Rate - mm/h"
	colSolarRad      = "Solar Rad - W/m^2"
	colTemp          = "Temp - °C"
	colTHSWIndex     = "THSW Index - °C"
	colUVIndex       = "UV Index"
	colWindChill     = "Wind Chill - °C"
	colWindDir       = "Wind Direction"
	colHighWindDir   = "High Wind Direction"
	colHighWindSpeed = "High Wind Speed - km/h"
	colWindSpeed     = "Wind Speed - km/h"
	colWetBulb       = "Wet Bulb - °C"
)

// ExportIdentity carries the station identity stamped onto every row of
// an export file, which has no station metadata of its own.
type ExportIdentity struct {
	StationID   int64
	StationUUID string
}

// ExportRow is one record of an export file keyed by column header.
type ExportRow map[string]string

// ParseExport reads a WeatherLink desktop CSV export (Latin-1 encoded)
// and returns one storable message per row.
func ParseExport(r io.Reader, identity ExportIdentity) ([]*models.DavisMessage, error) {
	reader := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(r))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewValidationError("export file has no header row", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var messages []*models.DavisMessage
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewValidationError("malformed export row", err)
		}

		row := make(ExportRow, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = strings.TrimSpace(record[i])
			}
		}

		msg, err := ExportRowToMessage(row, identity)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// ExportRowToMessage normalizes one export row into a storable message.
// The gateway part carries identity fields only, since exports contain no
// health diagnostics.
func ExportRowToMessage(row ExportRow, identity ExportIdentity) (*models.DavisMessage, error) {
	parsed, err := time.Parse(exportTimeLayout, row[colDateTime])
	if err != nil {
		return nil, errors.NewValidationError("unparseable export timestamp", err).
			WithDetails(row[colDateTime])
	}
	ts := parsed.Unix()
	date := parsed.UTC()

	windDir, err := units.CompassPointToDegrees(exportString(row[colWindDir]))
	if err != nil {
		return nil, errors.NewValidationError("unresolvable wind direction", err)
	}
	highWindDir, err := units.CompassPointToDegrees(exportString(row[colHighWindDir]))
	if err != nil {
		return nil, errors.NewValidationError("unresolvable gust wind direction", err)
	}

	barometer, err := exportFloat(row[colBarometer])
	if err != nil {
		return nil, err
	}

	vantage := &models.DavisVantagePro2{
		SensorDataStructureID: models.SensorDataStructureID(exportVantageType, exportVantageStructure),
		LSID:                  exportVantageLSID,
		SensorType:            exportVantageType,
		DataStructureType:     exportVantageStructure,
		TS:                    ts,
		Date:                  date,
		TZOffset:              exportTZOffset,
		Bar:                   barometer,
		BarAbsolute:           barometer,
		WindDir:               windDir,
		WindDirOfGust10Min:    highWindDir,
	}

	floatCols := []struct {
		col  string
		dest *null.Float
	}{
		{colDewPoint, &vantage.DewPoint},
		{colET, &vantage.ETDay},
		{colHeatIndex, &vantage.HeatIndex},
		{colHumidity, &vantage.HumOut},
		{colRainRate, &vantage.RainRateMm},
		{colSolarRad, &vantage.SolarRad},
		{colTemp, &vantage.TempOut},
		{colTHSWIndex, &vantage.THSWIndex},
		{colUVIndex, &vantage.UV},
		{colWindChill, &vantage.WindChill},
		{colHighWindSpeed, &vantage.WindGust10Min},
		{colWindSpeed, &vantage.WindSpeed},
		{colWetBulb, &vantage.WetBulb},
	}
	for _, fc := range floatCols {
		v, err := exportFloat(row[fc.col])
		if err != nil {
			return nil, errors.NewValidationError("unparseable export value", err).
				WithDetails(map[string]string{"column": fc.col, "value": row[fc.col]})
		}
		*fc.dest = v
	}

	gateway := &models.DavisGatewayHealth{
		SensorDataStructureID: models.SensorDataStructureID(exportGatewayType, exportGatewayStructure),
		LSID:                  exportGatewayLSID,
		SensorType:            exportGatewayType,
		DataStructureType:     exportGatewayStructure,
		TS:                    ts,
		Date:                  date,
		TZOffset:              exportTZOffset,
		PlatformID:            null.IntFrom(exportGatewayPlatform),
	}

	barometerMsg := &models.DavisBarometer{
		SensorDataStructureID: models.SensorDataStructureID(exportBarometerType, exportBarometerStructure),
		LSID:                  exportBarometerLSID,
		SensorType:            exportBarometerType,
		DataStructureType:     exportBarometerStructure,
		TS:                    ts,
		Date:                  date,
		TZOffset:              exportTZOffset,
		PressureLast:          barometer,
	}

	return &models.DavisMessage{
		StationID:     identity.StationID,
		StationIDUUID: identity.StationUUID,
		GeneratedAt:   null.IntFrom(ts),
		VantagePro2:   vantage,
		Gateway:       gateway,
		Barometer:     barometerMsg,
	}, nil
}

// exportFloat parses a numeric export cell. Empty cells, the "--" sentinel
// and NaN values all mean the logger had no reading.
func exportFloat(v string) (null.Float, error) {
	if v == "" || v == "--" {
		return null.Float{}, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return null.Float{}, err
	}
	if math.IsNaN(f) {
		return null.Float{}, nil
	}
	return null.FloatFrom(f), nil
}

func exportString(v string) null.String {
	if v == "" || v == "--" {
		return null.String{}
	}
	return null.StringFrom(v)
}
