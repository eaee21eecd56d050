// FilePath: internal/campbell/parser.go

// Package campbell imports readings exported from a Campbell Scientific
// datalogger through the KonectGDS portal, as CSV or XLSX table queries.
package campbell

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/terrasense/meteohub/internal/errors"
	"github.com/terrasense/meteohub/internal/models"
	"github.com/xuri/excelize/v2"
	"gopkg.in/guregu/null.v4"
)

// Table queries export a fixed 12-column layout. Only the timestamp
// format differs between the two file types.
const (
	columnCount    = 12
	csvTimeLayout  = "2006-01-02 15:04"
	xlsxTimeLayout = "2006-01-02T15:04:05"
)

// ParseFile dispatches on the file extension.
func ParseFile(path string) ([]*models.CampbellReading, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.NewValidationError("cannot open export file", err).WithDetails(path)
		}
		defer f.Close()
		return ParseCSV(f)
	case ".xlsx":
		return ParseXLSX(path)
	default:
		return nil, errors.NewValidationError("unsupported export file type", nil).WithDetails(path)
	}
}

// ParseCSV reads a CSV table query. The first row is the header.
func ParseCSV(r io.Reader) ([]*models.CampbellReading, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return nil, errors.NewValidationError("export file has no header row", err)
	}

	var readings []*models.CampbellReading
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewValidationError("malformed export row", err)
		}
		reading, err := parseRow(record, csvTimeLayout)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

// ParseXLSX reads an XLSX table query from the first sheet.
func ParseXLSX(path string) ([]*models.CampbellReading, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.NewValidationError("cannot open export file", err).WithDetails(path)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, errors.NewValidationError("cannot read export sheet", err)
	}
	if len(rows) == 0 {
		return nil, errors.NewValidationError("export sheet is empty", nil)
	}

	var readings []*models.CampbellReading
	for _, row := range rows[1:] {
		reading, err := parseRow(row, xlsxTimeLayout)
		if err != nil {
			return nil, err
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

// parseRow decodes one export row in the fixed column order: timestamp,
// air temperature, battery voltage, pressure, dew point, sensor status,
// irradiance, panel temperature, rain total, humidity, wind direction,
// wind speed.
func parseRow(record []string, timeLayout string) (*models.CampbellReading, error) {
	if len(record) < columnCount {
		return nil, errors.NewValidationError("export row has too few columns", nil).WithDetails(record)
	}

	timestamp, err := time.Parse(timeLayout, strings.TrimSpace(record[0]))
	if err != nil {
		return nil, errors.NewValidationError("unparseable export timestamp", err).WithDetails(record[0])
	}

	reading := &models.CampbellReading{
		Timestamp:     timestamp.UTC(),
		MetSensStatus: cellString(record[5]),
	}

	floatCells := []struct {
		idx  int
		dest *null.Float
	}{
		{1, &reading.AirTempAvg},
		{2, &reading.BattVoltageAvg},
		{3, &reading.BPMbarAvg},
		{4, &reading.DewPointAvg},
		{6, &reading.MS60IrradianceAvg},
		{7, &reading.PTempAvg},
		{8, &reading.RainMmTot},
		{9, &reading.Humidity},
		{10, &reading.WindDir},
		{11, &reading.WindSpeed},
	}
	for _, fc := range floatCells {
		v, err := cellFloat(record[fc.idx])
		if err != nil {
			return nil, errors.NewValidationError("unparseable export value", err).
				WithDetails(map[string]string{"column": strconv.Itoa(fc.idx), "value": record[fc.idx]})
		}
		*fc.dest = v
	}
	return reading, nil
}

// cellFloat parses a numeric cell; empty cells mean no reading.
func cellFloat(v string) (null.Float, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return null.Float{}, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return null.Float{}, err
	}
	return null.FloatFrom(f), nil
}

func cellString(v string) null.String {
	v = strings.TrimSpace(v)
	if v == "" {
		return null.String{}
	}
	return null.StringFrom(v)
}
