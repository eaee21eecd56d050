// FilePath: internal/campbell/parser_test.go
package campbell

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const csvHeader = "TIMESTAMP,AirTemp_Avg,BattVoltage_Avg,BP_mbar_Avg,DewPoint_Avg," +
	"MetSensStatus,MS60_Irradiance_Avg,PTemp_Avg,Rain_mm_Tot,Humidity,WindDir,WindSpeed"

func TestParseCSV(t *testing.T) {
	body := csvHeader + "\n" +
		"2024-01-15 10:00,4.21,12.65,1013.2,1.8,OK,120.5,6.0,0.2,82.1,198,3.4\n" +
		"2024-01-15 11:00,4.58,12.64,1012.8,2.0,OK,140.1,6.3,0.0,81.0,204,2.9\n"

	readings, err := ParseCSV(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, readings, 2)

	first := readings[0]
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), first.Timestamp)
	assert.Equal(t, 4.21, first.AirTempAvg.Float64)
	assert.Equal(t, 12.65, first.BattVoltageAvg.Float64)
	assert.Equal(t, 1013.2, first.BPMbarAvg.Float64)
	assert.Equal(t, 1.8, first.DewPointAvg.Float64)
	assert.Equal(t, "OK", first.MetSensStatus.String)
	assert.Equal(t, 120.5, first.MS60IrradianceAvg.Float64)
	assert.Equal(t, 6.0, first.PTempAvg.Float64)
	assert.Equal(t, 0.2, first.RainMmTot.Float64)
	assert.Equal(t, 82.1, first.Humidity.Float64)
	assert.Equal(t, 198.0, first.WindDir.Float64)
	assert.Equal(t, 3.4, first.WindSpeed.Float64)

	assert.Equal(t, time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC), readings[1].Timestamp)
}

func TestParseCSVEmptyCellsMeanNoReading(t *testing.T) {
	body := csvHeader + "\n" +
		"2024-01-15 10:00,4.21,12.65,,1.8,,120.5,6.0,0.2,82.1,,3.4\n"

	readings, err := ParseCSV(strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, readings, 1)

	assert.False(t, readings[0].BPMbarAvg.Valid)
	assert.False(t, readings[0].MetSensStatus.Valid)
	assert.False(t, readings[0].WindDir.Valid)
	assert.True(t, readings[0].AirTempAvg.Valid)
}

func TestParseCSVRejectsShortRow(t *testing.T) {
	body := csvHeader + "\n2024-01-15 10:00,4.21,12.65\n"

	_, err := ParseCSV(strings.NewReader(body))
	assert.Error(t, err)
}

func TestParseCSVRejectsBadTimestamp(t *testing.T) {
	body := csvHeader + "\n15/01/2024 10:00,4.21,12.65,1013.2,1.8,OK,120.5,6.0,0.2,82.1,198,3.4\n"

	_, err := ParseCSV(strings.NewReader(body))
	assert.Error(t, err)
}

func TestParseCSVRejectsBadNumber(t *testing.T) {
	body := csvHeader + "\n2024-01-15 10:00,not-a-number,12.65,1013.2,1.8,OK,120.5,6.0,0.2,82.1,198,3.4\n"

	_, err := ParseCSV(strings.NewReader(body))
	assert.Error(t, err)
}

func writeXLSXExport(t *testing.T, rows ...[]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{
		"TIMESTAMP", "AirTemp_Avg", "BattVoltage_Avg", "BP_mbar_Avg", "DewPoint_Avg",
		"MetSensStatus", "MS60_Irradiance_Avg", "PTemp_Avg", "Rain_mm_Tot", "Humidity",
		"WindDir", "WindSpeed",
	}))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "station_hourly.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestParseXLSX(t *testing.T) {
	path := writeXLSXExport(t,
		[]interface{}{"2024-01-15T10:00:00", "4.21", "12.65", "1013.2", "1.8", "OK", "120.5", "6.0", "0.2", "82.1", "198", "3.4"},
		[]interface{}{"2024-01-15T11:00:00", "4.58", "12.64", "1012.8", "2.0", "", "140.1", "6.3", "0.0", "81.0", "204", "2.9"},
	)

	readings, err := ParseFile(path)
	require.NoError(t, err)
	require.Len(t, readings, 2)

	first := readings[0]
	assert.Equal(t, time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC), first.Timestamp)
	assert.Equal(t, 4.21, first.AirTempAvg.Float64)
	assert.Equal(t, 1013.2, first.BPMbarAvg.Float64)
	assert.Equal(t, "OK", first.MetSensStatus.String)
	assert.Equal(t, 120.5, first.MS60IrradianceAvg.Float64)
	assert.Equal(t, 198.0, first.WindDir.Float64)
	assert.Equal(t, 3.4, first.WindSpeed.Float64)

	assert.Equal(t, time.Date(2024, 1, 15, 11, 0, 0, 0, time.UTC), readings[1].Timestamp)
	assert.False(t, readings[1].MetSensStatus.Valid)
}

func TestParseXLSXRejectsCSVTimestampLayout(t *testing.T) {
	path := writeXLSXExport(t,
		[]interface{}{"2024-01-15 10:00", "4.21", "12.65", "1013.2", "1.8", "OK", "120.5", "6.0", "0.2", "82.1", "198", "3.4"},
	)

	_, err := ParseFile(path)
	assert.Error(t, err)
}

func TestParseFileRejectsUnknownExtension(t *testing.T) {
	_, err := ParseFile("export.pdf")
	assert.Error(t, err)
}
