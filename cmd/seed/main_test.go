package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}

	path := filepath.Join(t.TempDir(), "shops.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadShopsFromXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Name", "City", "Services", "Latitude", "Longitude", "Rating", "Opening Hours"},
		{"Makati Motors", "Makati", "Oil Change", "14.5547", "121.0244", "4.5", "8:00 AM - 5:00 PM"},
		{"No Coordinates Garage", "Cebu City", "Brakes", "", "", "", ""},
		{"", "Makati", "missing name", "", "", "", ""},
		{"makati motors", "Makati", "duplicate", "", "", "", ""},
		{"Bad Rating", "Davao City", "", "91", "200", "9", ""},
	})

	shops, err := readShopsFromXLSX(path)
	require.NoError(t, err)
	require.Len(t, shops, 3)

	assert.Equal(t, "Makati Motors", shops[0].Name)
	assert.Equal(t, "Metro Manila", shops[0].Province)
	require.NotNil(t, shops[0].Latitude)
	assert.InDelta(t, 14.5547, *shops[0].Latitude, 1e-9)
	assert.Equal(t, 4.5, shops[0].Rating)
	assert.Equal(t, "8:00 AM - 5:00 PM", shops[0].OpeningHours)

	assert.Nil(t, shops[1].Latitude)

	// out-of-range values are dropped, the row is kept
	assert.Nil(t, shops[2].Latitude)
	assert.Zero(t, shops[2].Rating)
}

func TestReadShopsRequiresColumns(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"Name", "Address"},
		{"Makati Motors", "Ayala Ave"},
	})

	_, err := readShopsFromXLSX(path)
	assert.ErrorContains(t, err, `"city"`)
}
