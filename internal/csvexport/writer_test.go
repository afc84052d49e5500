package csvexport

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fmgimport/internal/domain"
	"fmgimport/internal/entity"
	"fmgimport/internal/parser"
	"fmgimport/internal/testutil"
)

func sampleTables(t *testing.T) []Table {
	t.Helper()
	m, err := entity.Build(parser.Extract(testutil.SampleMap()))
	require.NoError(t, err)
	return Tables(m)
}

func tableByName(t *testing.T, tables []Table, name string) Table {
	t.Helper()
	for _, tbl := range tables {
		if tbl.Name == name {
			return tbl
		}
	}
	t.Fatalf("table %s not found", name)
	return Table{}
}

func TestTables_Order(t *testing.T) {
	var names []string
	for _, tbl := range sampleTables(t) {
		names = append(names, tbl.Name)
	}
	assert.Equal(t, []string{"Cultures", "Countries", "Provinces", "Burgs", "Religions", "Rivers"}, names)
}

func TestTables_RowCounts(t *testing.T) {
	tables := sampleTables(t)
	assert.Len(t, tableByName(t, tables, "Cultures").Rows, testutil.SampleCultures)
	assert.Len(t, tableByName(t, tables, "Countries").Rows, testutil.SampleCountries)
	assert.Len(t, tableByName(t, tables, "Provinces").Rows, testutil.SampleProvinces)
	assert.Len(t, tableByName(t, tables, "Burgs").Rows, testutil.SampleBurgs)
	assert.Len(t, tableByName(t, tables, "Religions").Rows, testutil.SampleReligions)
	assert.Len(t, tableByName(t, tables, "Rivers").Rows, testutil.SampleRivers)
	for _, tbl := range tables {
		for _, row := range tbl.Rows {
			assert.Len(t, row, len(tbl.Columns), tbl.Name)
		}
	}
}

func TestTables_Countries(t *testing.T) {
	countries := tableByName(t, sampleTables(t), "Countries")
	assert.Equal(t, []string{
		"1", "Aldermark", "Kingdom of Aldermark", "Generic", "1.1", "#fb8072", "Alderfolk",
		"12.5", "40.25", "2", "1200", "Monarchy", "Kingdom", "1, 2", "310.5", "220.25",
	}, countries.Rows[0])
	assert.Equal(t, "1", countries.Rows[1][13])
}

func TestTables_Burgs(t *testing.T) {
	burgs := tableByName(t, sampleTables(t), "Burgs")
	assert.Equal(t, []string{
		"1", "Alder", "Aldermark", "Alderfolk", "12.345",
		"Yes", "Yes", "No", "Yes", "Yes", "No", "Yes",
		"1", "300.5", "210.25",
	}, burgs.Rows[0])
	// Sentinel references are written by name.
	assert.Equal(t, "Wildlands", burgs.Rows[1][3])
}

func TestTables_Provinces(t *testing.T) {
	provinces := tableByName(t, sampleTables(t), "Provinces")
	assert.Equal(t, []string{"1", "Alderholt", "Duchy", "Duchy of Alderholt", "#ff0000", "Aldermark", "Alder"},
		provinces.Rows[0])
	assert.Equal(t, "", provinces.Rows[1][6])
}

func TestWriteTables(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteTables(sampleTables(t)))
	w.Flush()
	require.NoError(t, w.Error())

	r := csv.NewReader(&buf)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"# Cultures"}, records[0])
	assert.Equal(t, []string{"Index", "Name", "Type", "Expansionism", "Color", "Code"}, records[1])
	assert.Equal(t, []string{"1", "Alderfolk", "Generic", "1.2", "#a6cee3", "Al"}, records[2])

	var markers []string
	for _, rec := range records {
		if len(rec) == 1 && len(rec[0]) > 2 && rec[0][:2] == "# " {
			markers = append(markers, rec[0])
		}
	}
	assert.Equal(t, []string{"# Cultures", "# Countries", "# Provinces", "# Burgs", "# Religions", "# Rivers"}, markers)
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Aldermark Map", "Aldermark_Map"},
		{"special chars", "Aldermark (v1.73) / final", "Aldermark_v1_73_final"},
		{"hyphens and underscores preserved", "my-map_2025", "my-map_2025"},
		{"consecutive underscores collapsed", "test___map", "test_map"},
		{"leading/trailing cleaned", "  hello  ", "hello"},
		{
			"long name truncated",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-extra",
			"abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrstuvwxyz-abcdefghijklmnopqrs",
		},
		{"empty", "", "map"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestBuildFilename(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	assert.Equal(t, "Aldermark_"+today+".csv", BuildFilename("Aldermark", domain.ExportFormatCSV))
	assert.Equal(t, "Aldermark_"+today+".xlsx", BuildFilename("Aldermark", domain.ExportFormatXLSX))
}
