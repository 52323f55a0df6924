package excel

import (
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestCellName(t *testing.T) {
	tests := []struct {
		row, col int
		want     string
	}{
		{0, 0, "A1"},
		{1, 12, "M2"},
		{7, 25, "Z8"},
		{9, 26, "AA10"},
		{0, 701, "ZZ1"},
		{0, 702, "AAA1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CellName(tt.row, tt.col))
	}
}

func TestValueAndRow(t *testing.T) {
	row := []string{" a ", "", "c"}
	assert.Equal(t, "a", Value(row, 0))
	assert.Equal(t, "", Value(row, 1))
	assert.Equal(t, "", Value(row, 5))
	assert.Equal(t, "", Value(row, -1))

	rows := [][]string{{"x"}, row}
	assert.Equal(t, row, Row(rows, 1))
	assert.Nil(t, Row(rows, 2))
}

func TestParseDate(t *testing.T) {
	jan6 := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want time.Time
		ok   bool
	}{
		{"45663", jan6, true},
		{"45663.75", jan6, true},
		{"2025-01-06", jan6, true},
		{"2025-01-06 13:45:00", jan6, true},
		{"2025-01-06T08:00:00", jan6, true},
		{"06/01/2025", jan6, true},
		{"", time.Time{}, false},
		{"soon", time.Time{}, false},
		{"0", time.Time{}, false},
		{"-3", time.Time{}, false},
		{"2025-02-30", time.Time{}, false},
	}
	for _, tt := range tests {
		got, ok := ParseDate(tt.raw)
		assert.Equal(t, tt.ok, ok, "ParseDate(%q)", tt.raw)
		assert.Equal(t, tt.want, got, "ParseDate(%q)", tt.raw)
	}
}

func TestParseFloat(t *testing.T) {
	for raw, want := range map[string]float64{"8": 8, " 2.5 ": 2.5, "-1": -1} {
		got, ok := ParseFloat(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []string{"", "n/a", "NaN", "Inf", "-Infinity"} {
		_, ok := ParseFloat(raw)
		assert.False(t, ok, raw)
	}
}

func TestRecords(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	cells := map[string]any{
		"A1": "Name", "B1": "Hours", "D1": "Name",
		"A2": "Alice", "B2": 7.5, "D2": "dup",
		"A4": "Bob", "C4": "note",
	}
	for cell, v := range cells {
		require.NoError(t, f.SetCellValue(sheet, cell, v))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := Records(buf.Bytes())
	require.NoError(t, err)

	want := []map[string]any{
		{"Name": "Alice", "Hours": 7.5, "Unnamed: 2": nil, "Name.1": "dup"},
		{"Name": "Bob", "Hours": nil, "Unnamed: 2": "note", "Name.1": nil},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestRecordsNonFinite(t *testing.T) {
	assert.Nil(t, cellValue("NaN"))
	assert.Nil(t, cellValue(strconv.FormatFloat(math.Inf(1), 'f', -1, 64)))
	assert.Equal(t, 3.0, cellValue("3"))
	assert.Equal(t, "x", cellValue("x"))
}

func TestRecordsEmptyWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := Records(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}
