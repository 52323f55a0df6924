package excel

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// Records reads the active sheet of a workbook and returns one map per data row,
// keyed by the header row. Every column up to the widest row gets a key, so no
// cell is lost to a short or blank header. Numeric cells become float64, blank
// cells and non-finite numbers become nil, everything else stays a string.
func Records(data []byte) ([]map[string]any, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open from bytes: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}

	records := []map[string]any{}
	if len(rows) == 0 {
		return records, nil
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}

	header := headerNames(rows[0], width)
	for _, row := range rows[1:] {
		if blankRow(row) {
			continue
		}
		rec := make(map[string]any, len(header))
		for col, name := range header {
			rec[name] = cellValue(Value(row, col))
		}
		records = append(records, rec)
	}

	return records, nil
}

// headerNames names blank or repeated header cells the way spreadsheet
// importers usually do ("Unnamed: 3", "Name.1").
func headerNames(row []string, width int) []string {
	names := make([]string, width)
	seen := make(map[string]int, width)
	for col := range width {
		name := Value(row, col)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(col)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			seen[name] = 0
		}
		names[col] = name
	}
	return names
}

func cellValue(raw string) any {
	if raw == "" {
		return nil
	}
	if v, err := strconv.ParseFloat(raw, 64); err == nil {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		return v
	}
	return raw
}

func blankRow(row []string) bool {
	for col := range row {
		if Value(row, col) != "" {
			return false
		}
	}
	return true
}
