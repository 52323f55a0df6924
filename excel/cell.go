package excel

import (
	"fmt"
	"strings"
)

// CellName converts 0-based row and column indices to an Excel cell reference (e.g. 0,0 → "A1").
func CellName(row, col int) string {
	return fmt.Sprintf("%s%d", IndexToColumn(col), row+1)
}

// IndexToColumn converts a 0-based column index to Excel column letters (0→A, 25→Z, 26→AA).
func IndexToColumn(n int) string {
	result := ""
	for n >= 0 {
		result = string(rune('A'+(n%26))) + result
		n = n/26 - 1
	}
	return result
}

// Value returns the trimmed cell at col, or "" when the row is shorter.
// GetRows drops trailing empty cells, so short rows are normal.
func Value(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// Row returns the 0-based row at index, or nil when the sheet has fewer rows.
func Row(rows [][]string, index int) []string {
	if index < 0 || index >= len(rows) {
		return nil
	}
	return rows[index]
}
