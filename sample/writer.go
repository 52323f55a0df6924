package sample

import (
	"fmt"
	"time"

	excelize "github.com/xuri/excelize/v2"

	"github.com/orayew2002/timetracker/excel"
)

// Header rows of the input layout. A blank header cell continues the one on its left.
var (
	headers = []string{
		"No", "Task description", "Category", "Assignee", "Role",
		"Plan", "", "Work location", "QTY", "Actual", "", "Status", "Note",
	}
	subHeaders = []string{
		"", "", "", "", "",
		"From", "To", "", "", "From", "To", "", "#REF!",
	}
)

// Rows of the input layout, 0-based.
const (
	projectRow   = 1
	projectCol   = 12
	headerRow    = 6
	subHeaderRow = 7
	firstDataRow = 8
)

// WriteToFile renders ts and saves it to path.
func WriteToFile(ts Timesheet, path string) error {
	f, err := build(ts)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}

// Write renders ts as a workbook and returns it as bytes.
func Write(ts Timesheet) ([]byte, error) {
	f, err := build(ts)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}

	return buf.Bytes(), nil
}

func build(ts Timesheet) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	if err := f.SetCellStr(sheet, excel.CellName(projectRow, projectCol), ts.Project); err != nil {
		f.Close()
		return nil, fmt.Errorf("write project: %w", err)
	}

	if err := writeHeaders(f, sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("write headers: %w", err)
	}

	if err := writeRows(f, sheet, ts.Tasks); err != nil {
		f.Close()
		return nil, fmt.Errorf("write rows: %w", err)
	}

	if err := autoFitColumns(f, sheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("auto fit columns: %w", err)
	}

	return f, nil
}

func writeHeaders(f *excelize.File, sheet string) error {
	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return err
	}

	for row, values := range map[int][]string{headerRow: headers, subHeaderRow: subHeaders} {
		for col, header := range values {
			if header == "" {
				continue
			}
			cell := excel.CellName(row, col)
			if err := f.SetCellStr(sheet, cell, header); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
				return err
			}
		}
	}

	return nil
}

func writeRows(f *excelize.File, sheet string, tasks []Task) error {
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return err
	}

	total := 0.0
	for i, task := range tasks {
		row := firstDataRow + i
		values := []any{
			i + 1,
			task.Description,
			"Development",
			task.Assignees,
			"",
			dateValue(task.Start),
			dateValue(task.End),
			task.Location,
			task.Effort,
		}
		for col, val := range values {
			if val == nil || val == "" {
				continue
			}
			cell := excel.CellName(row, col)
			if err := f.SetCellValue(sheet, cell, val); err != nil {
				return fmt.Errorf("task %d, col %d: %w", i+1, col, err)
			}
		}
		for _, col := range []int{5, 6} {
			cell := excel.CellName(row, col)
			if err := f.SetCellStyle(sheet, cell, cell, dateStyle); err != nil {
				return fmt.Errorf("task %d, date style: %w", i+1, err)
			}
		}
		total += task.Effort
	}

	footer := firstDataRow + len(tasks)
	if err := f.SetCellStr(sheet, excel.CellName(footer, 0), "Total"); err != nil {
		return fmt.Errorf("footer label: %w", err)
	}
	if err := f.SetCellFloat(sheet, excel.CellName(footer, 8), total, -1, 64); err != nil {
		return fmt.Errorf("footer total: %w", err)
	}

	return nil
}

// dateValue leaves the cell blank for a missing date.
func dateValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

func autoFitColumns(f *excelize.File, sheet string) error {
	widths := []float64{5, 40, 14, 30, 10, 12, 12, 16, 8, 12, 12, 10, 14}
	for col, w := range widths {
		colName := excel.IndexToColumn(col)
		if err := f.SetColWidth(sheet, colName, colName, w); err != nil {
			return err
		}
	}
	return nil
}
