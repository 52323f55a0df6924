// Package report renders a merged timesheet matrix as a styled workbook.
package report

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/orayew2002/timetracker/domain"
	"github.com/orayew2002/timetracker/excel"
	"github.com/orayew2002/timetracker/overwork"
)

// SheetName is the name of the only sheet of a report.
const SheetName = "Sheet1"

// MergedColumns is the number of leading identity columns whose repeated
// values are merged vertically.
const MergedColumns = 3

// columnDef describes one identity column: header, value extractor and width.
type columnDef struct {
	header string
	value  func(r domain.MergedRow) string
	width  float64
}

// columns defines the identity columns in order; day columns follow them.
var columns = []columnDef{
	{header: "No", value: func(r domain.MergedRow) string { return strconv.Itoa(r.Seq) }, width: 6},
	{header: "Employee", value: func(r domain.MergedRow) string { return r.Employee }, width: 28},
	{header: "Project", value: func(r domain.MergedRow) string { return r.Project }, width: 16},
	{header: "Description", value: func(r domain.MergedRow) string { return r.Description }, width: 40},
	{header: "Start", value: func(r domain.MergedRow) string { return r.Start.Format(domain.DateLayout) }, width: 12},
	{header: "End", value: func(r domain.MergedRow) string { return r.End.Format(domain.DateLayout) }, width: 12},
}

// Headers returns the header row of a report for calendar cal.
func Headers(cal domain.Calendar) []string {
	headers := make([]string, 0, len(columns)+cal.Len())
	for _, c := range columns {
		headers = append(headers, c.header)
	}
	return append(headers, cal.Labels()...)
}

// Render writes m to a new workbook and returns it as bytes. Day cells of
// employee-days listed in flagged are highlighted even when the cell itself
// stays within a workday.
func Render(m *domain.Matrix, flagged []domain.OverworkEntry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := write(f, m, overwork.NewIndex(flagged)); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write to buffer: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderFile writes m to a workbook at path.
func RenderFile(m *domain.Matrix, flagged []domain.OverworkEntry, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := write(f, m, overwork.NewIndex(flagged)); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}

	return nil
}

func write(f *excelize.File, m *domain.Matrix, idx overwork.Index) error {
	sheet := f.GetSheetName(0)
	if sheet != SheetName {
		if err := f.SetSheetName(sheet, SheetName); err != nil {
			return fmt.Errorf("rename sheet: %w", err)
		}
	}

	sm := NewStyleManager(f)

	if err := writeHeader(f, sm, m.Calendar); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range m.Rows {
		if err := writeRow(f, sm, i+1, row, m.Calendar, idx); err != nil {
			return fmt.Errorf("row %d (%s): %w", i+1, row.Employee, err)
		}
	}

	if err := mergeRuns(f, m.Rows); err != nil {
		return fmt.Errorf("merge cells: %w", err)
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	return setWidths(f, m.Calendar)
}

func writeHeader(f *excelize.File, sm *StyleManager, cal domain.Calendar) error {
	headerStyle, err := sm.Header()
	if err != nil {
		return err
	}
	weekendStyle, err := sm.WeekendHeader()
	if err != nil {
		return err
	}

	for col, label := range Headers(cal) {
		cell := excel.CellName(0, col)
		if err := f.SetCellStr(SheetName, cell, label); err != nil {
			return fmt.Errorf("cell %s: %w", cell, err)
		}

		style := headerStyle
		if d := col - len(columns); d >= 0 && domain.IsWeekend(cal.Days[d]) {
			style = weekendStyle
		}
		if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
			return fmt.Errorf("style %s: %w", cell, err)
		}
	}

	return nil
}

func writeRow(f *excelize.File, sm *StyleManager, row int, r domain.MergedRow, cal domain.Calendar, idx overwork.Index) error {
	identity, err := sm.Identity()
	if err != nil {
		return err
	}

	for c, def := range columns {
		cell := excel.CellName(row, c)
		if c == 0 {
			err = f.SetCellInt(SheetName, cell, int64(r.Seq))
		} else {
			err = f.SetCellStr(SheetName, cell, def.value(r))
		}
		if err != nil {
			return fmt.Errorf("col %d: %w", c, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, identity); err != nil {
			return fmt.Errorf("style col %d: %w", c, err)
		}
	}

	for d, day := range cal.Days {
		cell := excel.CellName(row, len(columns)+d)

		var h domain.Hours
		if d < len(r.Cells) {
			h = r.Cells[d]
		}

		style, err := dayStyle(sm, h, idx.Flagged(r.Employee, day))
		if err != nil {
			return fmt.Errorf("day %s style: %w", day.Format(domain.DateLayout), err)
		}

		if h.Valid {
			if err := f.SetCellFloat(SheetName, cell, h.Value, -1, 64); err != nil {
				return fmt.Errorf("day %s: %w", day.Format(domain.DateLayout), err)
			}
		}
		if err := f.SetCellStyle(SheetName, cell, cell, style); err != nil {
			return fmt.Errorf("day %s style: %w", day.Format(domain.DateLayout), err)
		}
	}

	return nil
}

// dayStyle picks the fill of a day cell: above a workday on its own, then part
// of an overworked employee-day, then below a workday.
func dayStyle(sm *StyleManager, h domain.Hours, flagged bool) (int, error) {
	switch {
	case !h.Valid:
		return sm.Day()
	case h.Value > domain.StandardWorkday:
		return sm.Overwork()
	case flagged:
		return sm.OverworkWarning()
	case h.Value < domain.StandardWorkday:
		return sm.Normal()
	default:
		return sm.Day()
	}
}

// mergeRuns merges consecutive equal values in each of the first MergedColumns
// columns into one cell spanning the run.
func mergeRuns(f *excelize.File, rows []domain.MergedRow) error {
	for c := range MergedColumns {
		value := columns[c].value
		start := 0
		for i := 1; i <= len(rows); i++ {
			if i < len(rows) && value(rows[i]) == value(rows[start]) {
				continue
			}
			if i-1 > start {
				top := excel.CellName(start+1, c)
				bottom := excel.CellName(i, c)
				if err := f.MergeCell(SheetName, top, bottom); err != nil {
					return fmt.Errorf("%s:%s: %w", top, bottom, err)
				}
			}
			start = i
		}
	}
	return nil
}

func setWidths(f *excelize.File, cal domain.Calendar) error {
	for c, def := range columns {
		name := excel.IndexToColumn(c)
		if err := f.SetColWidth(SheetName, name, name, def.width); err != nil {
			return fmt.Errorf("col %s width: %w", name, err)
		}
	}
	if cal.Len() == 0 {
		return nil
	}

	first := excel.IndexToColumn(len(columns))
	last := excel.IndexToColumn(len(columns) + cal.Len() - 1)
	if err := f.SetColWidth(SheetName, first, last, 11); err != nil {
		return fmt.Errorf("day col width: %w", err)
	}
	return nil
}
