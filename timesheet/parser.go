// Package timesheet reads per-project timesheet workbooks into task records.
package timesheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/orayew2002/timetracker/domain"
	"github.com/orayew2002/timetracker/effort"
	"github.com/orayew2002/timetracker/excel"
)

const (
	// PlaceholderDescription replaces a blank task description.
	PlaceholderDescription = "No task description"
	// PlaceholderLocation replaces a blank work location.
	PlaceholderLocation = "No work location"
)

// Parser turns one timesheet workbook into a domain.Sheet.
type Parser struct {
	layout   Layout
	registry *Registry
}

// New creates a Parser for the given layout and label registry.
func New(layout Layout, registry *Registry) *Parser {
	return &Parser{layout: layout, registry: registry}
}

// Default creates a Parser for the standard timesheet.
func Default() *Parser {
	return New(DefaultLayout(), DefaultRegistry())
}

// ParseFile opens the workbook at path and parses its active sheet.
func (p *Parser) ParseFile(path string) (*domain.Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return p.parse(f)
}

// ParseBytes reads a workbook from raw bytes and parses its active sheet.
//
// Every row problem is collected; when there is at least one the result is a
// *domain.ValidationError listing them all and no records are returned.
func (p *Parser) ParseBytes(data []byte) (*domain.Sheet, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open from bytes: %w", err)
	}
	defer f.Close()

	return p.parse(f)
}

// sourceRow is a RawTaskRow plus what could not be represented in it.
type sourceRow struct {
	domain.RawTaskRow
	effortText string
	effortOK   bool
}

func (p *Parser) parse(f *excelize.File) (*domain.Sheet, error) {
	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	project, err := f.GetCellValue(sheet, p.layout.ProjectCell, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("project cell %s: %w", p.layout.ProjectCell, err)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}

	src := p.readRows(rows, strings.TrimSpace(project))

	var warn warnings
	if src.project == "" {
		warn.add("Cell %s holds no project code. Please check the sheet.", p.layout.ProjectCell)
	}

	result := &domain.Sheet{Project: src.project}
	for _, row := range src.rows {
		task := normalize(row, &warn)
		for _, name := range SplitAssignees(row.Assignees) {
			result.Add(name, row.Project, task)
		}
	}

	if err := warn.err(); err != nil {
		return nil, err
	}
	return result, nil
}

type source struct {
	project string
	rows    []sourceRow
}

// readRows extracts the data rows of the table, skipping filler rows without assignees.
func (p *Parser) readRows(rows [][]string, project string) source {
	header := clip(excel.Row(rows, p.layout.HeaderRow), p.layout.Columns)
	sub := clip(excel.Row(rows, p.layout.SubHeaderRow), p.layout.Columns)
	schema := p.registry.Resolve(ResolveHeaders(header, sub))

	var table [][]string
	for i := p.layout.FirstDataRow; i < len(rows); i++ {
		row := clip(rows[i], p.layout.Columns)
		if excel.Value(row, 0) == "" {
			continue
		}
		table = append(table, row)
	}
	if len(table) > p.layout.FooterRows {
		table = table[:len(table)-p.layout.FooterRows]
	} else {
		table = nil
	}

	out := source{project: project}
	for _, row := range table {
		assignees := excel.Value(row, schema[FieldAssignees])
		if assignees == "" {
			continue
		}

		r := sourceRow{RawTaskRow: domain.RawTaskRow{
			Project:     project,
			Description: excel.Value(row, schema[FieldDescription]),
			Location:    excel.Value(row, schema[FieldLocation]),
			Assignees:   assignees,
		}}
		if t, ok := excel.ParseDate(excel.Value(row, schema[FieldStart])); ok {
			r.Start = t
		}
		if t, ok := excel.ParseDate(excel.Value(row, schema[FieldEnd])); ok {
			r.End = t
		}

		r.effortText = excel.Value(row, schema[FieldEffort])
		r.Effort, r.effortOK = excel.ParseFloat(r.effortText)

		out.rows = append(out.rows, r)
	}

	return out
}

// normalize validates one row and distributes its effort, recording every problem in warn.
func normalize(row sourceRow, warn *warnings) domain.TaskRecord {
	desc := row.Description
	if desc == "" {
		desc = PlaceholderDescription
		warn.add("Project %s has a task without a description (recorded as %q). Please check the sheet.",
			row.Project, desc)
	}

	start, end := "", ""
	if row.Start.IsZero() {
		warn.add("Project %s, task %s: missing start date. Please check the sheet.", row.Project, desc)
	} else {
		start = row.Start.Format(domain.DateLayout)
	}
	if row.End.IsZero() {
		warn.add("Project %s, task %s: missing end date. Please check the sheet.", row.Project, desc)
	} else {
		end = row.End.Format(domain.DateLayout)
	}

	businessDays := 0
	if start != "" && end != "" {
		if span, err := effort.Count(row.Start, row.End); err == nil {
			businessDays = span.BusinessDays
		}
		if businessDays <= 0 {
			warn.add("Project %s, task %s: no working days in the planned range, it falls on a Saturday or Sunday "+
				"or ends before it starts. Please adjust the start and end dates. Current start: %s, current end: %s.",
				row.Project, desc, start, end)
		}
	}

	if !row.effortOK {
		warn.add("Project %s, task %s: QTY %q is not a number. Please check the sheet.",
			row.Project, desc, row.effortText)
	}

	location := row.Location
	if location == "" {
		location = PlaceholderLocation
	}

	return domain.TaskRecord{
		Description: desc,
		Start:       row.Start,
		End:         row.End,
		DailyEffort: effort.Daily(row.Effort, businessDays),
		Location:    location,
	}
}

// warnings accumulates validation messages in the order they are found.
type warnings struct {
	messages []string
}

func (w *warnings) add(format string, args ...any) {
	w.messages = append(w.messages, fmt.Sprintf(format, args...))
}

func (w *warnings) err() error {
	if len(w.messages) == 0 {
		return nil
	}
	return &domain.ValidationError{Messages: w.messages}
}

func clip(row []string, n int) []string {
	if len(row) > n {
		return row[:n]
	}
	return row
}
