// Package merge unions parsed timesheets onto one calendar-wide matrix.
package merge

import (
	"fmt"
	"sort"
	"time"

	"github.com/orayew2002/timetracker/domain"
	"github.com/orayew2002/timetracker/effort"
)

// Merge places every task of sheets, together with the rows of an optional
// existing summary, on a calendar spanning the earliest to the latest day
// found in any of them. Rows are returned sorted by sequence number, employee,
// project and start date.
func Merge(sheets []*domain.Sheet, existing *Summary) (*domain.Matrix, error) {
	first, last, ok := bounds(sheets, existing)
	if !ok {
		return nil, domain.ErrNoTasks
	}
	cal := domain.NewCalendar(first, last)

	seq := newSequencer()
	var rows []domain.MergedRow

	if existing != nil {
		for _, r := range existing.Rows {
			seq.keep(r.Employee, r.Seq)
			rows = append(rows, reproject(r, existing.Calendar, cal))
		}
	}

	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		for _, emp := range sheet.Employees {
			n := seq.number(emp.Name)
			for _, project := range emp.Projects {
				for _, task := range project.Tasks {
					row, err := taskRow(n, emp.Name, project.Code, task, cal)
					if err != nil {
						return nil, fmt.Errorf("employee %s, project %s: %w", emp.Name, project.Code, err)
					}
					rows = append(rows, row)
				}
			}
		}
	}

	Sort(rows)
	return &domain.Matrix{Calendar: cal, Rows: rows}, nil
}

// Sort orders rows by sequence number, employee, project and start date, keeping
// the input order of rows that tie.
func Sort(rows []domain.MergedRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.Seq != b.Seq {
			return a.Seq < b.Seq
		}
		if a.Employee != b.Employee {
			return a.Employee < b.Employee
		}
		if a.Project != b.Project {
			return a.Project < b.Project
		}
		return a.Start.Before(b.Start)
	})
}

func taskRow(seq int, employee, project string, task domain.TaskRecord, cal domain.Calendar) (domain.MergedRow, error) {
	if task.Start.After(task.End) {
		return domain.MergedRow{}, fmt.Errorf("task %s: %w", task.Description, domain.ErrInvalidRange)
	}

	cells := make([]domain.Hours, cal.Len())
	for i, day := range cal.Days {
		cells[i] = effort.Project(task, day)
	}

	return domain.MergedRow{
		Seq:         seq,
		Employee:    employee,
		Project:     project,
		Description: task.Description,
		Start:       task.Start,
		End:         task.End,
		Cells:       cells,
	}, nil
}

// reproject moves the cells of a row laid out on from onto to. Days of to
// that from does not cover are absent.
func reproject(row domain.MergedRow, from, to domain.Calendar) domain.MergedRow {
	cells := make([]domain.Hours, to.Len())
	for i, day := range from.Days {
		if i >= len(row.Cells) {
			break
		}
		if j, ok := to.Index(day); ok {
			cells[j] = row.Cells[i]
		}
	}
	row.Cells = cells
	return row
}

// bounds returns the earliest and latest day over all tasks and the existing summary.
func bounds(sheets []*domain.Sheet, existing *Summary) (first, last time.Time, ok bool) {
	widen := func(lo, hi time.Time) {
		if !ok || lo.Before(first) {
			first = lo
		}
		if !ok || hi.After(last) {
			last = hi
		}
		ok = true
	}

	if existing != nil && existing.Calendar.Len() > 0 {
		widen(existing.Calendar.First(), existing.Calendar.Last())
	}

	for _, sheet := range sheets {
		if sheet == nil {
			continue
		}
		for _, emp := range sheet.Employees {
			for _, project := range emp.Projects {
				for _, task := range project.Tasks {
					widen(domain.Day(task.Start), domain.Day(task.End))
				}
			}
		}
	}

	return first, last, ok
}

// sequencer hands out per-employee ordinals in first-seen order.
type sequencer struct {
	byName map[string]int
	next   int
}

func newSequencer() *sequencer {
	return &sequencer{byName: make(map[string]int), next: 1}
}

// keep records a number already assigned to name, e.g. by an existing summary.
func (s *sequencer) keep(name string, n int) {
	if _, ok := s.byName[name]; !ok {
		s.byName[name] = n
	}
	if n >= s.next {
		s.next = n + 1
	}
}

func (s *sequencer) number(name string) int {
	if n, ok := s.byName[name]; ok {
		return n
	}
	n := s.next
	s.byName[name] = n
	s.next++
	return n
}
