package domain

import (
	"time"
)

// DateLayout is the textual form of every calendar date the engine emits.
const DateLayout = "2006-01-02"

// StandardWorkday is the number of hours above which an employee-day counts as overwork.
const StandardWorkday = 8.0

// RawTaskRow is one data row of an input timesheet before assignee splitting
// and effort distribution. Empty strings and zero times mark missing values.
type RawTaskRow struct {
	Project     string
	Description string
	Location    string
	Start       time.Time
	End         time.Time
	Effort      float64
	Assignees   string
}

// TaskRecord is a normalized unit of work attached to one employee/project pair.
// DailyEffort is the share of the task's effort booked on each business day.
type TaskRecord struct {
	Description string    `json:"description"`
	Start       time.Time `json:"start_date"`
	End         time.Time `json:"end_date"`
	DailyEffort float64   `json:"daily_effort"`
	Location    string    `json:"location"`
}

// ProjectTasks groups the tasks of one employee under a project code.
type ProjectTasks struct {
	Code  string       `json:"project_code"`
	Tasks []TaskRecord `json:"tasks"`
}

// EmployeeTasks is everything one parsed file assigns to a single employee,
// projects in first-seen order.
type EmployeeTasks struct {
	Name     string         `json:"employee"`
	Projects []ProjectTasks `json:"projects"`
}

// Sheet is the parse result of one input file: employees in first-seen order.
type Sheet struct {
	Project   string          `json:"project"`
	Employees []EmployeeTasks `json:"employees"`
}

// Add appends task under employee name and project code, creating the groups as needed.
func (s *Sheet) Add(name, project string, task TaskRecord) {
	ei := -1
	for i := range s.Employees {
		if s.Employees[i].Name == name {
			ei = i
			break
		}
	}
	if ei < 0 {
		s.Employees = append(s.Employees, EmployeeTasks{Name: name})
		ei = len(s.Employees) - 1
	}

	emp := &s.Employees[ei]
	for i := range emp.Projects {
		if emp.Projects[i].Code == project {
			emp.Projects[i].Tasks = append(emp.Projects[i].Tasks, task)
			return
		}
	}
	emp.Projects = append(emp.Projects, ProjectTasks{Code: project, Tasks: []TaskRecord{task}})
}

// Hours is one day cell of a merged row. Valid is false when the day lies
// outside the task's span.
type Hours struct {
	Value float64
	Valid bool
}

// MergedRow is one output row. Cells is aligned index by index with the
// calendar of the Matrix the row belongs to.
type MergedRow struct {
	Seq         int
	Employee    string
	Project     string
	Description string
	Start       time.Time
	End         time.Time
	Cells       []Hours
}

// Matrix is the merged, calendar-wide table of a merge run.
type Matrix struct {
	Calendar Calendar
	Rows     []MergedRow
}

// OverworkEntry reports an employee-day whose summed hours exceed StandardWorkday.
type OverworkEntry struct {
	Employee string  `json:"employee"`
	Date     string  `json:"date_val"`
	Hours    float64 `json:"hours"`
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
