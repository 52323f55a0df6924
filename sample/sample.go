// Package sample produces timesheet workbooks in the standard input layout.
package sample

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/bxcodec/faker/v4"

	"github.com/orayew2002/timetracker/domain"
)

// Task is one row of a timesheet. Assignees is the raw comma-separated names cell.
type Task struct {
	Description string
	Assignees   string
	Start       time.Time
	End         time.Time
	Location    string
	Effort      float64
}

// Timesheet is the content of one project's workbook.
type Timesheet struct {
	Project string
	Tasks   []Task
}

var locations = []string{"Office", "Remote", "Client site", "Factory"}

// Generate creates a timesheet for project with tasks rows spread over employees
// fake people. Every task starts on a weekday on or after from and lasts one to ten days.
func Generate(project string, employees, tasks int, from time.Time) Timesheet {
	names := make([]string, employees)
	for i := range employees {
		names[i] = faker.Name()
	}

	ts := Timesheet{Project: project, Tasks: make([]Task, tasks)}
	for i := range tasks {
		start := nextWeekday(domain.Day(from).AddDate(0, 0, rand.IntN(20)))
		end := start.AddDate(0, 0, rand.IntN(10))

		assignees := []string{names[rand.IntN(employees)]}
		if employees > 1 && rand.IntN(4) == 0 {
			assignees = append(assignees, names[rand.IntN(employees)])
		}

		ts.Tasks[i] = Task{
			Description: strings.TrimSuffix(faker.Sentence(), "."),
			Assignees:   strings.Join(assignees, ", "),
			Start:       start,
			End:         end,
			Location:    locations[rand.IntN(len(locations))],
			Effort:      float64(4 * (1 + rand.IntN(10))),
		}
	}

	return ts
}

// ProjectCode returns a code in the PRJ-0001 form.
func ProjectCode(n int) string {
	return fmt.Sprintf("PRJ-%04d", n)
}

func nextWeekday(t time.Time) time.Time {
	for domain.IsWeekend(t) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
