package timesheet

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orayew2002/timetracker/domain"
	"github.com/orayew2002/timetracker/sample"
)

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func writeSheet(t *testing.T, ts sample.Timesheet) []byte {
	t.Helper()

	data, err := sample.Write(ts)
	require.NoError(t, err, "sample.Write")
	return data
}

func TestParseBytes(t *testing.T) {
	data := writeSheet(t, sample.Timesheet{
		Project: "PRJ-0001",
		Tasks: []sample.Task{
			{Description: "Build API", Assignees: "Alice, Bob", Start: date("2025-01-06"), End: date("2025-01-10"), Location: "Office", Effort: 40},
			{Description: "Filler", Assignees: "", Start: date("2025-01-06"), End: date("2025-01-06"), Effort: 1},
			{Description: "Write docs", Assignees: "Alice, none", Start: date("2025-01-09"), End: date("2025-01-14"), Effort: 10},
		},
	})

	got, err := Default().ParseBytes(data)
	require.NoError(t, err)

	api := domain.TaskRecord{Description: "Build API", Start: date("2025-01-06"), End: date("2025-01-10"), DailyEffort: 8, Location: "Office"}
	docs := domain.TaskRecord{Description: "Write docs", Start: date("2025-01-09"), End: date("2025-01-14"), DailyEffort: 2.5, Location: PlaceholderLocation}

	want := &domain.Sheet{
		Project: "PRJ-0001",
		Employees: []domain.EmployeeTasks{
			{Name: "Alice", Projects: []domain.ProjectTasks{{Code: "PRJ-0001", Tasks: []domain.TaskRecord{api, docs}}}},
			{Name: "Bob", Projects: []domain.ProjectTasks{{Code: "PRJ-0001", Tasks: []domain.TaskRecord{api}}}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseBytes() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.xlsx")
	require.NoError(t, sample.WriteToFile(sample.Timesheet{
		Project: "PRJ-0002",
		Tasks: []sample.Task{
			{Description: "Deploy", Assignees: "Carol", Start: date("2025-01-06"), End: date("2025-01-07"), Location: "Remote", Effort: 6},
		},
	}, path))

	got, err := Default().ParseFile(path)
	require.NoError(t, err)
	require.Len(t, got.Employees, 1)
	assert.Equal(t, "Carol", got.Employees[0].Name)
	assert.Equal(t, 3.0, got.Employees[0].Projects[0].Tasks[0].DailyEffort)
}

func TestParseBytesAccumulatesWarnings(t *testing.T) {
	data := writeSheet(t, sample.Timesheet{
		Project: "PRJ-0003",
		Tasks: []sample.Task{
			{Description: "", Assignees: "Alice", Start: date("2025-01-06"), End: date("2025-01-07"), Effort: 4},
			{Description: "Weekend job", Assignees: "Bob", Start: date("2025-01-11"), End: date("2025-01-12"), Effort: 8},
			{Description: "No dates", Assignees: "Bob", Effort: 8},
			{Description: "Fine", Assignees: "Carol", Start: date("2025-01-06"), End: date("2025-01-06"), Effort: 8},
		},
	})

	got, err := Default().ParseBytes(data)
	require.Nil(t, got, "no records may be emitted when any warning exists")

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Messages, 4)

	assert.Contains(t, verr.Messages[0], "PRJ-0003")
	assert.Contains(t, verr.Messages[0], PlaceholderDescription)

	assert.Contains(t, verr.Messages[1], "PRJ-0003")
	assert.Contains(t, verr.Messages[1], "Weekend job")
	assert.Contains(t, verr.Messages[1], "2025-01-11")
	assert.Contains(t, verr.Messages[1], "2025-01-12")

	assert.Contains(t, verr.Messages[2], "No dates")
	assert.Contains(t, verr.Messages[2], "start date")
	assert.Contains(t, verr.Messages[3], "No dates")
	assert.Contains(t, verr.Messages[3], "end date")
}

func TestParseBytesInvertedRange(t *testing.T) {
	data := writeSheet(t, sample.Timesheet{
		Project: "PRJ-0004",
		Tasks: []sample.Task{
			{Description: "Backwards", Assignees: "Alice", Start: date("2025-01-10"), End: date("2025-01-06"), Effort: 8},
		},
	})

	_, err := Default().ParseBytes(data)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Messages, 1)
	assert.Contains(t, verr.Messages[0], "Current start: 2025-01-10, current end: 2025-01-06")
}

func TestParseBytesMissingProject(t *testing.T) {
	data := writeSheet(t, sample.Timesheet{
		Tasks: []sample.Task{
			{Description: "Orphan", Assignees: "Alice", Start: date("2025-01-06"), End: date("2025-01-06"), Effort: 8},
		},
	})

	_, err := Default().ParseBytes(data)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Messages[0], "M2")
}

func TestParseBytesDropsFooterOnly(t *testing.T) {
	data := writeSheet(t, sample.Timesheet{Project: "PRJ-0005"})

	got, err := Default().ParseBytes(data)
	require.NoError(t, err)
	assert.Empty(t, got.Employees)
}

func TestParseBytesRejectsGarbage(t *testing.T) {
	_, err := Default().ParseBytes([]byte("not a workbook"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open from bytes")
}
