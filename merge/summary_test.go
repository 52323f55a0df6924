package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orayew2002/timetracker/domain"
	"github.com/orayew2002/timetracker/report"
	"github.com/orayew2002/timetracker/sample"
)

func TestReadSummaryForwardFillsMergedCells(t *testing.T) {
	m, err := Merge([]*domain.Sheet{
		sheet("P", employee("Alice", "P",
			task("one", "2025-01-10", "2025-01-13", 2.5),
			task("two", "2025-01-13", "2025-01-13", 4),
		)),
	}, nil)
	require.NoError(t, err)

	data, err := report.Render(m, nil)
	require.NoError(t, err)

	s, err := ReadSummary(data)
	require.NoError(t, err)

	require.Len(t, s.Rows, 2)
	assert.Equal(t, 4, s.Calendar.Len())

	second := s.Rows[1]
	assert.Equal(t, 1, second.Seq)
	assert.Equal(t, "Alice", second.Employee)
	assert.Equal(t, "P", second.Project)
	assert.Equal(t, "two", second.Description)
	assert.Equal(t, date("2025-01-13"), second.Start)

	first := s.Rows[0]
	assert.Equal(t, []domain.Hours{
		{Value: 2.5, Valid: true},
		{Value: 0, Valid: true},
		{Value: 0, Valid: true},
		{Value: 2.5, Valid: true},
	}, first.Cells)
	assert.Equal(t, []domain.Hours{{}, {}, {}, {Value: 4, Valid: true}}, second.Cells)
}

func TestReadSummaryRejectsForeignWorkbook(t *testing.T) {
	// A timesheet is not a summary: its first row has no sequence numbers.
	data, err := sample.Write(sample.Timesheet{
		Project: "P",
		Tasks:   []sample.Task{{Description: "x", Assignees: "Alice", Start: date("2025-01-06"), End: date("2025-01-06"), Effort: 1}},
	})
	require.NoError(t, err)

	_, err = ReadSummary(data)
	require.Error(t, err)
}

func TestReadSummaryEmptyWorkbook(t *testing.T) {
	data, err := report.Render(&domain.Matrix{}, nil)
	require.NoError(t, err)

	s, err := ReadSummary(data)
	require.NoError(t, err)
	assert.Empty(t, s.Rows)
	assert.Zero(t, s.Calendar.Len())
}
