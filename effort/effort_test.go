package effort

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orayew2002/timetracker/domain"
)

func date(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCount(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       Span
	}{
		{"work week", "2025-01-06", "2025-01-10", Span{Days: 5, WeekendDays: 0, BusinessDays: 5}},
		{"weekend only", "2025-01-11", "2025-01-12", Span{Days: 2, WeekendDays: 2, BusinessDays: 0}},
		{"single monday", "2025-01-06", "2025-01-06", Span{Days: 1, WeekendDays: 0, BusinessDays: 1}},
		{"friday to monday", "2025-01-10", "2025-01-13", Span{Days: 4, WeekendDays: 2, BusinessDays: 2}},
		{"two weeks", "2025-01-06", "2025-01-19", Span{Days: 14, WeekendDays: 4, BusinessDays: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Count(date(tt.start), date(tt.end))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got.Days-got.WeekendDays, got.BusinessDays)
		})
	}
}

func TestCountRejectsInvertedRange(t *testing.T) {
	_, err := Count(date("2025-01-10"), date("2025-01-06"))
	require.ErrorIs(t, err, domain.ErrInvalidRange)
}

func TestDistributeReconstructsTotal(t *testing.T) {
	tests := []struct {
		start, end string
		total      float64
	}{
		{"2025-01-06", "2025-01-10", 40},
		{"2025-01-06", "2025-01-08", 10},
		{"2025-01-03", "2025-01-14", 17.5},
		{"2025-01-01", "2025-01-31", 100},
		{"2025-02-28", "2025-03-03", 3},
	}

	for _, tt := range tests {
		span, daily, err := Distribute(date(tt.start), date(tt.end), tt.total)
		require.NoError(t, err)
		require.Positive(t, span.BusinessDays)

		// Each business day is off by at most half a cent after rounding.
		tolerance := 0.005*float64(span.BusinessDays) + 1e-9
		assert.LessOrEqual(t, math.Abs(daily*float64(span.BusinessDays)-tt.total), math.Max(tolerance, 0.01),
			"%s..%s total %v", tt.start, tt.end, tt.total)
	}
}

func TestDistributeWorkWeek(t *testing.T) {
	span, daily, err := Distribute(date("2025-01-06"), date("2025-01-10"), 40)
	require.NoError(t, err)
	assert.Equal(t, 5, span.BusinessDays)
	assert.Equal(t, 8.0, daily)
}

func TestDailyWithoutBusinessDays(t *testing.T) {
	assert.Equal(t, 0.0, Daily(16, 0))
	assert.Equal(t, 0.0, Daily(16, -3))
}

func TestDailyRoundsHalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 3.33, Daily(10, 3))
	assert.Equal(t, 6.67, Daily(20, 3))
	assert.Equal(t, 0.13, Round2(0.125))
	assert.Equal(t, -0.13, Round2(-0.125))
}

func TestProject(t *testing.T) {
	task := domain.TaskRecord{Start: date("2025-01-09"), End: date("2025-01-13"), DailyEffort: 4}

	tests := []struct {
		day  string
		want domain.Hours
	}{
		{"2025-01-08", domain.Hours{}},
		{"2025-01-09", domain.Hours{Value: 4, Valid: true}},
		{"2025-01-10", domain.Hours{Value: 4, Valid: true}},
		{"2025-01-11", domain.Hours{Value: 0, Valid: true}},
		{"2025-01-12", domain.Hours{Value: 0, Valid: true}},
		{"2025-01-13", domain.Hours{Value: 4, Valid: true}},
		{"2025-01-14", domain.Hours{}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Project(task, date(tt.day)), tt.day)
	}
}
