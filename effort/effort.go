// Package effort spreads a task's lump-sum effort over the business days it spans.
package effort

import (
	"fmt"
	"math"
	"time"

	"github.com/orayew2002/timetracker/domain"
)

// Span describes the days covered by an inclusive date range.
type Span struct {
	Days         int
	WeekendDays  int
	BusinessDays int
}

// Count returns the total, weekend and business day counts of [start, end].
func Count(start, end time.Time) (Span, error) {
	start, end = domain.Day(start), domain.Day(end)
	if start.After(end) {
		return Span{}, fmt.Errorf("count %s..%s: %w",
			start.Format(domain.DateLayout), end.Format(domain.DateLayout), domain.ErrInvalidRange)
	}

	var s Span
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		s.Days++
		if domain.IsWeekend(d) {
			s.WeekendDays++
		}
	}
	s.BusinessDays = s.Days - s.WeekendDays
	return s, nil
}

// Daily divides total evenly over businessDays, rounded to 2 decimals.
// A span without business days books nothing.
func Daily(total float64, businessDays int) float64 {
	if businessDays <= 0 {
		return 0
	}
	return Round2(total / float64(businessDays))
}

// Distribute counts the span of [start, end] and returns it together with the daily effort.
func Distribute(start, end time.Time, total float64) (Span, float64, error) {
	span, err := Count(start, end)
	if err != nil {
		return Span{}, 0, err
	}
	return span, Daily(total, span.BusinessDays), nil
}

// Project returns the cell task contributes on day: absent outside the task,
// zero on a weekend inside it, the daily effort otherwise.
func Project(task domain.TaskRecord, day time.Time) domain.Hours {
	day = domain.Day(day)
	if day.Before(domain.Day(task.Start)) || day.After(domain.Day(task.End)) {
		return domain.Hours{}
	}
	if domain.IsWeekend(day) {
		return domain.Hours{Value: 0, Valid: true}
	}
	return domain.Hours{Value: task.DailyEffort, Valid: true}
}

// Round2 rounds x half away from zero to 2 decimal places.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
