package domain

import "time"

// Calendar is a gap-free, ascending sequence of days.
type Calendar struct {
	Days []time.Time
}

// NewCalendar builds the inclusive day sequence from first to last.
// It returns an empty calendar when last precedes first.
func NewCalendar(first, last time.Time) Calendar {
	first, last = Day(first), Day(last)
	if last.Before(first) {
		return Calendar{}
	}

	n := int(last.Sub(first).Hours()/24) + 1
	days := make([]time.Time, n)
	for i := range n {
		days[i] = first.AddDate(0, 0, i)
	}
	return Calendar{Days: days}
}

// Len returns the number of days on the calendar.
func (c Calendar) Len() int { return len(c.Days) }

// First returns the earliest day, or the zero time for an empty calendar.
func (c Calendar) First() time.Time {
	if len(c.Days) == 0 {
		return time.Time{}
	}
	return c.Days[0]
}

// Last returns the latest day, or the zero time for an empty calendar.
func (c Calendar) Last() time.Time {
	if len(c.Days) == 0 {
		return time.Time{}
	}
	return c.Days[len(c.Days)-1]
}

// Index returns the position of day t on the calendar.
func (c Calendar) Index(t time.Time) (int, bool) {
	if len(c.Days) == 0 {
		return 0, false
	}
	i := int(Day(t).Sub(c.Days[0]).Hours() / 24)
	if i < 0 || i >= len(c.Days) {
		return 0, false
	}
	return i, true
}

// Labels returns every day formatted with DateLayout.
func (c Calendar) Labels() []string {
	labels := make([]string, len(c.Days))
	for i, d := range c.Days {
		labels[i] = d.Format(DateLayout)
	}
	return labels
}
