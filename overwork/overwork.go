// Package overwork finds employee-days booked above a standard workday.
package overwork

import (
	"sort"
	"time"

	"github.com/orayew2002/timetracker/domain"
	"github.com/orayew2002/timetracker/effort"
)

// Detect sums every employee's cells per calendar day across all their rows,
// treating absent cells as zero, and reports each day whose total exceeds
// domain.StandardWorkday. Entries are ordered by employee, then date. The
// result is nil when nobody is overworked.
func Detect(m *domain.Matrix) []domain.OverworkEntry {
	if m == nil {
		return nil
	}

	totals := make(map[string][]float64)
	for _, row := range m.Rows {
		sums, ok := totals[row.Employee]
		if !ok {
			sums = make([]float64, m.Calendar.Len())
			totals[row.Employee] = sums
		}
		for i, cell := range row.Cells {
			if i < len(sums) && cell.Valid {
				sums[i] += cell.Value
			}
		}
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)

	var entries []domain.OverworkEntry
	for _, name := range names {
		for i, sum := range totals[name] {
			// Round before comparing so float noise never tips 8.00 over the line.
			sum = effort.Round2(sum)
			if sum > domain.StandardWorkday {
				entries = append(entries, domain.OverworkEntry{
					Employee: name,
					Date:     m.Calendar.Days[i].Format(domain.DateLayout),
					Hours:    sum,
				})
			}
		}
	}

	return entries
}

// Index answers whether an employee-day was reported by Detect.
type Index map[string]map[string]struct{}

// NewIndex builds an Index over entries.
func NewIndex(entries []domain.OverworkEntry) Index {
	idx := make(Index)
	for _, e := range entries {
		days, ok := idx[e.Employee]
		if !ok {
			days = make(map[string]struct{})
			idx[e.Employee] = days
		}
		days[e.Date] = struct{}{}
	}
	return idx
}

// Flagged reports whether employee is overworked on day.
func (idx Index) Flagged(employee string, day time.Time) bool {
	_, ok := idx[employee][day.Format(domain.DateLayout)]
	return ok
}
