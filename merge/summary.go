package merge

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/orayew2002/timetracker/domain"
	"github.com/orayew2002/timetracker/excel"
)

// IdentityColumns is the number of leading summary columns that describe a row
// rather than a day: sequence number, employee, project, description, start, end.
const IdentityColumns = 6

// Summary is a merge report read back from its workbook.
type Summary struct {
	Calendar domain.Calendar
	Rows     []domain.MergedRow
}

// ReadSummary parses a workbook written by the report renderer. Blank identity
// cells, left behind by vertically merged cells, inherit the value above them.
func ReadSummary(data []byte) (*Summary, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open from bytes: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("get rows: %w", err)
	}
	if len(rows) == 0 {
		return &Summary{}, nil
	}

	dayCols, days, err := dayColumns(rows[0])
	if err != nil {
		return nil, err
	}

	var cal domain.Calendar
	if len(days) > 0 {
		cal = domain.NewCalendar(days[0], days[len(days)-1])
	}

	summary := &Summary{Calendar: cal}
	var carry [IdentityColumns]string

	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}

		for col := range IdentityColumns {
			if v := excel.Value(row, col); v != "" {
				carry[col] = v
			}
		}

		r, err := summaryRow(carry, row, dayCols, days, cal)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		summary.Rows = append(summary.Rows, r)
	}

	return summary, nil
}

// dayColumns returns the columns after the identity block whose header is a date.
func dayColumns(header []string) ([]int, []time.Time, error) {
	var (
		cols []int
		days []time.Time
	)
	for col := IdentityColumns; col < len(header); col++ {
		day, ok := excel.ParseDate(excel.Value(header, col))
		if !ok {
			continue
		}
		if n := len(days); n > 0 && !day.After(days[n-1]) {
			return nil, nil, fmt.Errorf("header %s: day %s is not after %s",
				excel.CellName(0, col), day.Format(domain.DateLayout), days[n-1].Format(domain.DateLayout))
		}
		cols = append(cols, col)
		days = append(days, day)
	}
	return cols, days, nil
}

func summaryRow(id [IdentityColumns]string, row []string, dayCols []int, days []time.Time, cal domain.Calendar) (domain.MergedRow, error) {
	seq, ok := excel.ParseFloat(id[0])
	if !ok || seq != math.Trunc(seq) {
		return domain.MergedRow{}, fmt.Errorf("sequence number %q is not an integer", id[0])
	}

	start, ok := excel.ParseDate(id[4])
	if !ok {
		return domain.MergedRow{}, fmt.Errorf("start date %q: %w", id[4], domain.ErrInvalidRange)
	}
	end, ok := excel.ParseDate(id[5])
	if !ok {
		return domain.MergedRow{}, fmt.Errorf("end date %q: %w", id[5], domain.ErrInvalidRange)
	}
	if start.After(end) {
		return domain.MergedRow{}, fmt.Errorf("%s..%s: %w", id[4], id[5], domain.ErrInvalidRange)
	}

	cells := make([]domain.Hours, cal.Len())
	for k, col := range dayCols {
		v, ok := excel.ParseFloat(excel.Value(row, col))
		if !ok {
			continue
		}
		if j, in := cal.Index(days[k]); in {
			cells[j] = domain.Hours{Value: v, Valid: true}
		}
	}

	return domain.MergedRow{
		Seq:         int(seq),
		Employee:    id[1],
		Project:     id[2],
		Description: id[3],
		Start:       start,
		End:         end,
		Cells:       cells,
	}, nil
}

func blank(row []string) bool {
	for col := range row {
		if excel.Value(row, col) != "" {
			return false
		}
	}
	return true
}
