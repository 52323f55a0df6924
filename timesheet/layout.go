package timesheet

// Layout locates the parts of an input timesheet. Rows and columns are 0-based.
type Layout struct {
	ProjectCell  string // cell holding the project code, e.g. "M2"
	HeaderRow    int
	SubHeaderRow int
	FirstDataRow int
	Columns      int // number of leading columns that make up the table
	FooterRows   int // trailing rows dropped after the blank-first-column filter
}

// DefaultLayout returns the layout of the standard project timesheet:
// project code in M2, headers on rows 7 and 8, data from row 9, 13 columns
// and a totals row at the bottom.
func DefaultLayout() Layout {
	return Layout{
		ProjectCell:  "M2",
		HeaderRow:    6,
		SubHeaderRow: 7,
		FirstDataRow: 8,
		Columns:      13,
		FooterRows:   1,
	}
}
