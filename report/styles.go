package report

import "github.com/xuri/excelize/v2"

// Fill colors of the merge report.
const (
	HeaderFill          = "D9EAF7"
	WeekendHeaderFill   = "FADADD"
	OverworkFill        = "FF6666"
	OverworkWarningFill = "F7DC6F"
	NormalFill          = "E2F0CB"
)

// StyleManager caches Excel styles so each style is created only once per file.
type StyleManager struct {
	file  *excelize.File
	cache map[string]int
}

// NewStyleManager creates a style manager bound to the given file.
func NewStyleManager(f *excelize.File) *StyleManager {
	return &StyleManager{file: f, cache: make(map[string]int)}
}

// Header returns the style of a regular header cell.
func (sm *StyleManager) Header() (int, error) {
	return sm.filled("header", HeaderFill, true)
}

// WeekendHeader returns the style of a header cell for a Saturday or Sunday.
func (sm *StyleManager) WeekendHeader() (int, error) {
	return sm.filled("weekend_header", WeekendHeaderFill, true)
}

// Identity returns the bordered, unfilled style of identity cells.
func (sm *StyleManager) Identity() (int, error) {
	return sm.getOrCreate("identity", &excelize.Style{
		Alignment: centered(),
		Border:    defaultBorder(),
	})
}

// Day returns the style of a day cell that needs no highlight.
func (sm *StyleManager) Day() (int, error) {
	return sm.getOrCreate("day", &excelize.Style{Alignment: centered()})
}

// Overwork returns the style of a day cell above a workday on its own.
func (sm *StyleManager) Overwork() (int, error) {
	return sm.filled("overwork", OverworkFill, false)
}

// OverworkWarning returns the style of a day cell whose employee total for the day exceeds a workday.
func (sm *StyleManager) OverworkWarning() (int, error) {
	return sm.filled("overwork_warning", OverworkWarningFill, false)
}

// Normal returns the style of a day cell below a workday.
func (sm *StyleManager) Normal() (int, error) {
	return sm.filled("normal", NormalFill, false)
}

func (sm *StyleManager) filled(key, color string, border bool) (int, error) {
	style := &excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
		Alignment: centered(),
	}
	if border {
		style.Border = defaultBorder()
	}
	return sm.getOrCreate(key, style)
}

func (sm *StyleManager) getOrCreate(key string, style *excelize.Style) (int, error) {
	if id, ok := sm.cache[key]; ok {
		return id, nil
	}

	id, err := sm.file.NewStyle(style)
	if err != nil {
		return 0, err
	}

	sm.cache[key] = id
	return id, nil
}

func centered() *excelize.Alignment {
	return &excelize.Alignment{Horizontal: "center", Vertical: "center"}
}

func defaultBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}
