package timesheet

import "strings"

// SplitAssignees splits a comma-separated names cell, dropping blanks and "none".
func SplitAssignees(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" || strings.EqualFold(name, "none") {
			continue
		}
		names = append(names, name)
	}
	return names
}
