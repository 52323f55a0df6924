package timesheet

import "strings"

// brokenRef marks a sub-header cell whose formula lost its reference.
const brokenRef = "#REF"

// ResolveHeaders combines a header row with its sub-header row into one label
// per column. A blank header cell repeats the last non-blank one to its left;
// a non-blank sub-header is appended as "header - sub".
func ResolveHeaders(header, sub []string) []string {
	n := max(len(header), len(sub))
	labels := make([]string, n)

	filled := forwardFill(header, n)
	for i := range n {
		h := filled[i]
		s := ""
		if i < len(sub) {
			s = strings.TrimSpace(sub[i])
		}
		if strings.Contains(s, brokenRef) {
			s = ""
		}

		if s != "" {
			labels[i] = h + " - " + s
		} else {
			labels[i] = h
		}
	}

	return labels
}

// forwardFill carries the last non-blank value over blank entries, padding to n.
func forwardFill(values []string, n int) []string {
	out := make([]string, n)
	last := ""
	for i := range n {
		v := ""
		if i < len(values) {
			v = strings.TrimSpace(values[i])
		}
		if v == "" {
			v = last
		} else {
			last = v
		}
		out[i] = v
	}
	return out
}
