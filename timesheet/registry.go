package timesheet

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Field is a logical column of the timesheet table.
type Field int

const (
	FieldDescription Field = iota
	FieldAssignees
	FieldStart
	FieldEnd
	FieldLocation
	FieldEffort
)

func (f Field) String() string {
	switch f {
	case FieldDescription:
		return "description"
	case FieldAssignees:
		return "assignees"
	case FieldStart:
		return "start"
	case FieldEnd:
		return "end"
	case FieldLocation:
		return "location"
	case FieldEffort:
		return "effort"
	}
	return "unknown"
}

// Schema maps each logical field to a 0-based column index.
type Schema map[Field]int

// Registry holds label pattern → field mappings.
type Registry struct {
	entries  []entry
	fallback Schema
}

type entry struct {
	pattern string
	field   Field
}

// NewRegistry creates an empty Registry. Fields that no label matches resolve to fallback.
func NewRegistry(fallback Schema) *Registry {
	return &Registry{fallback: fallback}
}

// Register adds a case-insensitive substring pattern for field.
// Patterns are checked in registration order; the first match wins.
func (r *Registry) Register(pattern string, field Field) {
	r.entries = append(r.entries, entry{pattern: fold(pattern), field: field})
}

// fold lowercases s in composed (NFC) form, so decomposed Vietnamese labels
// match their precomposed patterns.
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// Resolve binds every field to the first label, left to right, that one of its
// patterns matches. A label binds at most one field and a field binds once.
func (r *Registry) Resolve(labels []string) Schema {
	schema := make(Schema, len(r.fallback))
	for col, label := range labels {
		lower := fold(label)
		for _, e := range r.entries {
			if _, bound := schema[e.field]; bound {
				continue
			}
			if strings.Contains(lower, e.pattern) {
				schema[e.field] = col
				break
			}
		}
	}

	for field, col := range r.fallback {
		if _, bound := schema[field]; !bound {
			schema[field] = col
		}
	}

	return schema
}

// DefaultRegistry knows the Vietnamese and English labels of the standard timesheet.
// Unmatched fields fall back to their historical column positions.
func DefaultRegistry() *Registry {
	r := NewRegistry(Schema{
		FieldDescription: 1,
		FieldAssignees:   3,
		FieldStart:       5,
		FieldEnd:         6,
		FieldLocation:    7,
		FieldEffort:      8,
	})

	r.Register("qty", FieldEffort)
	r.Register("effort", FieldEffort)
	r.Register("kế hoạch - từ", FieldStart)
	r.Register("plan - from", FieldStart)
	r.Register("start date", FieldStart)
	r.Register("kế hoạch - đến", FieldEnd)
	r.Register("plan - to", FieldEnd)
	r.Register("end date", FieldEnd)
	r.Register("nơi làm việc", FieldLocation)
	r.Register("location", FieldLocation)
	r.Register("người thực hiện", FieldAssignees)
	r.Register("nhân sự", FieldAssignees)
	r.Register("assignee", FieldAssignees)
	r.Register("mô tả", FieldDescription)
	r.Register("description", FieldDescription)

	return r
}
