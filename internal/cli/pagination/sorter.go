package pagination

import (
	"fmt"
	"sort"

	"github.com/rshade/carbontrack/internal/activity"
)

// Record sort fields.
const (
	FieldCO2e        = "co2e"
	FieldCategory    = "category"
	FieldCreated     = "created"
	FieldDescription = "description"
)

// RecordSorter sorts activity records by a named field.
type RecordSorter struct {
	validFields map[string]bool
}

// NewRecordSorter creates a RecordSorter with the supported sort fields.
func NewRecordSorter() *RecordSorter {
	return &RecordSorter{
		validFields: map[string]bool{
			FieldCO2e:        true,
			FieldCategory:    true,
			FieldCreated:     true,
			FieldDescription: true,
		},
	}
}

// IsValidField checks if the field is valid for sorting.
func (s *RecordSorter) IsValidField(field string) bool {
	return s.validFields[field]
}

// GetValidFields returns all valid sort fields.
func (s *RecordSorter) GetValidFields() []string {
	fields := make([]string, 0, len(s.validFields))
	for field := range s.validFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// SortExpression parses expr and sorts records accordingly. An empty
// expression keeps insertion order.
func (s *RecordSorter) SortExpression(records []activity.Record, expr string) ([]activity.Record, error) {
	if expr == "" {
		return records, nil
	}
	field, order, err := ParseSort(expr)
	if err != nil {
		return nil, err
	}
	if !s.IsValidField(field) {
		return nil, fmt.Errorf("%w: %q (valid: %v)", ErrInvalidSortField, field, s.GetValidFields())
	}
	return s.Sort(records, field, order), nil
}

// Sort returns a stably sorted copy of records. Ties keep insertion order.
// An invalid field returns records unchanged.
func (s *RecordSorter) Sort(records []activity.Record, field, order string) []activity.Record {
	if !s.IsValidField(field) {
		return records
	}

	sorted := make([]activity.Record, len(records))
	copy(sorted, records)

	less := func(a, b activity.Record) bool {
		switch field {
		case FieldCO2e:
			return a.CO2e < b.CO2e
		case FieldCategory:
			return a.Category < b.Category
		case FieldCreated:
			return a.CreatedAt.Before(b.CreatedAt)
		case FieldDescription:
			return a.Description < b.Description
		default:
			return false
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if order == SortOrderDesc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})

	return sorted
}
