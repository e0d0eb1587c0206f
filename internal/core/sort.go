package core

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortDirection is the ordering direction of the active sort field.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection accepts "asc" or "desc" (case-insensitive).
func ParseSortDirection(s string) (SortDirection, error) {
	switch SortDirection(strings.ToLower(strings.TrimSpace(s))) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	}
	return "", fmt.Errorf("invalid sort direction %q", s)
}

// SortState is the single active field/direction pair.
type SortState struct {
	Field     Field         `json:"field"`
	Direction SortDirection `json:"direction"`
}

// DefaultSort orders newest submissions first.
var DefaultSort = SortState{Field: FieldDateTime, Direction: SortDesc}

// Toggle applies a header click: the active field flips direction,
// any other field becomes active in ascending order.
func (s SortState) Toggle(f Field) SortState {
	if s.Field == f {
		if s.Direction == SortAsc {
			return SortState{Field: f, Direction: SortDesc}
		}
		return SortState{Field: f, Direction: SortAsc}
	}
	return SortState{Field: f, Direction: SortAsc}
}

// DefaultCollation is the language used for locale-aware string comparison.
var DefaultCollation = language.English

// Sort returns a new slice ordered by field and direction using DefaultCollation.
func Sort(records []Record, field Field, dir SortDirection) []Record {
	return SortCollated(records, field, dir, DefaultCollation)
}

// SortCollated is Sort with an explicit collation language.
// Equal keys keep their input order.
func SortCollated(records []Record, field Field, dir SortDirection, tag language.Tag) []Record {
	out := make([]Record, len(records))
	copy(out, records)

	// Collators carry internal buffers, so each call gets its own.
	col := collate.New(tag)
	slices.SortStableFunc(out, func(a, b Record) int {
		return compareRecords(col, a, b, field, dir)
	})
	return out
}

func compareRecords(col *collate.Collator, a, b Record, field Field, dir SortDirection) int {
	c := compareValues(col, a.Value(field), b.Value(field))
	if dir == SortDesc {
		return -c
	}
	return c
}

// compareValues orders two values ascending. Null is larger than any
// defined value, so nulls trail in ascending order and lead in descending.
func compareValues(col *collate.Collator, a, b Value) int {
	switch {
	case a.Kind == KindNull && b.Kind == KindNull:
		return 0
	case a.Kind == KindNull:
		return 1
	case b.Kind == KindNull:
		return -1
	case a.Kind == KindString && b.Kind == KindString:
		return col.CompareString(a.Str, b.Str)
	case a.Kind == KindNumber && b.Kind == KindNumber:
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		}
		return 0
	default:
		return col.CompareString(a.String(), b.String())
	}
}
