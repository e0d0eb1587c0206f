package core

import "slices"

// CheckState is the derived state of the "select all" checkbox.
type CheckState string

const (
	Unchecked     CheckState = "unchecked"
	Checked       CheckState = "checked"
	Indeterminate CheckState = "indeterminate"
)

// Selection is a set of selected record ids, independent of paging.
// An id may stay selected while its record is filtered out of view.
type Selection struct {
	ids map[int64]struct{}
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{ids: make(map[int64]struct{})}
}

// SelectAll replaces the selection with ids.
func (s *Selection) SelectAll(ids []int64) {
	s.ids = make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
}

// SelectNone empties the selection.
func (s *Selection) SelectNone() {
	s.ids = make(map[int64]struct{})
}

// Toggle flips the selection state of id and returns the new state.
func (s *Selection) Toggle(id int64) bool {
	if _, ok := s.ids[id]; ok {
		delete(s.ids, id)
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Set selects or deselects id.
func (s *Selection) Set(id int64, selected bool) {
	if selected {
		s.ids[id] = struct{}{}
		return
	}
	delete(s.ids, id)
}

// IsSelected reports whether id is selected.
func (s *Selection) IsSelected(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

// Len returns the number of selected ids.
func (s *Selection) Len() int {
	return len(s.ids)
}

// IDs returns the selected ids in ascending order.
func (s *Selection) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// CountIn returns how many of ids are selected.
func (s *Selection) CountIn(ids []int64) int {
	n := 0
	for _, id := range ids {
		if s.IsSelected(id) {
			n++
		}
	}
	return n
}

// CheckState derives the "select all" checkbox for the ids in view:
// checked when the view is non-empty and fully selected, indeterminate when
// only part of it is selected.
func (s *Selection) CheckState(view []int64) CheckState {
	n := s.CountIn(view)
	switch {
	case len(view) > 0 && n == len(view):
		return Checked
	case n > 0:
		return Indeterminate
	default:
		return Unchecked
	}
}
