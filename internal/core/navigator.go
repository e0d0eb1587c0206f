package core

import (
	"time"

	"golang.org/x/text/language"
)

// Counts are the summary numbers shown next to the filters.
type Counts struct {
	TotalFiltered  int `json:"totalFiltered"`
	SelectedInView int `json:"selectedInView"`
}

// View is everything the presentation layer needs to render one state.
type View struct {
	Records    []Record       `json:"records"`
	Page       int            `json:"page"`
	PageSize   int            `json:"pageSize"`
	TotalPages int            `json:"totalPages"`
	Pages      []PageMarker   `json:"pages"`
	PageInfo   PageInfo       `json:"pageInfo"`
	Sort       SortState      `json:"sort"`
	Filter     FilterCriteria `json:"filter"`
	Counts     Counts         `json:"counts"`
	SelectAll  CheckState     `json:"selectAll"`
	Selected   []int64        `json:"selected"`
}

// Navigator owns the session state of one browsing session and recomputes
// the filter, sort and paginate pipeline on every change.
//
// A Navigator is not safe for concurrent use.
type Navigator struct {
	records   []Record
	filter    FilterCriteria
	sort      SortState
	page      int
	pageSize  int
	collation language.Tag
	selection *Selection

	// derived, rebuilt by recompute
	filtered   []Record
	slice      []Record
	totalPages int
}

// NavigatorOption configures a Navigator.
type NavigatorOption func(*Navigator)

// WithPageSize sets the number of records per page. Non-positive values are ignored.
func WithPageSize(n int) NavigatorOption {
	return func(nav *Navigator) {
		if n > 0 {
			nav.pageSize = n
		}
	}
}

// WithSort sets the initial sort state.
func WithSort(s SortState) NavigatorOption {
	return func(nav *Navigator) { nav.sort = s }
}

// WithCollation sets the language used for string ordering.
func WithCollation(tag language.Tag) NavigatorOption {
	return func(nav *Navigator) { nav.collation = tag }
}

// NewNavigator creates a navigator over records, starting at page 1 with
// no filter and no selection.
func NewNavigator(records []Record, opts ...NavigatorOption) *Navigator {
	nav := &Navigator{
		sort:      DefaultSort,
		page:      1,
		pageSize:  DefaultPageSize,
		collation: DefaultCollation,
		selection: NewSelection(),
	}
	for _, opt := range opts {
		opt(nav)
	}
	nav.SetRecords(records)
	return nav
}

// SetRecords replaces the record collection, normally once with the result
// of the initial fetch.
func (n *Navigator) SetRecords(records []Record) {
	n.records = make([]Record, len(records))
	copy(n.records, records)
	n.recompute()
}

// Records returns the unfiltered collection.
func (n *Navigator) Records() []Record {
	out := make([]Record, len(n.records))
	copy(out, n.records)
	return out
}

// SetFilter applies new criteria. The selection is cleared and the page
// returns to 1.
func (n *Navigator) SetFilter(c FilterCriteria) {
	n.filter = c
	n.page = 1
	n.selection.SelectNone()
	n.recompute()
}

// ClearFilter removes every criterion, with the same side effects as SetFilter.
func (n *Navigator) ClearFilter() {
	n.SetFilter(FilterCriteria{})
}

// Filter returns the active criteria.
func (n *Navigator) Filter() FilterCriteria { return n.filter }

// ToggleSort applies a header click on f. The selection is kept.
func (n *Navigator) ToggleSort(f Field) {
	n.sort = n.sort.Toggle(f)
	n.recompute()
}

// Sort returns the active sort state.
func (n *Navigator) Sort() SortState { return n.sort }

// SetPage moves to page, clamped to the available pages. The selection is
// cleared even when the page does not change.
func (n *Navigator) SetPage(page int) {
	n.page = page
	n.selection.SelectNone()
	n.recompute()
}

// NextPage moves forward one page.
func (n *Navigator) NextPage() { n.SetPage(n.page + 1) }

// PreviousPage moves back one page.
func (n *Navigator) PreviousPage() { n.SetPage(n.page - 1) }

// Page returns the current 1-based page.
func (n *Navigator) Page() int { return n.page }

// TotalPages returns the page count of the filtered sequence.
func (n *Navigator) TotalPages() int { return n.totalPages }

// Toggle flips the selection of id and returns the new state.
func (n *Navigator) Toggle(id int64) bool {
	return n.selection.Toggle(id)
}

// SetSelected selects or deselects id.
func (n *Navigator) SetSelected(id int64, selected bool) {
	n.selection.Set(id, selected)
}

// SelectAll selects every record on the current page.
func (n *Navigator) SelectAll() {
	n.selection.SelectAll(IDs(n.slice))
}

// SelectNone clears the selection.
func (n *Navigator) SelectNone() {
	n.selection.SelectNone()
}

// IsSelected reports whether id is selected.
func (n *Navigator) IsSelected(id int64) bool {
	return n.selection.IsSelected(id)
}

// Filtered returns the filtered sequence in the current sort order.
func (n *Navigator) Filtered() []Record {
	out := make([]Record, len(n.filtered))
	copy(out, n.filtered)
	return out
}

// Counts returns the filtered total and the number of selected ids on the
// current page.
func (n *Navigator) Counts() Counts {
	return Counts{
		TotalFiltered:  len(n.filtered),
		SelectedInView: n.selection.CountIn(IDs(n.slice)),
	}
}

// View returns the derived state for rendering.
func (n *Navigator) View() View {
	records := make([]Record, len(n.slice))
	copy(records, n.slice)
	return View{
		Records:    records,
		Page:       n.page,
		PageSize:   n.pageSize,
		TotalPages: n.totalPages,
		Pages:      VisiblePages(n.page, n.totalPages),
		PageInfo:   NewPageInfo(n.page, n.pageSize, len(n.filtered)),
		Sort:       n.sort,
		Filter:     n.filter,
		Counts:     n.Counts(),
		SelectAll:  n.selection.CheckState(IDs(n.slice)),
		Selected:   n.selection.IDs(),
	}
}

// ExportSelection returns the records an export of scope covers, in the
// current order. Selected ids whose records are filtered out are ignored.
func (n *Navigator) ExportSelection(scope Scope) []Record {
	if scope != ScopeSelected {
		return n.Filtered()
	}
	out := make([]Record, 0, n.selection.Len())
	for _, r := range n.filtered {
		if n.selection.IsSelected(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// Export serializes the records of scope, naming the payload after the
// scope and the date of now.
func (n *Navigator) Export(scope Scope, format Format, now time.Time) (Payload, error) {
	return Export(n.ExportSelection(scope), format, ExportBaseName(scope, now))
}

func (n *Navigator) recompute() {
	filtered := Filter(n.records, n.filter)
	n.filtered = SortCollated(filtered, n.sort.Field, n.sort.Direction, n.collation)
	n.totalPages = TotalPages(len(n.filtered), n.pageSize)
	n.page = ClampPage(n.page, n.totalPages)
	n.slice = Paginate(n.filtered, n.page, n.pageSize).Records
}
