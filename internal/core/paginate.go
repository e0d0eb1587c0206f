package core

// DefaultPageSize is the number of records shown per page.
const DefaultPageSize = 20

// pageWindow is how many neighbours of the current page are listed on each side.
const pageWindow = 2

// Page is one window of an ordered sequence.
type Page struct {
	Records    []Record
	TotalPages int
}

// TotalPages returns ceil(n / pageSize), or 0 when there is nothing to page.
func TotalPages(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// Paginate returns the 1-based page of records. It does not clamp:
// a page outside [1, TotalPages] yields an empty slice.
func Paginate(records []Record, page, pageSize int) Page {
	p := Page{
		Records:    []Record{},
		TotalPages: TotalPages(len(records), pageSize),
	}
	if page < 1 || page > p.TotalPages {
		return p
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if end > len(records) {
		end = len(records)
	}
	p.Records = append(p.Records, records[start:end]...)
	return p
}

// ClampPage limits page to [1, totalPages]. With no pages the result is 1.
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageMarker is one entry of the page-number control: a page or an ellipsis.
type PageMarker struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
	Current  bool `json:"current,omitempty"`
}

// VisiblePages lists the page controls for current out of total.
// The first and last pages are always present, up to two pages either side of
// current are listed, and a gap of more than one page collapses into a single
// ellipsis. Nothing is listed when there is at most one page.
func VisiblePages(current, total int) []PageMarker {
	if total <= 1 {
		return nil
	}
	current = ClampPage(current, total)

	lo := max(2, current-pageWindow)
	hi := min(total-1, current+pageWindow)

	pages := []int{1}
	pages = appendGap(pages, 1, lo)
	for p := lo; p <= hi; p++ {
		pages = append(pages, p)
	}
	if hi >= lo {
		pages = appendGap(pages, hi, total)
	} else {
		pages = appendGap(pages, 1, total)
	}
	pages = append(pages, total)

	markers := make([]PageMarker, len(pages))
	for i, p := range pages {
		if p == 0 {
			markers[i] = PageMarker{Ellipsis: true}
			continue
		}
		markers[i] = PageMarker{Page: p, Current: p == current}
	}
	return markers
}

// appendGap fills the pages strictly between from and to. A single missing
// page is listed; anything wider becomes an ellipsis (encoded as 0).
func appendGap(pages []int, from, to int) []int {
	switch missing := to - from - 1; {
	case missing == 1:
		return append(pages, from+1)
	case missing > 1:
		return append(pages, 0)
	}
	return pages
}

// PageInfo describes the visible window for "Showing 21-40 of 45 entries".
type PageInfo struct {
	StartEntry   int  `json:"startEntry"`
	EndEntry     int  `json:"endEntry"`
	TotalEntries int  `json:"totalEntries"`
	HasPrevious  bool `json:"hasPrevious"`
	HasNext      bool `json:"hasNext"`
}

// NewPageInfo computes the entry window of page within total entries.
func NewPageInfo(page, pageSize, total int) PageInfo {
	info := PageInfo{TotalEntries: total}
	if total == 0 || pageSize <= 0 {
		return info
	}
	totalPages := TotalPages(total, pageSize)
	info.StartEntry = (page-1)*pageSize + 1
	info.EndEntry = min(page*pageSize, total)
	info.HasPrevious = page > 1
	info.HasNext = page < totalPages
	return info
}
