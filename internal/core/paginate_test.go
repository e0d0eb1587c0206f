package core

import (
	"reflect"
	"slices"
	"testing"
)

func numbered(n int) []Record {
	out := make([]Record, n)
	for i := range out {
		out[i] = Record{ID: int64(i + 1)}
	}
	return out
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		n, size, want int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{5, 0, 0},
	}
	for _, tt := range tests {
		if got := TotalPages(tt.n, tt.size); got != tt.want {
			t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.n, tt.size, got, tt.want)
		}
	}
}

func TestPaginate_LastPartialPage(t *testing.T) {
	p := Paginate(numbered(45), 3, 20)
	if p.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", p.TotalPages)
	}
	if len(p.Records) != 5 {
		t.Fatalf("page 3 has %d records, want 5", len(p.Records))
	}
	if p.Records[0].ID != 41 || p.Records[4].ID != 45 {
		t.Errorf("page 3 = %v, want ids 41..45", IDs(p.Records))
	}
}

func TestPaginate_OutOfRangeIsEmpty(t *testing.T) {
	for _, page := range []int{0, -1, 4, 100} {
		p := Paginate(numbered(45), page, 20)
		if len(p.Records) != 0 {
			t.Errorf("Paginate(page=%d) returned %d records, want 0", page, len(p.Records))
		}
		if p.TotalPages != 3 {
			t.Errorf("Paginate(page=%d) TotalPages = %d, want 3", page, p.TotalPages)
		}
	}

	p := Paginate(nil, 1, 20)
	if p.TotalPages != 0 || len(p.Records) != 0 {
		t.Errorf("Paginate(empty) = %+v, want no pages", p)
	}
}

func TestPaginate_PartitionsSequence(t *testing.T) {
	records := numbered(57)
	p := Paginate(records, 1, 20)

	var joined []Record
	for page := 1; page <= p.TotalPages; page++ {
		joined = append(joined, Paginate(records, page, 20).Records...)
	}
	if !slices.Equal(IDs(joined), IDs(records)) {
		t.Errorf("concatenated pages = %v, want %v", IDs(joined), IDs(records))
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, total, want int
	}{
		{1, 3, 1},
		{5, 3, 3},
		{0, 3, 1},
		{-2, 3, 1},
		{4, 0, 1},
	}
	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.total); got != tt.want {
			t.Errorf("ClampPage(%d, %d) = %d, want %d", tt.page, tt.total, got, tt.want)
		}
	}
}

// render turns markers into ints with -1 for an ellipsis.
func render(markers []PageMarker) []int {
	out := make([]int, len(markers))
	for i, m := range markers {
		if m.Ellipsis {
			out[i] = -1
			continue
		}
		out[i] = m.Page
	}
	return out
}

func TestVisiblePages(t *testing.T) {
	tests := []struct {
		name           string
		current, total int
		want           []int
	}{
		{"single page hides control", 1, 1, nil},
		{"no pages", 1, 0, nil},
		{"two pages", 1, 2, []int{1, 2}},
		{"small total lists all", 3, 5, []int{1, 2, 3, 4, 5}},
		{"start of long range", 1, 10, []int{1, 2, 3, -1, 10}},
		{"middle of long range", 6, 12, []int{1, -1, 4, 5, 6, 7, 8, -1, 12}},
		{"single-page gap is shown", 5, 10, []int{1, 2, 3, 4, 5, 6, 7, -1, 10}},
		{"end of long range", 10, 10, []int{1, -1, 8, 9, 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(VisiblePages(tt.current, tt.total))
			if tt.want == nil {
				if len(got) != 0 {
					t.Errorf("VisiblePages(%d, %d) = %v, want none", tt.current, tt.total, got)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("VisiblePages(%d, %d) = %v, want %v", tt.current, tt.total, got, tt.want)
			}
		})
	}
}

func TestVisiblePages_MarksCurrent(t *testing.T) {
	for _, m := range VisiblePages(4, 9) {
		if m.Current != (m.Page == 4) {
			t.Errorf("marker %+v has wrong Current flag", m)
		}
	}
}

func TestNewPageInfo(t *testing.T) {
	got := NewPageInfo(2, 20, 45)
	want := PageInfo{StartEntry: 21, EndEntry: 40, TotalEntries: 45, HasPrevious: true, HasNext: true}
	if got != want {
		t.Errorf("NewPageInfo(2, 20, 45) = %+v, want %+v", got, want)
	}

	got = NewPageInfo(3, 20, 45)
	if got.EndEntry != 45 || got.HasNext {
		t.Errorf("NewPageInfo(3, 20, 45) = %+v, want end 45 and no next page", got)
	}

	if got := NewPageInfo(1, 20, 0); got != (PageInfo{}) {
		t.Errorf("NewPageInfo(empty) = %+v, want zero", got)
	}
}
