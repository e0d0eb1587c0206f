package templates

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/JonMunkholm/formnav/internal/core"
)

func render(t *testing.T, data PageData) string {
	t.Helper()
	var buf bytes.Buffer
	if err := Page(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func sampleRecords() []core.Record {
	return []core.Record{
		{ID: 1, DateTime: core.StringPtr("2024-03-05T12:00:00Z"), FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Industry: core.StringPtr("Technology")},
		{ID: 2, DateTime: core.StringPtr("2024-03-06T09:30:00Z"), FirstName: "<script>", LastName: "Hopper", Email: "grace@example.com", Company: core.StringPtr("Navy & Co")},
	}
}

func pageData(nav *core.Navigator) PageData {
	return PageData{
		View:       nav.View(),
		Industries: Industries,
		Formats:    []core.Format{core.FormatCSV, core.FormatJSON, core.FormatXML},
	}
}

func TestPage_RendersRowsEscaped(t *testing.T) {
	html := render(t, pageData(core.NewNavigator(sampleRecords())))

	if strings.Contains(html, "<script>") {
		t.Error("record text must be escaped")
	}
	for _, want := range []string{"&lt;script&gt;", "Navy &amp; Co", "ada@example.com", "/ui/select/1", "/ui/select/2"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestPage_ControlsAndCounts(t *testing.T) {
	nav := core.NewNavigator(sampleRecords())
	nav.Toggle(2)
	html := render(t, pageData(nav))

	tests := []string{
		`placeholder="Search by name, email, company..."`,
		`action="/ui/filters"`,
		`action="/ui/filters/clear"`,
		"Clear Filters",
		"Download All (2)",
		"Download Selected (1)",
		"1 selected of 2",
		"Showing 1-2 of 2 entries",
		`action="/ui/sort/date_time"`,
		`action="/ui/sort/industry"`,
		`data-state="indeterminate"`,
		`<tr class="selected">`,
	}
	for _, want := range tests {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if strings.Contains(html, `action="/ui/sort/comment"`) {
		t.Error("comment column must not be sortable")
	}
}

func TestPage_SelectionCountsCurrentPage(t *testing.T) {
	records := make([]core.Record, 15)
	for i := range records {
		records[i] = core.Record{ID: int64(i + 1), FirstName: "x"}
	}
	nav := core.NewNavigator(records, core.WithPageSize(10))
	nav.Toggle(12) // on page 2
	html := render(t, pageData(nav))

	for _, want := range []string{"Download Selected (0)", "15 entries", `value="selected" disabled`} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}

	nav.Toggle(3)
	html = render(t, pageData(nav))
	for _, want := range []string{"Download Selected (1)", "1 selected of 15"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestPage_Document(t *testing.T) {
	html := render(t, pageData(core.NewNavigator(nil)))
	if !strings.HasPrefix(html, "<!doctype html>") {
		t.Errorf("page should start with a doctype, got %.40q", html)
	}
	if !strings.Contains(html, "<title>Form Submissions</title>") || !strings.HasSuffix(html, "</main></body></html>") {
		t.Error("page should be wrapped in the layout")
	}
}

func TestPage_EmptyState(t *testing.T) {
	html := render(t, pageData(core.NewNavigator(nil)))

	if !strings.Contains(html, EmptyMessage) {
		t.Errorf("page missing empty message")
	}
	if !strings.Contains(html, "0 entries") {
		t.Errorf("page missing entry count")
	}
	if strings.Contains(html, "Showing") {
		t.Error("empty page should not show an entry range")
	}
	if strings.Contains(html, `aria-label="Pagination"`) {
		t.Error("single page should not render pagination")
	}
}

func TestPage_KeepsFilterValues(t *testing.T) {
	nav := core.NewNavigator(sampleRecords())
	nav.SetFilter(core.FilterCriteria{Search: `"quoted"`, Industry: "Finance", DateFrom: "2024-01-01"})
	html := render(t, pageData(nav))

	for _, want := range []string{`value="&#34;quoted&#34;"`, `value="Finance" selected`, `value="2024-01-01"`} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestPage_Pagination(t *testing.T) {
	records := make([]core.Record, 95)
	for i := range records {
		records[i] = core.Record{ID: int64(i + 1), FirstName: "x"}
	}
	nav := core.NewNavigator(records, core.WithPageSize(10))
	nav.SetPage(5)
	html := render(t, pageData(nav))

	for _, want := range []string{`action="/ui/page/prev"`, `action="/ui/page/next"`, `aria-current="page">5<`, "&hellip;", "Showing 41-50 of 95 entries"} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestSortIcon(t *testing.T) {
	tests := []struct {
		sort  core.SortState
		field core.Field
		want  string
	}{
		{core.SortState{Field: core.FieldEmail, Direction: core.SortAsc}, core.FieldEmail, "↑"},
		{core.SortState{Field: core.FieldEmail, Direction: core.SortDesc}, core.FieldEmail, "↓"},
		{core.SortState{Field: core.FieldEmail, Direction: core.SortAsc}, core.FieldPhone, "↕"},
	}
	for _, tt := range tests {
		if got := SortIcon(tt.sort, tt.field); got != tt.want {
			t.Errorf("SortIcon(%+v, %s) = %q, want %q", tt.sort, tt.field, got, tt.want)
		}
	}
}

func TestDisplayDate(t *testing.T) {
	tests := []struct {
		in   *string
		want string
	}{
		{nil, ""},
		{core.StringPtr("2024-03-05T12:00:00Z"), "3/5/2024"},
		{core.StringPtr("2024-12-31"), "12/31/2024"},
		{core.StringPtr("yesterday"), "yesterday"},
	}
	for _, tt := range tests {
		if got := DisplayDate(tt.in); got != tt.want {
			t.Errorf("DisplayDate(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCountText(t *testing.T) {
	if got := CountText(0, 12); got != "12 entries" {
		t.Errorf("CountText(0, 12) = %q", got)
	}
	if got := CountText(3, 12); got != "3 selected of 12" {
		t.Errorf("CountText(3, 12) = %q", got)
	}
}

func TestErrorPage(t *testing.T) {
	var buf bytes.Buffer
	msg := core.UserMessage{Message: "Session <expired>", Action: "Reload the page", Code: "SES001"}
	if err := ErrorPage(msg, http.StatusNotFound).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	html := buf.String()
	for _, want := range []string{"Not Found", "Session &lt;expired&gt;", "Reload the page", "SES001", "HTTP 404"} {
		if !strings.Contains(html, want) {
			t.Errorf("error page missing %q", want)
		}
	}
}
