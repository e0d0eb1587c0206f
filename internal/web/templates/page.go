// Package templates renders the navigator's HTML pages.
//
// Markup lives in the .templ files; run `templ generate` after editing them.
// This file holds the data types and helpers the components use.
package templates

import (
	"net/http"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/formnav/internal/core"
)

// Industries are the fixed options of the industry filter.
var Industries = []string{
	"Technology",
	"Healthcare",
	"Finance",
	"Education",
	"Manufacturing",
	"Retail",
	"Other",
}

// PageData is everything the navigator page renders.
type PageData struct {
	View       core.View
	Industries []string
	Formats    []core.Format
}

type column struct {
	Field    core.Field
	Label    string
	Sortable bool
}

var columns = []column{
	{core.FieldDateTime, "Date", true},
	{core.FieldFirstName, "First Name", true},
	{core.FieldLastName, "Last Name", true},
	{core.FieldEmail, "Email", true},
	{core.FieldPhone, "Phone", true},
	{core.FieldCompany, "Company", true},
	{core.FieldIndustry, "Industry", true},
	{core.FieldComment, "Comment", false},
	{core.FieldReason, "Reason", false},
}

// EmptyMessage is shown in place of rows when nothing matches.
const EmptyMessage = "No entries found matching your filters."

// CountText is the summary next to the export buttons.
func CountText(selected, total int) string {
	if selected > 0 {
		return strconv.Itoa(selected) + " selected of " + strconv.Itoa(total)
	}
	return strconv.Itoa(total) + " entries"
}

// SortIcon returns the header arrow for f under the active sort.
func SortIcon(s core.SortState, f core.Field) string {
	if s.Field != f {
		return "↕"
	}
	if s.Direction == core.SortAsc {
		return "↑"
	}
	return "↓"
}

// DisplayDate formats a submission timestamp as a short date. Unparseable
// values are shown as received.
func DisplayDate(s *string) string {
	if s == nil {
		return ""
	}
	t, ok := core.ParseTimestamp(*s)
	if !ok {
		return *s
	}
	return t.Format("1/2/2006")
}

func cellText(r core.Record, f core.Field) string {
	if f == core.FieldDateTime {
		return DisplayDate(r.DateTime)
	}
	return r.Value(f).String()
}

func formatLabel(f core.Format) string {
	switch f {
	case core.FormatCSV:
		return "CSV"
	case core.FormatJSON:
		return "JSON"
	case core.FormatXML:
		return "XML"
	}
	return string(f)
}

// selectAllAction is where the header checkbox posts: a fully checked page
// clears, anything else selects the page.
func selectAllAction(state core.CheckState) templ.SafeURL {
	if state == core.Checked {
		return templ.SafeURL("/ui/select-none")
	}
	return templ.SafeURL("/ui/select-all")
}

func selectAllLabel(state core.CheckState) string {
	if state == core.Checked {
		return "Clear selection"
	}
	return "Select all on page"
}

func checkMark(state core.CheckState) string {
	switch state {
	case core.Checked:
		return "✓"
	case core.Indeterminate:
		return "–"
	}
	return ""
}

func entryID(r core.Record) string {
	return strconv.FormatInt(r.ID, 10)
}

func statusTitle(status int) string {
	if title := http.StatusText(status); title != "" {
		return title
	}
	return "Error"
}
