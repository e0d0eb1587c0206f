package core

import (
	"fmt"
	"strings"
	"time"
)

// FilterCriteria is the conjunctive set of conditions narrowing the visible records.
// Empty fields are inactive.
type FilterCriteria struct {
	Search   string `json:"search" schema:"search"`
	Industry string `json:"industry" schema:"industry"`
	DateFrom string `json:"dateFrom" schema:"dateFrom"`
	DateTo   string `json:"dateTo" schema:"dateTo"`
}

// IsZero reports whether no criterion is active.
func (c FilterCriteria) IsZero() bool {
	return c.Search == "" && c.Industry == "" && c.DateFrom == "" && c.DateTo == ""
}

// Validate reports date bounds that cannot be read. Filter itself ignores
// such bounds; callers taking user input should reject them instead.
func (c FilterCriteria) Validate() error {
	if c.DateFrom != "" {
		if _, ok := parseDay(c.DateFrom); !ok {
			return fmt.Errorf("invalid filter: dateFrom %q is not a date", c.DateFrom)
		}
	}
	if c.DateTo != "" {
		if _, ok := parseDay(c.DateTo); !ok {
			return fmt.Errorf("invalid filter: dateTo %q is not a date", c.DateTo)
		}
	}
	return nil
}

// endOfDay is added to a dateTo bound so the whole day is included.
const endOfDay = 24*time.Hour - time.Millisecond

// timestampLayouts are tried in order when parsing record and bound dates.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp in one of the accepted
// layouts. Zone-less values are UTC; the result is always in UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// parseDay parses a bound and truncates it to the start of its UTC day.
func parseDay(s string) (time.Time, bool) {
	t, ok := ParseTimestamp(s)
	if !ok {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
}

// compiledFilter holds criteria with bounds parsed once per Filter call.
type compiledFilter struct {
	search   string
	industry string
	from     time.Time
	hasFrom  bool
	to       time.Time
	hasTo    bool
}

func compile(c FilterCriteria) compiledFilter {
	cf := compiledFilter{
		search:   strings.ToLower(c.Search),
		industry: c.Industry,
	}
	if c.DateFrom != "" {
		cf.from, cf.hasFrom = parseDay(c.DateFrom)
	}
	if c.DateTo != "" {
		if day, ok := parseDay(c.DateTo); ok {
			cf.to, cf.hasTo = day.Add(endOfDay), true
		}
	}
	return cf
}

func (cf compiledFilter) match(r Record) bool {
	if cf.search != "" && !matchesSearch(r, cf.search) {
		return false
	}

	if cf.industry != "" && (r.Industry == nil || *r.Industry != cf.industry) {
		return false
	}

	// Records without a timestamp, or with one that cannot be read, are never
	// excluded by date bounds.
	if (cf.hasFrom || cf.hasTo) && r.DateTime != nil {
		if at, ok := ParseTimestamp(*r.DateTime); ok {
			if cf.hasFrom && at.Before(cf.from) {
				return false
			}
			if cf.hasTo && at.After(cf.to) {
				return false
			}
		}
	}

	return true
}

func matchesSearch(r Record, needle string) bool {
	haystack := [...]string{
		r.FirstName,
		r.LastName,
		r.Email,
		deref(r.Company),
		deref(r.Phone),
	}
	for _, field := range haystack {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Filter returns the records matching c, in input order.
// The input slice is not modified.
func Filter(records []Record, c FilterCriteria) []Record {
	cf := compile(c)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if cf.match(r) {
			out = append(out, r)
		}
	}
	return out
}
