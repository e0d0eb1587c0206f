package core

import (
	"slices"
	"testing"
)

// entry builds a record with the given id, timestamp (nil when empty) and industry.
func entry(id int64, dateTime, industry string) Record {
	r := Record{
		ID:        id,
		FirstName: "First",
		LastName:  "Last",
		Email:     "user@example.com",
	}
	if dateTime != "" {
		r.DateTime = StringPtr(dateTime)
	}
	if industry != "" {
		r.Industry = StringPtr(industry)
	}
	return r
}

func sampleRecords() []Record {
	return []Record{
		{ID: 1, DateTime: StringPtr("2024-01-01T09:30:00Z"), FirstName: "Ada", LastName: "Lovelace", Email: "ada@engines.io", Company: StringPtr("Analytical Engines"), Industry: StringPtr("Technology"), Phone: StringPtr("555-0101")},
		{ID: 2, DateTime: StringPtr("2024-03-15T12:00:00Z"), FirstName: "Grace", LastName: "Hopper", Email: "grace@navy.mil", Industry: StringPtr("Education")},
		{ID: 3, DateTime: nil, FirstName: "Alan", LastName: "Turing", Email: "alan@bletchley.uk", Company: StringPtr("Bletchley Park"), Industry: StringPtr("Technology")},
		{ID: 4, DateTime: StringPtr("2024-06-30T23:59:59Z"), FirstName: "Edsger", LastName: "Dijkstra", Email: "ewd@utexas.edu", Phone: StringPtr("555-0199"), Industry: StringPtr("technology")},
	}
}

func TestFilter_Search(t *testing.T) {
	tests := []struct {
		name   string
		search string
		want   []int64
	}{
		{"first name case-insensitive", "ADA", []int64{1}},
		{"last name substring", "hop", []int64{2}},
		{"email", "bletchley", []int64{3}},
		{"company", "engines", []int64{1}},
		{"phone", "0199", []int64{4}},
		{"missing company and phone are empty", "park", []int64{3}},
		{"no match", "zzz", []int64{}},
		{"comment is not searched", "analytical engines x", []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IDs(Filter(sampleRecords(), FilterCriteria{Search: tt.search}))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Filter(search=%q) = %v, want %v", tt.search, got, tt.want)
			}
		})
	}
}

func TestFilter_IndustryIsExactAndCaseSensitive(t *testing.T) {
	got := IDs(Filter(sampleRecords(), FilterCriteria{Industry: "Technology"}))
	want := []int64{1, 3}
	if !slices.Equal(got, want) {
		t.Errorf("Filter(industry=Technology) = %v, want %v", got, want)
	}
}

func TestFilter_DateRange(t *testing.T) {
	records := []Record{
		entry(1, "2024-01-01", ""),
		entry(2, "2024-03-15", ""),
		entry(3, "2024-06-30", ""),
	}

	got := IDs(Filter(records, FilterCriteria{DateFrom: "2024-02-01", DateTo: "2024-04-01"}))
	if !slices.Equal(got, []int64{2}) {
		t.Errorf("Filter(2024-02-01..2024-04-01) = %v, want [2]", got)
	}
}

func TestFilter_DateBoundsAreInclusive(t *testing.T) {
	records := []Record{
		entry(1, "2024-02-01T00:00:00Z", ""),
		entry(2, "2024-04-01T23:59:59.999Z", ""),
		entry(3, "2024-04-02T00:00:00Z", ""),
		entry(4, "2024-01-31T23:59:59Z", ""),
	}

	got := IDs(Filter(records, FilterCriteria{DateFrom: "2024-02-01", DateTo: "2024-04-01"}))
	want := []int64{1, 2}
	if !slices.Equal(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestFilter_MissingOrUnreadableDatesPass(t *testing.T) {
	records := []Record{
		entry(1, "", ""),
		entry(2, "not a date", ""),
		entry(3, "2020-01-01", ""),
	}

	got := IDs(Filter(records, FilterCriteria{DateFrom: "2024-01-01"}))
	want := []int64{1, 2}
	if !slices.Equal(got, want) {
		t.Errorf("Filter(dateFrom) = %v, want %v", got, want)
	}

	got = IDs(Filter(records, FilterCriteria{DateTo: "garbage"}))
	if !slices.Equal(got, []int64{1, 2, 3}) {
		t.Errorf("Filter(unreadable dateTo) = %v, want all", got)
	}
}

func TestFilter_CriteriaAreANDed(t *testing.T) {
	got := IDs(Filter(sampleRecords(), FilterCriteria{Search: "a", Industry: "Technology", DateFrom: "2023-12-01"}))
	want := []int64{1, 3}
	if !slices.Equal(got, want) {
		t.Errorf("Filter() = %v, want %v", got, want)
	}
}

func TestFilter_EmptyCriteriaIsIdentity(t *testing.T) {
	in := sampleRecords()
	got := Filter(in, FilterCriteria{})
	if !slices.Equal(IDs(got), IDs(in)) {
		t.Errorf("Filter(empty) = %v, want %v", IDs(got), IDs(in))
	}
	if !(FilterCriteria{}).IsZero() {
		t.Error("zero FilterCriteria should report IsZero")
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	in := sampleRecords()
	before := IDs(in)
	_ = Filter(in, FilterCriteria{Search: "grace"})
	if !slices.Equal(IDs(in), before) {
		t.Errorf("input changed to %v", IDs(in))
	}
}

func TestFilterCriteria_Validate(t *testing.T) {
	tests := []struct {
		name    string
		c       FilterCriteria
		wantErr bool
	}{
		{"empty", FilterCriteria{}, false},
		{"date inputs", FilterCriteria{DateFrom: "2024-01-01", DateTo: "2024-12-31"}, false},
		{"timestamp bound", FilterCriteria{DateFrom: "2024-01-01T10:00:00Z"}, false},
		{"bad from", FilterCriteria{DateFrom: "yesterday"}, true},
		{"bad to", FilterCriteria{DateTo: "31/12/2024"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && MapError(err).Code != "NAV004" {
				t.Errorf("MapError(Validate()) code = %s, want NAV004", MapError(err).Code)
			}
		})
	}
}
