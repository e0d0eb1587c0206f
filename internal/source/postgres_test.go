package source

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// row is one fake result row in column order.
type row struct {
	id       int64
	dateTime pgtype.Timestamptz
	text     [8]pgtype.Text
}

type fakeRows struct {
	rows []row
	pos  int
	err  error
}

func (f *fakeRows) Close()                                       {}
func (f *fakeRows) Err() error                                   { return f.err }
func (f *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (f *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (f *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (f *fakeRows) RawValues() [][]byte                          { return nil }
func (f *fakeRows) Conn() *pgx.Conn                              { return nil }

func (f *fakeRows) Next() bool {
	if f.pos >= len(f.rows) {
		return false
	}
	f.pos++
	return true
}

func (f *fakeRows) Scan(dest ...any) error {
	r := f.rows[f.pos-1]
	*dest[0].(*int64) = r.id
	*dest[1].(*pgtype.Timestamptz) = r.dateTime
	for i, t := range r.text {
		*dest[i+2].(*pgtype.Text) = t
	}
	return nil
}

type fakeQuerier struct {
	rows    *fakeRows
	err     error
	lastSQL string
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	q.lastSQL = sql
	if q.err != nil {
		return nil, q.err
	}
	return q.rows, nil
}

func text(s string) pgtype.Text { return pgtype.Text{String: s, Valid: true} }

func TestPostgresSource_Fetch(t *testing.T) {
	at := time.Date(2024, 3, 15, 14, 0, 0, 0, time.FixedZone("EST", -5*3600))
	q := &fakeQuerier{rows: &fakeRows{rows: []row{
		{
			id:       1,
			dateTime: pgtype.Timestamptz{Time: at, Valid: true},
			text:     [8]pgtype.Text{text("Ada"), text("Lovelace"), text("ada@engines.io"), {}, text(""), text("Technology"), {}, {}},
		},
		{
			id:   2,
			text: [8]pgtype.Text{text("Grace"), text("Hopper"), text("grace@navy.mil")},
		},
	}}}

	records, err := NewPostgresSource(q, "form_data").Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Fetch() = %d records, want 2", len(records))
	}

	first := records[0]
	if first.DateTime == nil || *first.DateTime != "2024-03-15T19:00:00Z" {
		t.Errorf("DateTime = %v, want UTC RFC 3339", first.DateTime)
	}
	if first.Phone != nil {
		t.Error("NULL phone should be nil")
	}
	if first.Company == nil || *first.Company != "" {
		t.Error("empty company should be an empty string")
	}
	if records[1].DateTime != nil {
		t.Error("NULL date_time should be nil")
	}
	if !strings.Contains(q.lastSQL, `FROM "form_data" ORDER BY id`) {
		t.Errorf("query = %q", q.lastSQL)
	}
}

func TestPostgresSource_SchemaQualifiedTable(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{}}
	records, err := NewPostgresSource(q, "public.form_data").Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if records == nil {
		t.Error("empty table should give a non-nil slice")
	}
	if !strings.Contains(q.lastSQL, `FROM "public"."form_data"`) {
		t.Errorf("query = %q", q.lastSQL)
	}
}

func TestPostgresSource_Errors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewPostgresSource(&fakeQuerier{err: boom}, "form_data").Fetch(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("query error = %v, want wrapped boom", err)
	}

	_, err = NewPostgresSource(&fakeQuerier{rows: &fakeRows{err: boom}}, "form_data").Fetch(context.Background())
	if !errors.Is(err, boom) {
		t.Errorf("rows error = %v, want wrapped boom", err)
	}
}
