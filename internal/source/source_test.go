package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JonMunkholm/formnav/internal/config"
	"github.com/JonMunkholm/formnav/internal/core"
	"github.com/JonMunkholm/formnav/internal/metrics"
)

const twoRecords = `[
  {"id": 1, "date_time": "2024-03-15T12:00:00Z", "first_name": "Ada", "last_name": "Lovelace",
   "email": "ada@engines.io", "phone": null, "company": "Engines", "industry": "Technology",
   "comment": null, "reason": null},
  {"id": 2, "date_time": null, "first_name": "Grace", "last_name": "Hopper",
   "email": "grace@navy.mil", "phone": "555", "company": null, "industry": null,
   "comment": "hi", "reason": ""}
]`

func TestHTTPSource_Fetch(t *testing.T) {
	seen := make(chan *http.Request, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen <- r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(twoRecords))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/internal/form_data", time.Second,
		WithTokenSource(StaticToken("tok-1")))

	records, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Fetch() returned %d records, want 2", len(records))
	}
	req := <-seen
	if got := req.Header.Get("Authorization"); got != "Bearer tok-1" {
		t.Errorf("Authorization = %q, want %q", got, "Bearer tok-1")
	}
	if req.URL.Path != "/internal/form_data" {
		t.Errorf("path = %q, want /internal/form_data", req.URL.Path)
	}
	if records[1].DateTime != nil {
		t.Error("null date_time should decode to nil")
	}
	if records[1].Reason == nil || *records[1].Reason != "" {
		t.Error("empty reason should stay an empty string")
	}
}

func TestHTTPSource_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second).Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unexpected status 403") {
		t.Errorf("Fetch() error = %v, want unexpected status 403", err)
	}
	if errors.Is(err, ErrMalformedPayload) {
		t.Error("status errors must not be reported as malformed payloads")
	}
}

func TestHTTPSource_TokenFailureSkipsRequest(t *testing.T) {
	var called atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called.Store(true)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, WithTokenSource(StaticToken(""))).Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "identity token") {
		t.Errorf("Fetch() error = %v, want identity token error", err)
	}
	if called.Load() {
		t.Error("backend should not be called without a token")
	}
}

func TestDecodeRecords(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantLen   int
		malformed bool
	}{
		{"array", twoRecords, 2, false},
		{"empty array", "  []\n", 0, false},
		{"object", `{"error": "x"}`, 0, true},
		{"null", "null", 0, true},
		{"empty body", "", 0, true},
		{"truncated", `[{"id": 1}`, 0, true},
		{"non-integer id skipped", `[{"id": "one"}, {"id": 2}]`, 1, false},
		{"missing id skipped", `[{"first_name": "x"}]`, 0, false},
		{"non-object element skipped", `[42, "x", null, {"id": 3}]`, 1, false},
		{"string id", `[{"id": "7"}]`, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRecords([]byte(tt.body))
			if tt.malformed {
				if !errors.Is(err, ErrMalformedPayload) {
					t.Errorf("DecodeRecords() error = %v, want ErrMalformedPayload", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeRecords() error = %v", err)
			}
			if got == nil || len(got) != tt.wantLen {
				t.Errorf("DecodeRecords() = %v, want %d non-nil records", got, tt.wantLen)
			}
		})
	}
}

func TestDecodeRecords_LooselyTypedFields(t *testing.T) {
	body := `[
	  {"id": 1, "first_name": "Ada", "email": "ada@engines.io", "phone": 5551234,
	   "comment": true, "company": {"name": "Engines"}, "reason": null},
	  {"id": 2, "first_name": "Grace", "email": "grace@navy.mil", "phone": "555"}
	]`

	records, err := DecodeRecords([]byte(body))
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("DecodeRecords() = %d records, want 2", len(records))
	}

	ada := records[0]
	tests := []struct {
		field core.Field
		want  string
	}{
		{core.FieldFirstName, "Ada"},
		{core.FieldPhone, "5551234"},
		{core.FieldComment, "true"},
		{core.FieldCompany, `{"name": "Engines"}`},
	}
	for _, tt := range tests {
		if got := ada.Value(tt.field).String(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.field, got, tt.want)
		}
	}
	if ada.Reason != nil || ada.Industry != nil {
		t.Errorf("null and missing fields should stay nil, got reason=%v industry=%v", ada.Reason, ada.Industry)
	}
	if got := records[1].Value(core.FieldPhone).String(); got != "555" {
		t.Errorf("second record phone = %q, want 555", got)
	}
}

func TestLoad_ErrorsBecomeEmptyList(t *testing.T) {
	m := metrics.New()
	failing := Func(func(context.Context) ([]core.Record, error) {
		return nil, errors.New("connection refused")
	})
	malformed := Func(func(context.Context) ([]core.Record, error) {
		return nil, ErrMalformedPayload
	})

	for name, f := range map[string]Fetcher{"error": failing, "malformed": malformed} {
		got := Load(context.Background(), f, m)
		if got == nil || len(got) != 0 {
			t.Errorf("Load(%s) = %v, want empty non-nil slice", name, got)
		}
	}
}

func TestLoad_Success(t *testing.T) {
	src := NewStaticSource([]core.Record{{ID: 1}, {ID: 2}})
	got := Load(context.Background(), src, nil)
	if len(got) != 2 {
		t.Errorf("Load() = %d records, want 2", len(got))
	}

	empty := Load(context.Background(), Func(func(context.Context) ([]core.Record, error) { return nil, nil }), nil)
	if empty == nil {
		t.Error("Load() of a nil result should be a non-nil empty slice")
	}
}

func TestStaticSource_ReturnsCopies(t *testing.T) {
	src := NewStaticSource([]core.Record{{ID: 1, FirstName: "Ada"}})
	first, _ := src.Fetch(context.Background())
	first[0].FirstName = "changed"

	second, _ := src.Fetch(context.Background())
	if second[0].FirstName != "Ada" {
		t.Errorf("FirstName = %q, mutation leaked into the source", second[0].FirstName)
	}
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "records.json")
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(good, []byte(twoRecords), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte(`{"records": []}`), 0o600); err != nil {
		t.Fatal(err)
	}

	records, err := NewFileSource(good).Fetch(context.Background())
	if err != nil || len(records) != 2 {
		t.Errorf("Fetch(good) = %d records, %v", len(records), err)
	}
	if _, err := NewFileSource(bad).Fetch(context.Background()); !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("Fetch(bad) error = %v, want ErrMalformedPayload", err)
	}
	if _, err := NewFileSource(filepath.Join(dir, "missing.json")).Fetch(context.Background()); err == nil {
		t.Error("Fetch(missing) expected error")
	}
}

func TestFromConfig(t *testing.T) {
	cfg := &config.Config{
		Source: config.SourceConfig{URL: "https://b.example", Path: "/internal/form_data", IdentityToken: "t", Timeout: time.Second},
	}
	f, closeFn, err := FromConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("FromConfig(url) error = %v", err)
	}
	closeFn()
	hs, ok := f.(*HTTPSource)
	if !ok {
		t.Fatalf("FromConfig(url) = %T, want *HTTPSource", f)
	}
	if hs.endpoint != "https://b.example/internal/form_data" {
		t.Errorf("endpoint = %q", hs.endpoint)
	}
	if _, ok := hs.tokens.(StaticToken); !ok {
		t.Errorf("tokens = %T, want StaticToken", hs.tokens)
	}

	cfg = &config.Config{Source: config.SourceConfig{File: "records.json"}}
	if f, _, err := FromConfig(context.Background(), cfg); err != nil || f.(Named).Name() != "file" {
		t.Errorf("FromConfig(file) = %T, %v", f, err)
	}

	if _, _, err := FromConfig(context.Background(), &config.Config{}); err == nil {
		t.Error("FromConfig(empty) expected error")
	}
}
