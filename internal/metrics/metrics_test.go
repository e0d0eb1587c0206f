package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_Handler(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/api/view", http.StatusOK, 5*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "formnav_http_requests_total") {
		t.Errorf("body missing request counter:\n%s", body)
	}
	if !strings.Contains(body, "go_goroutines") {
		t.Error("body missing Go runtime metrics")
	}
}

func TestMetrics_ObserveExport(t *testing.T) {
	m := New()
	m.ObserveExport("csv", "selected", 3)
	m.ObserveExport("csv", "selected", 2)
	m.ObserveExport("xml", "all", 10)

	if got := testutil.ToFloat64(m.exportsTotal.WithLabelValues("csv", "selected")); got != 2 {
		t.Errorf("exports_total{csv,selected} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.exportedRecords.WithLabelValues("csv")); got != 5 {
		t.Errorf("exported_records_total{csv} = %v, want 5", got)
	}
}

func TestMetrics_ObserveFetch(t *testing.T) {
	m := New()
	m.ObserveFetch("http", OutcomeOK, 42, time.Second)
	m.ObserveFetch("http", OutcomeMalformed, 0, time.Second)

	if got := testutil.ToFloat64(m.fetchedRecords.WithLabelValues("http")); got != 42 {
		t.Errorf("source_records{http} = %v, want 42", got)
	}
	if got := testutil.ToFloat64(m.fetchesTotal.WithLabelValues("http", OutcomeMalformed)); got != 1 {
		t.Errorf("source_fetches_total{http,malformed} = %v, want 1", got)
	}
}

func TestMetrics_InFlight(t *testing.T) {
	m := New()
	done := m.TrackInFlight()
	if got := testutil.ToFloat64(m.inFlight); got != 1 {
		t.Errorf("in flight = %v, want 1", got)
	}
	done()
	if got := testutil.ToFloat64(m.inFlight); got != 0 {
		t.Errorf("in flight = %v, want 0", got)
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveRequest("GET", "/", 200, time.Millisecond)
	m.ObserveExport("csv", "all", 1)
	m.ObserveFetch("http", OutcomeError, 0, time.Millisecond)
	m.SetSessions(3)
	m.TrackInFlight()()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("nil Handler status = %d, want 404", rec.Code)
	}
}
