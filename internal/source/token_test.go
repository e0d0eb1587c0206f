package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestMetadataTokenSource(t *testing.T) {
	var calls atomic.Int32
	audiences := make(chan string, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Metadata-Flavor") != "Google" {
			http.Error(w, "missing flavor", http.StatusForbidden)
			return
		}
		if r.URL.Path != "/computeMetadata/v1/instance/service-accounts/default/identity" {
			http.NotFound(w, r)
			return
		}
		calls.Add(1)
		audiences <- r.URL.Query().Get("audience")
		w.Write([]byte("id-token-123\n"))
	}))
	defer srv.Close()
	t.Setenv("GCE_METADATA_HOST", strings.TrimPrefix(srv.URL, "http://"))

	ts := NewMetadataTokenSource("https://backend.example.run.app", srv.Client())
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts.now = func() time.Time { return now }

	tok, err := ts.Token(context.Background())
	if err != nil {
		t.Fatalf("Token() error = %v", err)
	}
	if tok != "id-token-123" {
		t.Errorf("Token() = %q, want trimmed token", tok)
	}
	if got := <-audiences; got != "https://backend.example.run.app" {
		t.Errorf("audience = %q", got)
	}

	if _, err := ts.Token(context.Background()); err != nil {
		t.Fatalf("cached Token() error = %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("metadata calls = %d, want 1 while cached", calls.Load())
	}

	now = now.Add(identityTokenTTL + time.Second)
	if _, err := ts.Token(context.Background()); err != nil {
		t.Fatalf("refreshed Token() error = %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("metadata calls = %d, want 2 after expiry", calls.Load())
	}
}

func TestMetadataTokenSource_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	t.Setenv("GCE_METADATA_HOST", strings.TrimPrefix(srv.URL, "http://"))

	_, err := NewMetadataTokenSource("aud", srv.Client()).Token(context.Background())
	if err == nil || !strings.Contains(err.Error(), "identity token") {
		t.Errorf("Token() error = %v, want identity token error", err)
	}
}

func TestStaticToken(t *testing.T) {
	if tok, err := StaticToken("abc").Token(context.Background()); err != nil || tok != "abc" {
		t.Errorf("Token() = %q, %v", tok, err)
	}
	if _, err := StaticToken("").Token(context.Background()); err == nil {
		t.Error("empty StaticToken expected error")
	}
}
