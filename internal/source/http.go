package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/JonMunkholm/formnav/internal/core"
)

// maxPayloadBytes bounds a payload from any source.
const maxPayloadBytes = 64 << 20

// HTTPSource fetches records from the backend service with a GET request.
type HTTPSource struct {
	endpoint string
	tokens   TokenSource
	client   *http.Client
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithTokenSource authenticates requests with bearer tokens from ts.
func WithTokenSource(ts TokenSource) HTTPOption {
	return func(s *HTTPSource) { s.tokens = ts }
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// NewHTTPSource creates a source for the full endpoint URL.
func NewHTTPSource(endpoint string, timeout time.Duration, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Named.
func (s *HTTPSource) Name() string { return "http" }

// Fetch requests the record array. Non-2xx statuses are errors; a body that
// is not a JSON array yields ErrMalformedPayload.
func (s *HTTPSource) Fetch(ctx context.Context) ([]core.Record, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	if s.tokens != nil {
		tok, err := s.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("fetch %s: unexpected status %d", s.endpoint, resp.StatusCode)
	}

	body, err := readPayload(resp.Body, maxPayloadBytes)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.endpoint, err)
	}
	return DecodeRecords(body)
}
