package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/compute/metadata"
)

// TokenSource supplies the bearer token sent to the backend.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// StaticToken is a fixed token, typically injected through configuration.
type StaticToken string

// Token returns t.
func (t StaticToken) Token(context.Context) (string, error) {
	if t == "" {
		return "", errors.New("identity token: empty static token")
	}
	return string(t), nil
}

// identityTokenTTL is how long a metadata identity token is reused.
// Google issues them with a one hour lifetime.
const identityTokenTTL = 50 * time.Minute

// MetadataTokenSource requests Google identity tokens for an audience from
// the GCE metadata server, as available on Cloud Run and GCE.
type MetadataTokenSource struct {
	audience string
	client   *metadata.Client
	now      func() time.Time

	mu      sync.Mutex
	token   string
	expires time.Time
}

// NewMetadataTokenSource creates a token source for audience. A nil
// httpClient uses the metadata package default.
func NewMetadataTokenSource(audience string, httpClient *http.Client) *MetadataTokenSource {
	return &MetadataTokenSource{
		audience: audience,
		client:   metadata.NewClient(httpClient),
		now:      time.Now,
	}
}

// Token returns a cached identity token or requests a new one.
func (s *MetadataTokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.now().Before(s.expires) {
		return s.token, nil
	}

	suffix := "instance/service-accounts/default/identity?audience=" + url.QueryEscape(s.audience)
	tok, err := s.client.GetWithContext(ctx, suffix)
	if err != nil {
		return "", fmt.Errorf("identity token for %s: %w", s.audience, err)
	}
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return "", fmt.Errorf("identity token for %s: empty response", s.audience)
	}

	s.token = tok
	s.expires = s.now().Add(identityTokenTTL)
	return tok, nil
}
