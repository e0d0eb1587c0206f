// Package source loads form submissions from the systems that own them.
//
// Every source implements Fetcher. Callers that need the boundary rule of
// the navigator (a failed load shows an empty table) use Load, which never
// returns an error.
package source

import (
	"context"
	"errors"
	"time"

	"github.com/JonMunkholm/formnav/internal/core"
	"github.com/JonMunkholm/formnav/internal/logging"
	"github.com/JonMunkholm/formnav/internal/metrics"
)

// ErrMalformedPayload is returned when a source answers with something
// other than an array of records.
var ErrMalformedPayload = errors.New("malformed payload")

// Fetcher retrieves the complete record collection.
type Fetcher interface {
	Fetch(ctx context.Context) ([]core.Record, error)
}

// Named is implemented by fetchers that report a metrics label.
type Named interface {
	Name() string
}

func nameOf(f Fetcher) string {
	if n, ok := f.(Named); ok {
		return n.Name()
	}
	return "custom"
}

// Load fetches once from f. Failures are logged, counted and replaced by an
// empty, non-nil collection. There is no retry.
func Load(ctx context.Context, f Fetcher, m *metrics.Metrics) []core.Record {
	name := nameOf(f)
	logger := logging.WithFields(ctx, "source", name)
	start := time.Now()

	records, err := f.Fetch(ctx)
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, ErrMalformedPayload):
		logger.Warn("source returned a non-array payload, using empty list",
			"error", err, "duration", elapsed)
		m.ObserveFetch(name, metrics.OutcomeMalformed, 0, elapsed)
		return []core.Record{}
	case err != nil:
		logger.Error("failed to load records", "error", err, "duration", elapsed)
		m.ObserveFetch(name, metrics.OutcomeError, 0, elapsed)
		return []core.Record{}
	}

	if records == nil {
		records = []core.Record{}
	}
	logger.Info("records loaded", "count", len(records), "duration", elapsed)
	m.ObserveFetch(name, metrics.OutcomeOK, len(records), elapsed)
	return records
}

// Func adapts a function to Fetcher.
type Func func(ctx context.Context) ([]core.Record, error)

// Fetch calls fn.
func (fn Func) Fetch(ctx context.Context) ([]core.Record, error) { return fn(ctx) }
