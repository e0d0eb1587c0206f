// Package logging configures log/slog and carries chi request ids into
// log entries.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// Setup makes a stdout handler the slog default. Unknown levels mean info
// and any format other than "json" means text. JSON lines use Cloud
// Logging's "severity" key in place of "level".
func Setup(level, format string) {
	slog.SetDefault(slog.New(NewHandler(os.Stdout, level, format)))
}

// NewHandler builds the handler Setup installs, writing to w.
func NewHandler(w io.Writer, level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if !strings.EqualFold(format, "json") {
		return slog.NewTextHandler(w, opts)
	}
	opts.ReplaceAttr = severityAttr
	return slog.NewJSONHandler(w, opts)
}

// severityAttr renames the top-level level key. WARN is spelled WARNING,
// the only level name Cloud Logging does not share with slog.
func severityAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) != 0 || a.Key != slog.LevelKey {
		return a
	}
	level := a.Value.String()
	if lv, ok := a.Value.Any().(slog.Level); ok && lv == slog.LevelWarn {
		level = "WARNING"
	}
	return slog.String("severity", level)
}

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// parseLevel falls back to info for unknown names.
func parseLevel(name string) slog.Level {
	if lv, ok := levels[strings.ToLower(name)]; ok {
		return lv
	}
	return slog.LevelInfo
}

// FromContext returns the default logger, tagged with the chi request id
// when ctx carries one, so every line of a request can be correlated:
//
//	logging.FromContext(r.Context()).Info("export", "format", format, "records", n)
func FromContext(ctx context.Context) *slog.Logger {
	reqID := middleware.GetReqID(ctx)
	if reqID == "" {
		return slog.Default()
	}
	return slog.Default().With("request_id", reqID)
}

// WithFields is FromContext plus extra key/value pairs.
func WithFields(ctx context.Context, args ...any) *slog.Logger {
	return FromContext(ctx).With(args...)
}
