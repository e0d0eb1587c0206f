// Package web provides the HTTP server and handlers for the form submission navigator.
package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/schema"
	"golang.org/x/text/language"

	"github.com/JonMunkholm/formnav/internal/config"
	"github.com/JonMunkholm/formnav/internal/core"
	"github.com/JonMunkholm/formnav/internal/metrics"
	"github.com/JonMunkholm/formnav/internal/source"
	mw "github.com/JonMunkholm/formnav/internal/web/middleware"
)

// sweepInterval is how often idle sessions and rate limit buckets are dropped.
const sweepInterval = time.Minute

// Server is the HTTP server for the navigator.
type Server struct {
	cfg      *config.Config
	source   source.Fetcher
	metrics  *metrics.Metrics
	sessions *SessionStore
	decoder  *schema.Decoder
	router   *chi.Mux
	server   *http.Server
	now      func() time.Time

	limiter       *mw.RateLimiter
	exportLimiter *mw.RateLimiter
}

// NewServer creates a Server. Each new browser session loads records from
// src exactly once. m may be nil.
func NewServer(cfg *config.Config, src source.Fetcher, m *metrics.Metrics) *Server {
	decoder := schema.NewDecoder()
	decoder.IgnoreUnknownKeys(true)

	s := &Server{
		cfg:           cfg,
		source:        src,
		metrics:       m,
		decoder:       decoder,
		router:        chi.NewRouter(),
		now:           time.Now,
		limiter:       mw.NewRateLimiter(cfg.Rate.RequestsPerMinute),
		exportLimiter: mw.NewRateLimiter(cfg.Rate.ExportLimit),
	}
	s.sessions = NewSessionStore(cfg.Session.IdleTimeout, cfg.Session.MaxSessions, s.newNavigator, m)

	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// newNavigator loads the records of a new session. Load failures produce an
// empty navigator rather than an error.
func (s *Server) newNavigator(ctx context.Context) *core.Navigator {
	records := source.Load(ctx, s.source, s.metrics)
	return core.NewNavigator(records,
		core.WithPageSize(s.cfg.Navigator.PageSize),
		core.WithCollation(language.Make(s.cfg.Navigator.Locale)),
	)
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(mw.TrustedRealIP(s.cfg.Security.TrustedProxies))
	s.router.Use(mw.Logger)
	s.router.Use(mw.Metrics(s.metrics))
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	if s.cfg.Server.RequestTimeout > 0 {
		s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
	}
	s.router.Use(mw.SecurityHeaders(s.cfg.Security.EnableCSP))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Handle("/metrics", s.metrics.Handler())

	s.router.Group(func(r chi.Router) {
		if s.cfg.Rate.Enabled {
			r.Use(mw.RateLimit(s.limiter))
		}

		// Page and plain-form actions
		r.Get("/", s.handleIndex)
		r.Route("/ui", func(r chi.Router) {
			r.Post("/filters", s.uiAction(s.applyFilters))
			r.Post("/filters/clear", s.uiAction(clearFilters))
			r.Post("/sort/{field}", s.uiAction(toggleSort))
			r.Post("/page/{page}", s.uiAction(setPage))
			r.Post("/select/{id}", s.uiAction(toggleSelected))
			r.Post("/select-all", s.uiAction(selectAll))
			r.Post("/select-none", s.uiAction(selectNone))

			r.Group(func(r chi.Router) {
				if s.cfg.Rate.Enabled {
					r.Use(mw.RateLimit(s.exportLimiter))
				}
				r.Get("/export", s.handleExport)
			})
		})

		// JSON API
		r.Route("/api", func(r chi.Router) {
			r.Use(mw.APIKeyAuth(s.cfg.Security))

			r.Get("/data", s.handleData)
			r.Get("/view", s.handleView)

			r.Post("/filters", s.apiAction(s.applyFilters))
			r.Post("/filters/clear", s.apiAction(clearFilters))
			r.Post("/sort/{field}", s.apiAction(toggleSort))
			r.Post("/page/{page}", s.apiAction(setPage))
			r.Post("/select/{id}", s.apiAction(toggleSelected))
			r.Post("/select-all", s.apiAction(selectAll))
			r.Post("/select-none", s.apiAction(selectNone))

			r.Group(func(r chi.Router) {
				if s.cfg.Rate.Enabled {
					r.Use(mw.RateLimit(s.exportLimiter))
				}
				r.Get("/export", s.handleExport)
			})
		})
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
	return s.server.ListenAndServe()
}

// RunMaintenance drops idle sessions and rate limit buckets until ctx is done.
func (s *Server) RunMaintenance(ctx context.Context) {
	go s.limiter.Run(ctx, sweepInterval)
	go s.exportLimiter.Run(ctx, sweepInterval)
	s.sessions.Run(ctx, sweepInterval)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Sessions returns the session store.
func (s *Server) Sessions() *SessionStore {
	return s.sessions
}

// writeJSON encodes v as JSON and writes it to w.
// Logs encoding errors since headers are already sent.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode error", "error", err)
	}
}
