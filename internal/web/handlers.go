package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/formnav/internal/core"
	"github.com/JonMunkholm/formnav/internal/logging"
	"github.com/JonMunkholm/formnav/internal/web/templates"
)

// maxFormBytes bounds filter request bodies.
const maxFormBytes = 64 << 10

// action mutates a session's navigator from a request.
type action func(r *http.Request, nav *core.Navigator) error

// apiAction runs a on the caller's session and responds with the new view.
// The session must already exist; GET /api/view creates one.
func (s *Server) apiAction(a action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.session(w, r, false)
		if err != nil {
			s.respondError(w, r, err, http.StatusNotFound)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

		var view core.View
		err = sess.Do(func(nav *core.Navigator) error {
			if err := a(r, nav); err != nil {
				return err
			}
			view = nav.View()
			return nil
		})
		if err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
		writeJSON(w, view)
	}
}

// uiAction runs a for a plain HTML form and redirects back to the page.
// An expired session also redirects, which starts a fresh one.
func (s *Server) uiAction(a action) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.session(w, r, false)
		if errors.Is(err, ErrSessionNotFound) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if err != nil {
			s.respondError(w, r, err, http.StatusInternalServerError)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)

		if err := sess.Do(func(nav *core.Navigator) error { return a(r, nav) }); err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// applyFilters reads criteria from a form or a JSON body. Submitting
// filters always clears the selection and returns to page 1, even when the
// criteria are unchanged.
func (s *Server) applyFilters(r *http.Request, nav *core.Navigator) error {
	var c core.FilterCriteria

	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("invalid filter: %w", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
		if err := s.decoder.Decode(&c, r.PostForm); err != nil {
			return fmt.Errorf("invalid filter: %w", err)
		}
	}

	if err := c.Validate(); err != nil {
		return err
	}
	nav.SetFilter(c)
	return nil
}

func clearFilters(_ *http.Request, nav *core.Navigator) error {
	nav.ClearFilter()
	return nil
}

func toggleSort(r *http.Request, nav *core.Navigator) error {
	f, err := core.ParseField(chi.URLParam(r, "field"))
	if err != nil {
		return err
	}
	nav.ToggleSort(f)
	return nil
}

// setPage accepts a page number or "next" and "prev".
func setPage(r *http.Request, nav *core.Navigator) error {
	p := chi.URLParam(r, "page")
	switch p {
	case "next":
		nav.NextPage()
	case "prev", "previous":
		nav.PreviousPage()
	default:
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid page %q", p)
		}
		nav.SetPage(n)
	}
	return nil
}

// toggleSelected flips an entry, or sets it when a "selected" form value
// is present.
func toggleSelected(r *http.Request, nav *core.Navigator) error {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id %q", raw)
	}

	if v := r.FormValue("selected"); v != "" {
		selected, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid entry id %s: selected=%q is not a boolean", raw, v)
		}
		nav.SetSelected(id, selected)
		return nil
	}
	nav.Toggle(id)
	return nil
}

func selectAll(_ *http.Request, nav *core.Navigator) error {
	nav.SelectAll()
	return nil
}

func selectNone(_ *http.Request, nav *core.Navigator) error {
	nav.SelectNone()
	return nil
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// handleData returns the raw record array straight from the source.
func (s *Server) handleData(w http.ResponseWriter, r *http.Request) {
	records, err := s.source.Fetch(r.Context())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}
	if records == nil {
		records = []core.Record{}
	}
	writeJSON(w, records)
}

// handleView returns the session's current view, starting a session if needed.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r, true)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}
	writeJSON(w, sess.View())
}

// exportQuery is decoded from the export query string.
type exportQuery struct {
	Format string `schema:"format"`
	Scope  string `schema:"scope"`
}

// handleExport streams the filtered, sorted records as an attachment.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var q exportQuery
	if err := s.decoder.Decode(&q, r.URL.Query()); err != nil {
		s.respondError(w, r, fmt.Errorf("invalid export scope: %w", err), http.StatusBadRequest)
		return
	}
	if q.Format == "" {
		q.Format = string(core.FormatCSV)
	}

	format, err := core.ParseFormat(q.Format)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}
	scope, err := core.ParseScope(q.Scope)
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	sess, err := s.session(w, r, true)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	var (
		payload core.Payload
		count   int
	)
	err = sess.Do(func(nav *core.Navigator) error {
		records := nav.ExportSelection(scope)
		count = len(records)
		var err error
		payload, err = core.Export(records, format, core.ExportBaseName(scope, s.now()))
		return err
	})
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	s.metrics.ObserveExport(string(format), string(scope), count)
	logging.FromContext(r.Context()).Info("export",
		"format", format,
		"scope", scope,
		"records", count,
		"filename", payload.Filename,
	)

	w.Header().Set("Content-Type", payload.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payload.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(payload.Body)))
	w.Header().Set("Cache-Control", "no-store")
	w.Write(payload.Body)
}

// handleIndex renders the navigator page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(w, r, true)
	if err != nil {
		s.respondError(w, r, err, http.StatusInternalServerError)
		return
	}

	data := templates.PageData{
		View:       sess.View(),
		Industries: templates.Industries,
		Formats:    []core.Format{core.FormatCSV, core.FormatJSON, core.FormatXML},
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := templates.Page(data).Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "error", err)
	}
}
