package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/evcraddock/realty-site/internal/blog"
	"github.com/evcraddock/realty-site/internal/catalog"
	"github.com/evcraddock/realty-site/internal/catalogsync"
	"github.com/evcraddock/realty-site/internal/category"
	"github.com/evcraddock/realty-site/internal/contact"
	"github.com/evcraddock/realty-site/internal/property"
	"github.com/evcraddock/realty-site/internal/validation"
)

// apiError writes a JSON error response.
func apiError(w http.ResponseWriter, msg string, code int) {
	apiJSON(w, map[string]string{"error": msg}, code)
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data interface{}, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "err", err)
	}
}

// apiValidationError writes a 400 with per-field messages.
func apiValidationError(w http.ResponseWriter, err error) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		apiError(w, err.Error(), http.StatusBadRequest)
		return
	}
	apiJSON(w, map[string]interface{}{
		"error":  verr.Error(),
		"fields": verr.Fields,
	}, http.StatusBadRequest)
}

// catalogView is the visitor's current page of results.
type catalogView struct {
	Criteria   catalog.Criteria  `json:"criteria"`
	Category   string            `json:"category"`
	Anchor     string            `json:"anchor,omitempty"`
	Total      int               `json:"total"`
	Count      int               `json:"count"`
	Version    uint64            `json:"version"`
	Properties []property.Record `json:"properties"`
}

func (sess *session) view() catalogView {
	filtered := sess.store.Filtered()
	return catalogView{
		Criteria:   sess.store.Criteria(),
		Category:   sess.resolver.Current(),
		Total:      len(sess.store.Records()),
		Count:      len(filtered),
		Version:    sess.version,
		Properties: filtered,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	_, version := s.catalog.Records()
	apiJSON(w, map[string]interface{}{"status": "ok", "version": version}, http.StatusOK)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	current := sess.resolver.Current()
	sess.mu.Unlock()

	apiJSON(w, map[string]interface{}{
		"categories": category.Shortcuts,
		"current":    current,
	}, http.StatusOK)
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	v := sess.view()
	sess.mu.Unlock()

	apiJSON(w, v, http.StatusOK)
}

func (s *Server) handleUpdateCriteria(w http.ResponseWriter, r *http.Request) {
	var patch catalog.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		apiError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	if err := patch.Validate(); err != nil {
		apiValidationError(w, err)
		return
	}

	sess := s.session(w, r)
	sess.store.UpdateCriteria(patch)
	v := sess.view()
	sess.mu.Unlock()

	apiJSON(w, v, http.StatusOK)
}

func (s *Server) handleResetCriteria(w http.ResponseWriter, r *http.Request) {
	sess := s.session(w, r)
	sess.store.ResetCriteria()
	v := sess.view()
	sess.mu.Unlock()

	apiJSON(w, v, http.StatusOK)
}

func (s *Server) handleSelectCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sess := s.session(w, r)
	sel, err := sess.resolver.Select(id)
	if err != nil {
		sess.mu.Unlock()
		if errors.Is(err, category.ErrUnknownCategory) {
			apiError(w, "unknown category", http.StatusNotFound)
			return
		}
		apiError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	v := sess.view()
	sess.mu.Unlock()

	v.Anchor = sel.Anchor
	apiJSON(w, v, http.StatusOK)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	err := s.catalog.Reload(r.Context())
	switch {
	case err == nil:
		_, version := s.catalog.Records()
		apiJSON(w, map[string]interface{}{"status": "reloaded", "version": version}, http.StatusOK)
	case errors.Is(err, catalogsync.ErrSuperseded):
		apiJSON(w, map[string]interface{}{"status": "superseded"}, http.StatusAccepted)
	default:
		slog.Warn("catalog reload failed", "err", err)
		apiError(w, "listings are unavailable, try again later", http.StatusBadGateway)
	}
}

// propertyFromRequest looks up the {id} listing in the visitor's session.
// It writes the error response itself and returns ok == false on failure.
func (s *Server) propertyFromRequest(w http.ResponseWriter, r *http.Request) (property.Record, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		apiError(w, "invalid property ID", http.StatusBadRequest)
		return property.Record{}, false
	}

	sess := s.session(w, r)
	rec, err := sess.store.Get(id)
	sess.mu.Unlock()

	if errors.Is(err, catalog.ErrNotFound) {
		apiError(w, "property not found", http.StatusNotFound)
		return property.Record{}, false
	}
	if err != nil {
		apiError(w, err.Error(), http.StatusInternalServerError)
		return property.Record{}, false
	}
	return rec, true
}

func (s *Server) handleProperty(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.propertyFromRequest(w, r)
	if !ok {
		return
	}
	apiJSON(w, rec, http.StatusOK)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.propertyFromRequest(w, r)
	if !ok {
		return
	}
	if s.contactPhone == "" {
		apiError(w, "contact number not configured", http.StatusServiceUnavailable)
		return
	}

	link, err := contact.PropertyLink(s.contactPhone, rec)
	if err != nil {
		slog.Error("building contact link", "err", err)
		apiError(w, "contact number not configured", http.StatusServiceUnavailable)
		return
	}
	apiJSON(w, map[string]interface{}{
		"id":      rec.ID,
		"url":     link,
		"message": contact.PropertyMessage(rec),
	}, http.StatusOK)
}

func (s *Server) handlePosts(w http.ResponseWriter, r *http.Request) {
	if s.posts == nil {
		apiError(w, "posts are unavailable", http.StatusServiceUnavailable)
		return
	}
	posts, err := s.posts.ListPublishedPosts(r.Context())
	if err != nil {
		slog.Warn("loading posts", "err", err)
		apiError(w, "posts are unavailable, try again later", http.StatusBadGateway)
		return
	}
	if posts == nil {
		posts = []blog.Post{}
	}
	apiJSON(w, posts, http.StatusOK)
}
