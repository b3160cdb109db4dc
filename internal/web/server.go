// Package web provides the public JSON API for browsing the catalog.
package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/karlseguin/ccache/v3"

	"github.com/evcraddock/realty-site/internal/blog"
	"github.com/evcraddock/realty-site/internal/logging"
	"github.com/evcraddock/realty-site/internal/property"
)

// Catalog is the shared listing source, normally a *catalogsync.Syncer.
type Catalog interface {
	Records() ([]property.Record, uint64)
	Reload(ctx context.Context) error
}

// PostLister serves published blog posts, normally a *client.Client.
type PostLister interface {
	ListPublishedPosts(ctx context.Context) ([]blog.Post, error)
}

// Options configures a Server.
type Options struct {
	Catalog      Catalog
	Posts        PostLister
	ContactPhone string
	SessionTTL   time.Duration
	MaxSessions  int64
	// CORSOrigins lists the sites allowed to call the API from a browser.
	// Session cookies are only accepted cross-origin when every origin is
	// named explicitly; "*" allows reads without credentials.
	CORSOrigins []string
	// ReloadToken guards POST /api/catalog/reload. An empty token disables
	// the endpoint.
	ReloadToken string
}

// Server is the public site HTTP server.
type Server struct {
	catalog      Catalog
	posts        PostLister
	contactPhone string
	reloadToken  string
	sessionTTL   time.Duration
	sessions     *ccache.Cache[*session]
	router       chi.Router
}

// NewServer creates a web server backed by the given catalog.
func NewServer(opts Options) *Server {
	ttl := opts.SessionTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	maxSessions := opts.MaxSessions
	if maxSessions <= 0 {
		maxSessions = 10000
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s := &Server{
		catalog:      opts.Catalog,
		posts:        opts.Posts,
		contactPhone: opts.ContactPhone,
		reloadToken:  opts.ReloadToken,
		sessionTTL:   ttl,
		sessions:     ccache.New(ccache.Configure[*session]().MaxSize(maxSessions)),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, logging.RequestLogger, middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: !slices.Contains(origins, "*"),
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", s.handleCategories)

		r.Route("/catalog", func(r chi.Router) {
			r.Get("/", s.handleCatalog)
			r.Patch("/criteria", s.handleUpdateCriteria)
			r.Delete("/criteria", s.handleResetCriteria)
			r.Post("/categories/{id}", s.handleSelectCategory)
			r.With(s.requireReloadToken).Post("/reload", s.handleReload)
		})

		r.Get("/properties/{id}", s.handleProperty)
		r.Get("/properties/{id}/contact", s.handleContact)
		r.Get("/posts", s.handlePosts)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		apiError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting web server", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down web server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

// Close releases the session cache.
func (s *Server) Close() {
	s.sessions.Stop()
}
