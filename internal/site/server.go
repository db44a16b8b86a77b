// Package site serves the documentation shell, highlighted partials and
// the route API over HTTP and websocket.
package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/iodocs/internal/highlight"
	"github.com/ziadkadry99/iodocs/internal/pages"
	"github.com/ziadkadry99/iodocs/internal/route"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool   // allow all CORS origins (dev mode)
	Title    string // shown in the shell page header
	Partials fs.FS  // tree of <section>/<id>.html|.md partials
	Logger   *slog.Logger
}

// Server is the documentation site server.
type Server struct {
	cfg        Config
	index      *pages.Index
	opts       route.Options
	renderer   *highlight.Renderer
	log        *slog.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a Server resolving routes over index with opts.
func New(cfg Config, index *pages.Index, opts route.Options, renderer *highlight.Renderer) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Title == "" {
		cfg.Title = "Documentation"
	}
	if renderer == nil {
		renderer = highlight.New("")
	}
	s := &Server{
		cfg:      cfg,
		index:    index,
		opts:     opts,
		renderer: renderer,
		log:      cfg.Logger,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Websocket sessions are long-lived and stay outside the timeout group.
	r.Get("/ws/route", s.handleSession)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(30 * time.Second))
		r.Get("/", s.handleShell)
		r.Get("/partials/{section}/{file}", s.handlePartial)
		r.Get("/static/highlight.css", s.handleHighlightCSS)
		r.Get("/api/route", s.handleRoute)
		r.Get("/api/pages", s.handlePages)
	})

	return r
}

// Router returns the chi router, e.g. for tests or extra routes.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("iodocs server listening", "addr", addr, "pages", s.index.Len())
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// newResolver creates a resolver for one request or session.
func (s *Server) newResolver(opts route.Options) *route.Resolver {
	return route.New(s.index, opts)
}
