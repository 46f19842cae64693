// Package server exposes editing sessions over HTTP. Each session owns one
// jstnlab.Engine; edits and commits return the new snapshot and are also
// published to the session's event stream.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	jstnlab "github.com/reoring/jstnlab"
	"github.com/reoring/jstnlab/internal/config"
)

// Server is the HTTP API server for jstnlab.
type Server struct {
	router   chi.Router
	sessions *registry
	cfg      config.Config
	opts     []jstnlab.Option
	log      zerolog.Logger
}

// New creates and configures the HTTP server. cfg must have passed Validate.
func New(cfg config.Config, log zerolog.Logger) *Server {
	s := &Server{
		sessions: newRegistry(cfg.SessionTTL.Duration, cfg.MaxSessions),
		cfg:      cfg,
		opts:     cfg.EngineOptions(),
		log:      log,
	}
	s.sessions.onEvict = func(id string) {
		s.log.Info().Str("session", id).Msg("session evicted")
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run evicts idle sessions until ctx is done, then closes the remaining
// sessions so their event streams end.
func (s *Server) Run(ctx context.Context) {
	interval := s.cfg.SessionTTL.Duration / 2
	if interval < time.Second {
		interval = time.Second
	}
	s.sessions.run(ctx, interval)
	s.sessions.closeAll()
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/check", s.handleCheck)

		r.Post("/sessions", s.handleCreateSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Post("/reset", s.handleReset)
			r.Put("/documents/{role}", s.handleEdit)
			r.Post("/documents/{role}/commit", s.handleCommit)
			r.Get("/events", s.handleEvents)
		})
	})

	s.router = r
}

func (s *Server) newEngine(decl, data *string) *jstnlab.Engine {
	d, j := s.cfg.InitialTypeDeclaration, s.cfg.InitialDataDocument
	if decl != nil {
		d = *decl
	}
	if data != nil {
		j = *data
	}
	return jstnlab.NewEngine(d, j, s.opts...)
}
