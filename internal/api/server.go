// Package api serves the pipeline over HTTP.
//
// Every endpoint takes the raw markdown document as the request body and reads
// its options from the query string:
//
//	GET  /health
//	POST /api/outline?parser=
//	POST /api/layout?parser=&root=&width=&height=&measure=
//	POST /api/render?format=&root=&viz=&scale=&no_text=&detailed=
//
// Layout and render also accept theme=NAME, which loads NAME.toml from the
// directory given with [WithThemeDir]. Names are relative paths and may not
// leave that directory.
//
// Errors are returned as {"error": "...", "code": "...", "request_id": "..."}
// with the status from [errors.HTTPStatus].
package api

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/mindmap/pkg/pipeline"
)

// Server is the HTTP API server for mindmap.
type Server struct {
	router   chi.Router
	runner   *pipeline.Runner
	log      *log.Logger
	themeDir string
}

// Option configures a [Server].
type Option func(*Server)

// WithThemeDir serves the TOML themes in dir to the theme query parameter.
func WithThemeDir(dir string) Option {
	return func(s *Server) { s.themeDir = dir }
}

// NewServer creates and configures the HTTP server.
func NewServer(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		runner: runner,
		log:    logger,
	}
	for _, o := range opts {
		o(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/outline", s.handleOutline)
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})

	s.router = r
}
