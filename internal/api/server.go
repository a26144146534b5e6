// Package api serves the layout pipeline over HTTP.
//
// # Endpoints
//
//	GET  /healthz         liveness and version
//	GET  /v1/strategies   strategies, output formats and the layout config
//	POST /v1/layout       family tree in, layout JSON out
//	POST /v1/render       family tree in, one rendered artifact out
//
// Both POST endpoints take the same body:
//
//	{
//	  "graph":   {"nodes": [...], "edges": [...]},
//	  "options": {"strategy": "radial", "undirected": true, "formats": ["svg"]}
//	}
//
// Errors are JSON objects carrying the machine-readable code of the
// underlying [errors.Error]:
//
//	{"error": {"code": "INVALID_STRATEGY", "message": "unknown strategy: ..."}}
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// DefaultMaxBodyBytes bounds request bodies.
const DefaultMaxBodyBytes = 8 << 20

// Options configures a Server.
type Options struct {
	// AllowedOrigin is sent as Access-Control-Allow-Origin. Empty means "*".
	AllowedOrigin string

	// MaxBodyBytes bounds request bodies. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

// Server handles API requests with a shared pipeline runner.
type Server struct {
	runner  *pipeline.Runner
	logger  *log.Logger
	opts    Options
	started time.Time
}

// New creates a server. A nil logger means the runner's logger.
func New(runner *pipeline.Runner, logger *log.Logger, opts Options) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	if opts.AllowedOrigin == "" {
		opts.AllowedOrigin = "*"
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		runner:  runner,
		logger:  logger,
		opts:    opts,
		started: time.Now(),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.cors)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
	})

	// Inline middleware runs after routing, so the matched pattern is known.
	r.Group(func(r chi.Router) {
		r.Use(s.instrument)

		r.Get("/healthz", s.handleHealth)
		r.Get("/v1/strategies", s.handleStrategies)
		r.Post("/v1/layout", s.handleLayout)
		r.Post("/v1/render", s.handleRender)
	})

	return r
}
