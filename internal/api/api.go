// Package api hosts the fog engine over HTTP.
//
// The API is a thin layer over pkg/session and pkg/pipeline: it parses
// requests, delegates to the session store and the pipeline runner, and
// serializes results. All fog semantics live below it.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/fogbanklabs/fogbank/pkg/cache"
	"github.com/fogbanklabs/fogbank/pkg/errors"
	"github.com/fogbanklabs/fogbank/pkg/pipeline"
	"github.com/fogbanklabs/fogbank/pkg/session"
)

// Server wires the session store, render cache, and logger behind the
// HTTP routes.
type Server struct {
	sessions session.Store
	cache    cache.Cache
	logger   *log.Logger
}

// NewServer creates an API server.
// If c is nil, render caching is disabled.
// If logger is nil, the default logger is used.
func NewServer(sessions session.Store, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		sessions: sessions,
		cache:    c,
		logger:   logger,
	}
}

// Routes returns the HTTP handler for the API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Post("/sessions", s.handleCreateSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", s.handleGetSession)
		r.Delete("/", s.handleDeleteSession)
		r.Post("/members", s.handleJoinSession)
		r.Post("/ops", s.handleApplyOps)
		r.Get("/frame", s.handleRenderFrame)
	})
	return r
}

// runner builds a pipeline runner whose cache keys are scoped to one
// session, so tables never share cached geometry.
func (s *Server) runner(sessionID string) *pipeline.Runner {
	keyer := cache.NewScopedKeyer(nil, "session:"+sessionID+":")
	return pipeline.NewRunner(s.cache, keyer, s.logger)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// writeJSON serializes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error's code to an HTTP status and emits a JSON body
// with the code and a user-safe message.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusFor(code), map[string]string{
		"code":  string(code),
		"error": errors.UserMessage(err),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeSessionNotFound, errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeInvalidCoord, errors.ErrCodeInvalidCellSize,
		errors.ErrCodeInvalidOp, errors.ErrCodeInvalidScenario,
		errors.ErrCodeInvalidViewer, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidGesture,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
