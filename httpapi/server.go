// Package httpapi is the HTTP front-end collaborator described in spec §6:
// request decoding, routing to get/insert, and JSON framing. It holds a
// process-wide lecar.Controller behind that controller's own mutex and maps
// each request to exactly one core operation.
package httpapi

import (
	"log"
	"net/http"
	"strings"

	"github.com/ivanbrykalov/lecar/lecar"
)

// healthBody is the literal success body for GET /health, taken verbatim
// from the reference front-end.
const healthBody = "LeCaR is healthy running on Rocket!"

// Server wraps a string-keyed Controller with the three routes spec §6
// names: GET /health, GET /cache/{key}, POST /cache.
type Server struct {
	core *lecar.Controller[string, string]

	logger *log.Logger
}

// New constructs a Server around an existing controller. A nil logger
// defaults to log.Default().
func New(core *lecar.Controller[string, string], logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{core: core, logger: logger}
}

// Handler returns the http.Handler exposing all three routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /cache/{key}", s.handleGet)
	mux.HandleFunc("POST /cache", s.handleInsert)
	return mux
}

func (s *Server) logAccess(method, key string) {
	s.logger.Printf("%s %s", method, key)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.logAccess(r.Method, strings.TrimPrefix(r.URL.Path, "/"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(healthBody))
}
