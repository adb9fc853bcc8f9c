// Package server provides the HTTP handlers and routing for the order MCP server.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/reamplc-eng/shopify-order-mcp/internal/tools"
)

// Config contains server configuration values such as port and auth token.
type Config struct {
	Port string
	// Token gates the /mcp routes with bearer auth. Empty leaves them open.
	Token string
	// CredentialPresent reports whether an upstream access token is
	// configured. It only affects the health payload; calls without a
	// credential fail at dispatch time.
	CredentialPresent bool
}

// Server contains the configured router and dispatcher for the MCP server.
type Server struct {
	cfg        Config
	router     *chi.Mux
	dispatcher *tools.Dispatcher
	logger     *slog.Logger
}

// New constructs a Server with middleware and routes configured. dispatcher
// may be nil, in which case tool routes answer with a fixed service
// unavailable error while the health probe keeps working.
func New(cfg Config, dispatcher *tools.Dispatcher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		cfg:        cfg,
		router:     chi.NewRouter(),
		dispatcher: dispatcher,
		logger:     logger,
	}
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Get("/health", s.handleHealth)

	s.router.Route("/mcp", func(r chi.Router) {
		r.Use(s.auth)
		r.Get("/tools", s.handleListTools)
		r.Post("/call", s.handleCall)
	})

	return s
}

// Router exposes the root HTTP handler for the server.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Token == "" {
			next.ServeHTTP(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer "+s.cfg.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:            "ok",
		CatalogLoaded:     s.dispatcher != nil,
		CredentialPresent: s.cfg.CredentialPresent,
	})
}

func (s *Server) handleListTools(w http.ResponseWriter, _ *http.Request) {
	if s.dispatcher == nil {
		s.serviceUnavailable(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.dispatcher.Catalog().Definitions()})
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	if s.dispatcher == nil {
		s.serviceUnavailable(w)
		return
	}
	var req CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	result := s.dispatcher.Call(r.Context(), req.Name, req.Args)
	if result.IsError {
		s.logger.Warn("tool call failed", "tool", req.Name)
	}
	// Tool-level failures ride the isError flag; the HTTP layer stays 200.
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) serviceUnavailable(w http.ResponseWriter) {
	writeJSON(w, http.StatusServiceUnavailable, tools.Result{
		Content: []tools.ContentBlock{{Type: "text", Text: "service unavailable: tool catalog not initialized"}},
		IsError: true,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
