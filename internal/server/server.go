package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/haguru/cookbook/internal/interfaces"

	"github.com/go-chi/chi/v5"
)

var (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 30 * time.Second
)

var allowedMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

type Server struct {
	Port   string
	Host   string
	server *http.Server
	router *chi.Mux
	Logger interfaces.Logger
}

// NewServer creates a new Server instance with the specified host and port.
func NewServer(host, port string, logger interfaces.Logger) interfaces.Server {
	router := chi.NewRouter()
	server := &http.Server{
		Addr:         net.JoinHostPort(host, port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	return &Server{
		Host:   host,
		Port:   port,
		server: server,
		router: router,
		Logger: logger,
	}
}

func (s *Server) Use(middlewares ...func(http.Handler) http.Handler) {
	s.router.Use(middlewares...)
}

// AddRoute registers handler for method and route. Routes use chi patterns,
// so "/show_recipe/{id}" exposes the id through chi.URLParam.
func (s *Server) AddRoute(method, route string, handler http.HandlerFunc) error {
	if !allowedMethods[method] {
		return fmt.Errorf("unsupported method %q for route %s", method, route)
	}
	if route == "" || route[0] != '/' {
		return fmt.Errorf("route %q must start with /", route)
	}
	if handler == nil {
		return fmt.Errorf("handler for %s %s is nil", method, route)
	}

	s.router.Method(method, route, handler)
	s.Logger.Info("Route added", "method", method, "route", route)
	return nil
}

func (s *Server) NotFound(handler http.HandlerFunc) {
	s.router.NotFound(handler)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks until the server stops. A graceful Shutdown is not
// reported as an error.
func (s *Server) ListenAndServe() error {
	s.Logger.Info("Starting server", "host", s.Host, "port", s.Port)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.Logger.Error("Failed to start server", "error", err)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("Shutting down server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
