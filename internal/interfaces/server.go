package interfaces

import (
	"context"
	"net/http"
)

// Server interface defines the methods for a server implementation.
type Server interface {
	// Use appends middleware; it must be called before any AddRoute.
	Use(middlewares ...func(http.Handler) http.Handler)
	AddRoute(method, route string, handler http.HandlerFunc) error
	// NotFound sets the handler for paths no route matches.
	NotFound(handler http.HandlerFunc)
	Handler() http.Handler
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}
