package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haguru/cookbook/pkg/zerolog"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	return NewServer("127.0.0.1", "0", zerolog.NewZerologLoggerWithWriter("test", io.Discard)).(*Server)
}

func TestNewServer(t *testing.T) {
	s := newTestServer()

	assert.Equal(t, "127.0.0.1:0", s.server.Addr)
	assert.Equal(t, ReadTimeout, s.server.ReadTimeout)
	assert.Equal(t, WriteTimeout, s.server.WriteTimeout)
	assert.Equal(t, IdleTimeout, s.server.IdleTimeout)
}

func TestServer_AddRoute(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {}

	tests := []struct {
		name    string
		method  string
		route   string
		handler http.HandlerFunc
		wantErr bool
	}{
		{name: "get", method: http.MethodGet, route: "/recipes", handler: handler},
		{name: "post with param", method: http.MethodPost, route: "/edit_recipe/{id}", handler: handler},
		{name: "unknown method", method: "BREW", route: "/coffee", handler: handler, wantErr: true},
		{name: "relative route", method: http.MethodGet, route: "recipes", handler: handler, wantErr: true},
		{name: "nil handler", method: http.MethodGet, route: "/recipes", handler: nil, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer()
			err := s.AddRoute(tt.method, tt.route, tt.handler)
			if (err != nil) != tt.wantErr {
				t.Errorf("AddRoute() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestServer_Routing(t *testing.T) {
	s := newTestServer()
	s.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Test", "yes")
			next.ServeHTTP(w, r)
		})
	})
	require.NoError(t, s.AddRoute(http.MethodGet, "/show_recipe/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, chi.URLParam(r, "id"))
	}))
	s.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "custom")
	})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{name: "path param", method: http.MethodGet, path: "/show_recipe/abc", wantStatus: http.StatusOK, wantBody: "abc"},
		{name: "wrong method", method: http.MethodPost, path: "/show_recipe/abc", wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown path", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound, wantBody: "custom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.Handler().ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "yes", rec.Header().Get("X-Test"))
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestServer_ShutdownStopsListen(t *testing.T) {
	s := newTestServer()

	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe() }()

	// give the listener a moment to start
	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("ListenAndServe did not return after Shutdown")
	}
}
