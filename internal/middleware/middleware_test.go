package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haguru/cookbook/pkg/metrics"
	"github.com/haguru/cookbook/pkg/zerolog"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestClientRateLimiter_Middleware(t *testing.T) {
	m := metrics.NewMetrics("cookbook")
	m.RegisterCounter(RateLimitedTotal, RateLimitedTotalHelp)
	limiter := NewClientRateLimiter(0.0001, 2, zerolog.NewZerologLoggerWithWriter("test", io.Discard), m)
	handler := limiter.Middleware(http.MethodPost)(okHandler)

	send := func(method, remote string) int {
		req := httptest.NewRequest(method, "/login", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send(http.MethodPost, "10.0.0.1:1111"))
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "10.0.0.1:2222"))
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, "10.0.0.1:3333"), "ports of one host share a bucket")
	assert.Equal(t, http.StatusOK, send(http.MethodPost, "10.0.0.2:1111"), "other clients are unaffected")
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "10.0.0.1:1111"), "GET is not limited")
}

func TestClientRateLimiter_Sweep(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewClientRateLimiter(1, 1, zerolog.NewZerologLoggerWithWriter("test", io.Discard), nil)
	limiter.now = func() time.Time { return now }

	limiter.Allow("old")
	now = now.Add(10 * time.Minute)
	limiter.Allow("fresh")

	assert.Equal(t, 1, limiter.Sweep(5*time.Minute))
	assert.Len(t, limiter.visitors, 1)
	assert.Contains(t, limiter.visitors, "fresh")
}

func TestClientAddress(t *testing.T) {
	tests := []struct {
		remote string
		want   string
	}{
		{remote: "192.0.2.1:1234", want: "192.0.2.1"},
		{remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{remote: "192.0.2.1", want: "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			assert.Equal(t, tt.want, clientAddress(req))
		})
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.NewZerologLoggerWithWriter("test", &buf)
	m := metrics.NewMetrics("cookbook")
	m.RegisterHistogramVec(HTTPRequestDurationSeconds, HTTPRequestDurationSecondsHelp, HTTPRequestDurationSecondsBuckets, HTTPRequestDurationLabels)

	router := chi.NewRouter()
	router.Use(RequestLogger(logger, m))
	router.Get("/show_recipe/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	t.Run("generates an id and logs the pattern", func(t *testing.T) {
		buf.Reset()
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/show_recipe/abc", nil))

		id := rec.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "HTTP request", entry["message"])
		assert.Equal(t, id, entry["request_id"])
		assert.Equal(t, "/show_recipe/{id}", entry["route"])
		assert.Equal(t, "/show_recipe/abc", entry["path"])
		assert.EqualValues(t, http.StatusNotFound, entry["status"])
	})

	t.Run("keeps a valid incoming id", func(t *testing.T) {
		incoming := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/show_recipe/abc", nil)
		req.Header.Set(RequestIDHeader, incoming)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, incoming, rec.Header().Get(RequestIDHeader))
	})

	t.Run("replaces a malformed incoming id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/show_recipe/abc", nil)
		req.Header.Set(RequestIDHeader, "<script>")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.NotEqual(t, "<script>", rec.Header().Get(RequestIDHeader))
	})

	t.Run("records the duration by route", func(t *testing.T) {
		families, err := m.GetRegistry().Gather()
		require.NoError(t, err)

		var found bool
		for _, f := range families {
			if f.GetName() != "cookbook_"+HTTPRequestDurationSeconds {
				continue
			}
			for _, metric := range f.GetMetric() {
				labels := map[string]string{}
				for _, l := range metric.GetLabel() {
					labels[l.GetName()] = l.GetValue()
				}
				if labels["route"] == "/show_recipe/{id}" && labels["status"] == "404" && labels["method"] == http.MethodGet {
					found = true
					assert.EqualValues(t, 3, metric.GetHistogram().GetSampleCount())
				}
			}
		}
		assert.True(t, found)
	})
}

func TestRequestLogger_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	handler := RequestLogger(zerolog.NewZerologLoggerWithWriter("test", &buf), nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("hi"))
		}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.Equal(t, unmatchedRoute, entry["route"])
}

func TestSecurityHeaders(t *testing.T) {
	rec := httptest.NewRecorder()
	SecurityHeaders(okHandler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, ContentSecurityPolicy, rec.Header().Get("Content-Security-Policy"))
}
