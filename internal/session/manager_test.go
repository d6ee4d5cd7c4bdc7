package session

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/haguru/cookbook/config"
	"github.com/haguru/cookbook/internal/auth"
	"github.com/haguru/cookbook/pkg/zerolog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKeys(t *testing.T) Keys {
	t.Helper()
	derive := func(purpose string) []byte {
		key, err := auth.DeriveKey("a-test-secret-that-is-long-enough", purpose)
		require.NoError(t, err)
		return key
	}
	return Keys{
		TokenSigning: derive(auth.PurposeSessionToken),
		CookieHash:   derive(auth.PurposeCookieHash),
		CookieBlock:  derive(auth.PurposeCookieBlock),
	}
}

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(testKeys(t), config.SessionConfig{TTL: ttl}, zerolog.NewZerologLoggerWithWriter("test", io.Discard))
	require.NoError(t, err)
	return m
}

// nextRequest carries the cookies set on rec into a new request, the way a
// browser would.
func nextRequest(rec *httptest.ResponseRecorder) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		if c.MaxAge < 0 {
			continue
		}
		req.AddCookie(c)
	}
	return req
}

func TestNewManager_Invalid(t *testing.T) {
	logger := zerolog.NewZerologLoggerWithWriter("test", io.Discard)

	_, err := NewManager(Keys{}, config.SessionConfig{TTL: time.Hour}, logger)
	assert.Error(t, err)

	_, err = NewManager(testKeys(t), config.SessionConfig{TTL: 0}, logger)
	assert.Error(t, err)
}

func TestManager_StartAndCurrent(t *testing.T) {
	m := newTestManager(t, time.Hour)

	user, ok := m.Current(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
	assert.Empty(t, user)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Start(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "alice"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, TokenCookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, 3600, cookies[0].MaxAge)

	user, ok = m.Current(nextRequest(rec))
	assert.True(t, ok)
	assert.Equal(t, "alice", user)
}

func TestManager_CurrentRejectsBadTokens(t *testing.T) {
	m := newTestManager(t, time.Hour)

	rec := httptest.NewRecorder()
	require.NoError(t, m.Start(rec, httptest.NewRequest(http.MethodPost, "/login", nil), "alice"))
	valid := rec.Result().Cookies()[0].Value

	otherKeys := testKeys(t)
	otherKeys.TokenSigning = []byte("some-other-signing-key-entirely!")
	other, err := NewManager(otherKeys, config.SessionConfig{TTL: time.Hour}, zerolog.NewZerologLoggerWithWriter("test", io.Discard))
	require.NoError(t, err)

	expired, err := auth.CreateToken("alice", testKeys(t).TokenSigning, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		manager *Manager
		value   string
	}{
		{name: "tampered payload", manager: m, value: strings.Replace(valid, ".", ".x", 1)},
		{name: "garbage", manager: m, value: "not-a-token"},
		{name: "signed with another key", manager: other, value: valid},
		{name: "expired", manager: m, value: expired},
		{name: "empty", manager: m, value: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: tt.value})

			_, ok := tt.manager.Current(req)
			assert.False(t, ok)
		})
	}
}

func TestManager_End(t *testing.T) {
	m := newTestManager(t, time.Hour)

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		m.End(rec, httptest.NewRequest(http.MethodGet, "/logout", nil))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, TokenCookieName, cookies[0].Name)
		assert.Empty(t, cookies[0].Value)
		assert.Less(t, cookies[0].MaxAge, 0)

		_, ok := m.Current(nextRequest(rec))
		assert.False(t, ok)
	}
}

func TestManager_FlashesAreDeliveredOnce(t *testing.T) {
	m := newTestManager(t, time.Hour)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	require.NoError(t, m.AddFlash(rec, req, "Registration Successful!"))
	require.NoError(t, m.AddFlash(rec, req, "second"))

	// the last Set-Cookie wins in a browser
	cookies := rec.Result().Cookies()
	last := cookies[len(cookies)-1]
	readReq := httptest.NewRequest(http.MethodGet, "/profile/alice", nil)
	readReq.AddCookie(last)

	readRec := httptest.NewRecorder()
	assert.Equal(t, []string{"Registration Successful!", "second"}, m.Flashes(readRec, readReq))

	assert.Empty(t, m.Flashes(httptest.NewRecorder(), nextRequest(readRec)))
}

func TestManager_FlashesWithoutCookie(t *testing.T) {
	m := newTestManager(t, time.Hour)

	rec := httptest.NewRecorder()
	assert.Empty(t, m.Flashes(rec, httptest.NewRequest(http.MethodGet, "/", nil)))
	assert.Empty(t, rec.Result().Cookies())
}

func TestManager_FlashSurvivesUnreadableCookie(t *testing.T) {
	m := newTestManager(t, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: FlashSessionName, Value: "corrupted"})
	rec := httptest.NewRecorder()
	require.NoError(t, m.AddFlash(rec, req, "hello"))

	assert.Equal(t, []string{"hello"}, m.Flashes(httptest.NewRecorder(), nextRequest(rec)))
}
