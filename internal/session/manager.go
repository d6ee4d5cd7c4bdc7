package session

import (
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/cookbook/config"
	"github.com/haguru/cookbook/internal/auth"
	"github.com/haguru/cookbook/internal/interfaces"

	"github.com/gorilla/sessions"
)

const (
	// TokenCookieName carries the signed session token.
	TokenCookieName = "session_token"
	// FlashSessionName is the encrypted cookie holding queued flash messages.
	FlashSessionName = "cookbook-flash"
)

// Keys are the per-purpose secrets the manager signs and encrypts with.
type Keys struct {
	TokenSigning []byte
	CookieHash   []byte
	CookieBlock  []byte
}

// Manager keeps the authenticated username in a JWT cookie and the flash
// queue in a gorilla cookie session. Both live entirely client-side.
type Manager struct {
	signingKey []byte
	ttl        time.Duration
	secure     bool
	flashStore *sessions.CookieStore
	logger     interfaces.Logger
}

var _ interfaces.SessionManager = (*Manager)(nil)

// NewManager builds a Manager. keys should come from auth.DeriveKey.
func NewManager(keys Keys, cfg config.SessionConfig, logger interfaces.Logger) (*Manager, error) {
	if len(keys.TokenSigning) == 0 || len(keys.CookieHash) == 0 || len(keys.CookieBlock) == 0 {
		return nil, fmt.Errorf("session keys must not be empty")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", cfg.TTL)
	}

	store := sessions.NewCookieStore(keys.CookieHash, keys.CookieBlock)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = cfg.CookieSecure
	store.Options.SameSite = http.SameSiteLaxMode
	// browser-session cookie
	store.Options.MaxAge = 0

	return &Manager{
		signingKey: keys.TokenSigning,
		ttl:        cfg.TTL,
		secure:     cfg.CookieSecure,
		flashStore: store,
		logger:     logger,
	}, nil
}

// Start issues a fresh token for username, replacing any existing session.
func (m *Manager) Start(w http.ResponseWriter, r *http.Request, username string) error {
	token, err := auth.CreateToken(username, m.signingKey, m.ttl)
	if err != nil {
		return fmt.Errorf("failed to create session token: %w", err)
	}

	http.SetCookie(w, m.tokenCookie(token, int(m.ttl.Seconds())))
	m.logger.Debug("Session started", "user", username)
	return nil
}

func (m *Manager) Current(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(TokenCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}

	claims, err := auth.VerifyToken(cookie.Value, m.signingKey)
	if err != nil {
		m.logger.Debug("Rejected session token", "error", err)
		return "", false
	}
	if claims.Username == "" {
		return "", false
	}
	return claims.Username, true
}

func (m *Manager) End(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, m.tokenCookie("", -1))
}

func (m *Manager) tokenCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     TokenCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// AddFlash queues message for the next rendered page.
func (m *Manager) AddFlash(w http.ResponseWriter, r *http.Request, message string) error {
	// A cookie that fails to decode yields a fresh session alongside the error.
	flashSession, err := m.flashStore.Get(r, FlashSessionName)
	if err != nil {
		m.logger.Debug("Discarding unreadable flash cookie", "error", err)
	}

	flashSession.AddFlash(message)
	if err := flashSession.Save(r, w); err != nil {
		return fmt.Errorf("failed to save flash: %w", err)
	}
	return nil
}

func (m *Manager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	flashSession, err := m.flashStore.Get(r, FlashSessionName)
	if err != nil {
		m.logger.Debug("Discarding unreadable flash cookie", "error", err)
	}

	raw := flashSession.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := flashSession.Save(r, w); err != nil {
		m.logger.Warn("Failed to clear flashes", "error", err)
	}

	messages := make([]string, 0, len(raw))
	for _, f := range raw {
		if msg, ok := f.(string); ok {
			messages = append(messages, msg)
		}
	}
	return messages
}
