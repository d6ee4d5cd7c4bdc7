package auth

import (
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Purpose labels for keys derived from the service secret. Each purpose
// yields an independent key.
const (
	PurposeSessionToken = "cookbook/session-token"
	PurposeCookieHash   = "cookbook/cookie-hash"
	PurposeCookieBlock  = "cookbook/cookie-block"
	PurposeCSRF         = "cookbook/csrf"

	DerivedKeyLength = 32
)

// DeriveKey expands the configured secret into a 32-byte key for purpose.
func DeriveKey(secret, purpose string) ([]byte, error) {
	if secret == "" {
		return nil, fmt.Errorf("secret key is empty")
	}

	reader := hkdf.New(sha256.New, []byte(secret), nil, []byte(purpose))
	key := make([]byte, DerivedKeyLength)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, fmt.Errorf("failed to derive %s key: %w", purpose, err)
	}

	return key, nil
}
