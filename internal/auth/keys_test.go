package auth

import (
	"bytes"
	"testing"
)

func TestDeriveKey(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		purpose string
		wantErr bool
	}{
		{name: "session token key", secret: "super-secret-value", purpose: PurposeSessionToken, wantErr: false},
		{name: "csrf key", secret: "super-secret-value", purpose: PurposeCSRF, wantErr: false},
		{name: "empty secret", secret: "", purpose: PurposeCSRF, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeriveKey(tt.secret, tt.purpose)
			if (err != nil) != tt.wantErr {
				t.Errorf("DeriveKey() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && len(got) != DerivedKeyLength {
				t.Errorf("DeriveKey() length = %d, want %d", len(got), DerivedKeyLength)
			}
		})
	}
}

func TestDeriveKey_Deterministic(t *testing.T) {
	first, err := DeriveKey("super-secret-value", PurposeCookieHash)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	second, err := DeriveKey("super-secret-value", PurposeCookieHash)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("expected the same key for the same secret and purpose")
	}

	other, err := DeriveKey("super-secret-value", PurposeCookieBlock)
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	if bytes.Equal(first, other) {
		t.Error("expected different keys for different purposes")
	}
}
