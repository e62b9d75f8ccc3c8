package delivery

import (
	"strings"
	"testing"

	"github.com/shegge-stack/EmailGenerator/internal/config"
)

func newTestTokenService(secret string, hours int) *TokenService {
	return NewTokenService(&config.TrackingConfig{Secret: secret, ExpirationHours: hours})
}

func TestTokenRoundTrip(t *testing.T) {
	svc := newTestTokenService("test-secret", 24)

	token, err := svc.GenerateToken("msg-123", "Jane.Doe@Example.com", EventClick, "https://acme.example.com/pricing")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned error: %v", err)
	}
	if claims.MessageID != "msg-123" {
		t.Errorf("MessageID = %q, want msg-123", claims.MessageID)
	}
	if claims.Event != EventClick {
		t.Errorf("Event = %q, want %q", claims.Event, EventClick)
	}
	if claims.TargetURL != "https://acme.example.com/pricing" {
		t.Errorf("TargetURL = %q", claims.TargetURL)
	}
	if claims.RecipientHash != HashRecipient("jane.doe@example.com") {
		t.Errorf("recipient hash must be case-insensitive")
	}
}

func TestGenerateTokenRejectsUnknownEvent(t *testing.T) {
	svc := newTestTokenService("test-secret", 24)

	if _, err := svc.GenerateToken("msg-123", "jane@example.com", "reply", ""); err == nil {
		t.Errorf("GenerateToken = nil error, want unknown event error")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	signer := newTestTokenService("secret-one", 24)
	verifier := newTestTokenService("secret-two", 24)

	token, err := signer.GenerateToken("msg-123", "jane@example.com", EventOpen, "")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Errorf("ValidateToken = nil error, want signature error")
	} else if !strings.Contains(err.Error(), "signature") {
		t.Errorf("error = %v, want signature error", err)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestTokenService("test-secret", -1)

	token, err := svc.GenerateToken("msg-123", "jane@example.com", EventOpen, "")
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Errorf("ValidateToken = nil error, want expired error")
	} else if !strings.Contains(err.Error(), "expired") {
		t.Errorf("error = %v, want expired error", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newTestTokenService("test-secret", 24)

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.ValidateToken(tok); err == nil {
			t.Errorf("ValidateToken(%q) = nil error, want error", tok)
		}
	}
}

func TestHashRecipientNormalizes(t *testing.T) {
	a := HashRecipient("  Jane@Example.COM ")
	b := HashRecipient("jane@example.com")
	if a != b {
		t.Errorf("hash should normalize case and whitespace: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
