package config

import "testing"

func TestNewTrackingConfig(t *testing.T) {
	t.Setenv("TRACKING_SECRET", "test-secret")
	t.Setenv("TRACKING_EXPIRATION_HOURS", "")

	cfg, err := NewTrackingConfig()
	if err != nil {
		t.Fatalf("NewTrackingConfig failed: %v", err)
	}
	if cfg.Secret != "test-secret" {
		t.Errorf("Secret = %q", cfg.Secret)
	}
	if cfg.ExpirationHours != 720 {
		t.Errorf("ExpirationHours = %d, want 720", cfg.ExpirationHours)
	}
}

func TestNewTrackingConfig_MissingSecret(t *testing.T) {
	t.Setenv("TRACKING_SECRET", "")
	if _, err := NewTrackingConfig(); err == nil {
		t.Error("expected error when TRACKING_SECRET unset, got nil")
	}
}

func TestNewTrackingConfig_BadExpiration(t *testing.T) {
	t.Setenv("TRACKING_SECRET", "test-secret")

	tests := []string{"zero", "0", "-5"}
	for _, v := range tests {
		t.Run("hours="+v, func(t *testing.T) {
			t.Setenv("TRACKING_EXPIRATION_HOURS", v)
			if _, err := NewTrackingConfig(); err == nil {
				t.Errorf("expected error for TRACKING_EXPIRATION_HOURS=%s", v)
			}
		})
	}
}
