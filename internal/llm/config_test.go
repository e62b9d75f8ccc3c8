package llm

import (
	"testing"
	"time"
)

func TestConfigValidateFillsProviderDefaults(t *testing.T) {
	cfg := &Config{
		Provider:    ProviderOpenRouter,
		Model:       "anthropic/claude-3-sonnet",
		Temperature: 0.7,
		MaxTokens:   2000,
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}

	if cfg.BaseURL != "https://openrouter.ai/api/v1" {
		t.Errorf("BaseURL = %q, want openrouter default", cfg.BaseURL)
	}
	if cfg.APIKeyEnv != "OPENROUTER_API_KEY" {
		t.Errorf("APIKeyEnv = %q, want OPENROUTER_API_KEY", cfg.APIKeyEnv)
	}
	if cfg.Timeout != 60*time.Second {
		t.Errorf("Timeout = %v, want 60s default", cfg.Timeout)
	}
	if cfg.OutputFormat != FormatText {
		t.Errorf("OutputFormat = %q, want text default", cfg.OutputFormat)
	}
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{
			name: "unknown provider",
			cfg:  Config{Provider: "gemini", Model: "m", Temperature: 0.5, MaxTokens: 100},
		},
		{
			name: "missing model",
			cfg:  Config{Provider: ProviderOpenAI, Temperature: 0.5, MaxTokens: 100},
		},
		{
			name: "temperature out of range",
			cfg:  Config{Provider: ProviderOpenAI, Model: "m", Temperature: 1.5, MaxTokens: 100},
		},
		{
			name: "non-positive max tokens",
			cfg:  Config{Provider: ProviderOpenAI, Model: "m", Temperature: 0.5, MaxTokens: 0},
		},
		{
			name: "unknown output format",
			cfg:  Config{Provider: ProviderOpenAI, Model: "m", Temperature: 0.5, MaxTokens: 100, OutputFormat: "xml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Validate(); err == nil {
				t.Errorf("Validate() = nil, want error")
			}
		})
	}
}

func TestParseProvider(t *testing.T) {
	for _, valid := range []string{"openai", "openrouter", "mock"} {
		if _, err := ParseProvider(valid); err != nil {
			t.Errorf("ParseProvider(%q) returned error: %v", valid, err)
		}
	}
	if _, err := ParseProvider("anthropic"); err == nil {
		t.Errorf("ParseProvider(anthropic) = nil, want error")
	}
}

func TestMockProviderSkipsCapabilityDefaults(t *testing.T) {
	cfg := &Config{Provider: ProviderMock, Model: "mock-model", Temperature: 0.5, MaxTokens: 100}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned error: %v", err)
	}
	if cfg.APIKeyEnv != "" {
		t.Errorf("APIKeyEnv = %q, want empty for mock provider", cfg.APIKeyEnv)
	}
}
