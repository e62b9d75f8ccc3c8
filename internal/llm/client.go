package llm

import "context"

// Request is one composed prompt payload plus the sampling parameters to
// forward. When MaxTokens is zero the client falls back to its configured
// temperature and token limit.
type Request struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

// Client is an abstraction over generation backends. Implementations make
// at most one logical generation per call and surface failures as the
// typed errors in this package.
type Client interface {
	// Generate sends one composed prompt and returns the provider's raw text.
	Generate(ctx context.Context, req Request) (string, error)
	// Model returns the configured model identifier.
	Model() string
}

// NewClient creates a client for the configured provider. The mock
// provider is returned only when explicitly configured; a network failure
// never falls back to it.
func NewClient(cfg *Config) (Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Provider {
	case ProviderMock:
		return NewMockClient(cfg), nil
	default:
		return NewHTTPClient(cfg)
	}
}
