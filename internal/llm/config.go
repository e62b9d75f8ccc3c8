// Package llm provides the provider configuration and generation client
// for the hosted model backends.
package llm

import (
	"fmt"
	"time"
)

// Provider identifies a generation backend. The set is closed: each value
// has exactly one capability in capabilityFor, and config validation
// rejects anything else.
type Provider string

const (
	// ProviderOpenAI is the direct OpenAI API.
	ProviderOpenAI Provider = "openai"
	// ProviderOpenRouter is the OpenRouter aggregator (OpenAI-compatible wire format).
	ProviderOpenRouter Provider = "openrouter"
	// ProviderMock returns canned output without a network call. It must be
	// selected explicitly; it is never used as a fallback on failure.
	ProviderMock Provider = "mock"
)

// ParseProvider converts a user-supplied provider name into a Provider.
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderOpenAI, ProviderOpenRouter, ProviderMock:
		return Provider(s), nil
	default:
		return "", fmt.Errorf("unknown provider %q (expected openai, openrouter, or mock)", s)
	}
}

// OutputFormat selects how generated emails are rendered for output.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatHTML OutputFormat = "html"
	FormatJSON OutputFormat = "json"
)

// Config holds the resolved provider configuration for one process
// invocation. APIKeyEnv is the name of the environment variable holding
// the credential; the literal key is resolved at client construction and
// never stored or logged.
type Config struct {
	Provider     Provider
	Model        string
	Temperature  float64
	MaxTokens    int
	BaseURL      string // empty means the provider's default endpoint base
	SiteURL      string // OpenRouter HTTP-Referer attribution
	AppName      string // OpenRouter X-Title attribution
	APIKeyEnv    string // empty means the provider's fixed secret name
	OutputFormat OutputFormat
	Timeout      time.Duration
	MaxRetries   int
}

// DefaultConfig returns a configuration targeting OpenAI with the stock
// model settings.
func DefaultConfig() *Config {
	return &Config{
		Provider:     ProviderOpenAI,
		Model:        "gpt-4-turbo-preview",
		Temperature:  0.7,
		MaxTokens:    2000,
		OutputFormat: FormatText,
		Timeout:      60 * time.Second,
		MaxRetries:   2,
	}
}

// Validate checks the configuration and fills provider-derived defaults
// (endpoint base and secret name) from the capability table.
func (c *Config) Validate() error {
	if _, err := ParseProvider(string(c.Provider)); err != nil {
		return err
	}

	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Temperature < 0 || c.Temperature > 1 {
		return fmt.Errorf("temperature must be between 0 and 1, got %v", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}

	switch c.OutputFormat {
	case "", FormatText, FormatHTML, FormatJSON:
	default:
		return fmt.Errorf("unknown output format %q (expected text, html, or json)", c.OutputFormat)
	}
	if c.OutputFormat == "" {
		c.OutputFormat = FormatText
	}

	if c.Provider != ProviderMock {
		capa, err := capabilityFor(c.Provider)
		if err != nil {
			return err
		}
		if c.BaseURL == "" {
			c.BaseURL = capa.defaultBaseURL()
		}
		if c.APIKeyEnv == "" {
			c.APIKeyEnv = capa.secretName()
		}
	}
	if c.Timeout <= 0 {
		c.Timeout = 60 * time.Second
	}
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}

	return nil
}
