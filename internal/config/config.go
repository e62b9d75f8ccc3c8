// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config filename probed in the working directory
// when no --config flag is given.
const DefaultConfigFile = "config.yaml"

// Config represents the tool configuration loaded from a YAML file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags. Secrets are never read from this file.
type Config struct {
	// ModelProvider selects the generation backend: openai, openrouter, or mock.
	ModelProvider string `yaml:"model_provider"`

	Providers Providers     `yaml:"providers"`
	Email     EmailConfig   `yaml:"email"`
	Output    OutputConfig  `yaml:"output"`
	Batch     BatchConfig   `yaml:"batch"`
	API       APIConfig     `yaml:"api"`
	Logging   LoggingConfig `yaml:"logging"`
}

// Providers holds per-provider settings. The set of providers is closed;
// adding one requires a new field here and a matching capability in the
// llm package.
type Providers struct {
	OpenAI     ProviderSettings `yaml:"openai"`
	OpenRouter ProviderSettings `yaml:"openrouter"`
}

// ProviderSettings holds the tunable generation parameters for one provider.
type ProviderSettings struct {
	Model           string   `yaml:"model"`
	Temperature     float64  `yaml:"temperature"`
	MaxTokens       int      `yaml:"max_tokens"`
	BaseURL         string   `yaml:"base_url"`
	SiteURL         string   `yaml:"site_url,omitempty"`
	AppName         string   `yaml:"app_name,omitempty"`
	AvailableModels []string `yaml:"available_models,omitempty"`
}

// EmailConfig holds email tone and structure preferences fed to the composer.
type EmailConfig struct {
	Tone   string `yaml:"tone"`
	Length string `yaml:"length"`
	Style  string `yaml:"style"`
}

// OutputConfig controls how generated emails are rendered and saved.
type OutputConfig struct {
	Format     string `yaml:"format"`
	SaveToFile bool   `yaml:"save_to_file"`
	OutputDir  string `yaml:"output_dir"`
}

// BatchConfig bounds batch-mode concurrency and request rate.
type BatchConfig struct {
	Workers   int     `yaml:"workers"`
	RateLimit float64 `yaml:"rate_limit"`
}

// APIConfig holds HTTP server settings. KeyHash is a bcrypt hash of the
// API key; an empty hash disables authentication.
type APIConfig struct {
	Addr    string `yaml:"addr"`
	KeyHash string `yaml:"key_hash"`
}

// LoggingConfig controls CLI verbosity.
type LoggingConfig struct {
	Verbose bool `yaml:"verbose"`
}

// MaxBatchWorkers caps batch concurrency so a misconfigured pool cannot
// flood the provider.
const MaxBatchWorkers = 8

// LoadConfig loads configuration from a YAML file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		ModelProvider: "openai",
		Providers: Providers{
			OpenAI: ProviderSettings{
				Model:       "gpt-4-turbo-preview",
				Temperature: 0.7,
				MaxTokens:   2000,
				BaseURL:     "https://api.openai.com/v1",
				AvailableModels: []string{
					"gpt-4-turbo-preview",
					"gpt-4o",
					"gpt-3.5-turbo",
				},
			},
			OpenRouter: ProviderSettings{
				Model:       "anthropic/claude-3-sonnet",
				Temperature: 0.7,
				MaxTokens:   2000,
				BaseURL:     "https://openrouter.ai/api/v1",
				SiteURL:     "http://localhost",
				AppName:     "SDR Email Generator",
				AvailableModels: []string{
					"anthropic/claude-3-sonnet",
					"anthropic/claude-3-opus",
					"openai/gpt-4-turbo",
					"meta-llama/llama-3-70b-instruct",
				},
			},
		},
		Email: EmailConfig{
			Tone:   "professional",
			Length: "medium",
			Style:  "professional",
		},
		Output: OutputConfig{
			Format:     "text",
			SaveToFile: false,
			OutputDir:  "generated_emails",
		},
		Batch: BatchConfig{
			Workers: 4,
		},
		API: APIConfig{
			Addr: ":8080",
		},
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	switch c.ModelProvider {
	case "openai", "openrouter", "mock":
	case "":
		return fmt.Errorf("config error: 'model_provider' is required")
	default:
		return fmt.Errorf("config error: unknown model_provider %q (expected openai, openrouter, or mock)", c.ModelProvider)
	}

	for name, p := range map[string]ProviderSettings{
		"openai":     c.Providers.OpenAI,
		"openrouter": c.Providers.OpenRouter,
	} {
		if p.Temperature < 0 || p.Temperature > 1 {
			return fmt.Errorf("config error: providers.%s.temperature must be between 0 and 1", name)
		}
		if p.MaxTokens < 0 {
			return fmt.Errorf("config error: providers.%s.max_tokens must be non-negative", name)
		}
	}

	switch c.Output.Format {
	case "", "text", "html", "json":
	default:
		return fmt.Errorf("config error: unknown output.format %q (expected text, html, or json)", c.Output.Format)
	}

	switch c.Email.Length {
	case "", "short", "medium", "long":
	default:
		return fmt.Errorf("config error: unknown email.length %q (expected short, medium, or long)", c.Email.Length)
	}

	if c.Batch.Workers < 0 || c.Batch.Workers > MaxBatchWorkers {
		return fmt.Errorf("config error: batch.workers must be between 1 and %d", MaxBatchWorkers)
	}
	if c.Batch.RateLimit < 0 {
		return fmt.Errorf("config error: batch.rate_limit must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply built-in defaults under config file values.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.ModelProvider == "" {
		result.ModelProvider = defaults.ModelProvider
	}

	result.Providers.OpenAI = mergeProvider(result.Providers.OpenAI, defaults.Providers.OpenAI)
	result.Providers.OpenRouter = mergeProvider(result.Providers.OpenRouter, defaults.Providers.OpenRouter)

	if result.Email.Tone == "" {
		result.Email.Tone = defaults.Email.Tone
	}
	if result.Email.Length == "" {
		result.Email.Length = defaults.Email.Length
	}
	if result.Email.Style == "" {
		result.Email.Style = defaults.Email.Style
	}

	if result.Output.Format == "" {
		result.Output.Format = defaults.Output.Format
	}
	if result.Output.OutputDir == "" {
		result.Output.OutputDir = defaults.Output.OutputDir
	}

	if result.Batch.Workers == 0 {
		result.Batch.Workers = defaults.Batch.Workers
	}
	if result.Batch.RateLimit == 0 {
		result.Batch.RateLimit = defaults.Batch.RateLimit
	}

	if result.API.Addr == "" {
		result.API.Addr = defaults.API.Addr
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// mergeProvider fills unset provider settings from defaults.
func mergeProvider(p, defaults ProviderSettings) ProviderSettings {
	if p.Model == "" {
		p.Model = defaults.Model
	}
	if p.Temperature == 0 {
		p.Temperature = defaults.Temperature
	}
	if p.MaxTokens == 0 {
		p.MaxTokens = defaults.MaxTokens
	}
	if p.BaseURL == "" {
		p.BaseURL = defaults.BaseURL
	}
	if p.SiteURL == "" {
		p.SiteURL = defaults.SiteURL
	}
	if p.AppName == "" {
		p.AppName = defaults.AppName
	}
	if len(p.AvailableModels) == 0 {
		p.AvailableModels = defaults.AvailableModels
	}
	return p
}

// ActiveProvider returns the settings block for the configured provider.
// The mock provider reuses the OpenAI block for model metadata.
func (c *Config) ActiveProvider() ProviderSettings {
	if c.ModelProvider == "openrouter" {
		return c.Providers.OpenRouter
	}
	return c.Providers.OpenAI
}
