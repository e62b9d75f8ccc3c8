package llm

import (
	"fmt"
	"strings"
)

// capability describes how to talk to one network provider: where its
// endpoint lives, how the credential is presented, and how the request
// body is formatted. The implementations form a closed set; adding a
// provider means adding a variant here and a case in capabilityFor.
type capability interface {
	resolveEndpoint(cfg *Config) string
	resolveAuthHeader(apiKey string) (name, value string)
	formatRequestBody(cfg *Config, prompt string) chatRequest
	extraHeaders(cfg *Config) map[string]string
	defaultBaseURL() string
	secretName() string
}

// capabilityFor returns the capability for a network provider. The mock
// provider has no capability; it never touches the wire.
func capabilityFor(p Provider) (capability, error) {
	switch p {
	case ProviderOpenAI:
		return openAICapability{}, nil
	case ProviderOpenRouter:
		return openRouterCapability{}, nil
	default:
		return nil, fmt.Errorf("no capability for provider %q", p)
	}
}

// chatEndpoint joins a base URL with the chat-completions path.
func chatEndpoint(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/chat/completions"
}

// formatChatBody builds the shared chat-completions request body.
func formatChatBody(cfg *Config, prompt string) chatRequest {
	return chatRequest{
		Model:       cfg.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}
}

type openAICapability struct{}

func (openAICapability) resolveEndpoint(cfg *Config) string {
	return chatEndpoint(cfg.BaseURL)
}

func (openAICapability) resolveAuthHeader(apiKey string) (string, string) {
	return "Authorization", "Bearer " + apiKey
}

func (openAICapability) formatRequestBody(cfg *Config, prompt string) chatRequest {
	return formatChatBody(cfg, prompt)
}

func (openAICapability) extraHeaders(*Config) map[string]string {
	return nil
}

func (openAICapability) defaultBaseURL() string {
	return "https://api.openai.com/v1"
}

func (openAICapability) secretName() string {
	return "OPENAI_API_KEY"
}

type openRouterCapability struct{}

func (openRouterCapability) resolveEndpoint(cfg *Config) string {
	return chatEndpoint(cfg.BaseURL)
}

func (openRouterCapability) resolveAuthHeader(apiKey string) (string, string) {
	return "Authorization", "Bearer " + apiKey
}

func (openRouterCapability) formatRequestBody(cfg *Config, prompt string) chatRequest {
	return formatChatBody(cfg, prompt)
}

// extraHeaders returns the OpenRouter attribution headers.
func (openRouterCapability) extraHeaders(cfg *Config) map[string]string {
	siteURL := cfg.SiteURL
	if siteURL == "" {
		siteURL = "http://localhost"
	}
	appName := cfg.AppName
	if appName == "" {
		appName = "SDR Email Generator"
	}
	return map[string]string{
		"HTTP-Referer": siteURL,
		"X-Title":      appName,
	}
}

func (openRouterCapability) defaultBaseURL() string {
	return "https://openrouter.ai/api/v1"
}

func (openRouterCapability) secretName() string {
	return "OPENROUTER_API_KEY"
}
