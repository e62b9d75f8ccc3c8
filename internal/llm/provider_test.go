package llm

import "testing"

func TestCapabilityEndpoints(t *testing.T) {
	tests := []struct {
		provider Provider
		baseURL  string
		want     string
	}{
		{ProviderOpenAI, "https://api.openai.com/v1", "https://api.openai.com/v1/chat/completions"},
		{ProviderOpenAI, "https://api.openai.com/v1/", "https://api.openai.com/v1/chat/completions"},
		{ProviderOpenRouter, "https://openrouter.ai/api/v1", "https://openrouter.ai/api/v1/chat/completions"},
	}

	for _, tt := range tests {
		capa, err := capabilityFor(tt.provider)
		if err != nil {
			t.Fatalf("capabilityFor(%s) returned error: %v", tt.provider, err)
		}
		got := capa.resolveEndpoint(&Config{BaseURL: tt.baseURL})
		if got != tt.want {
			t.Errorf("resolveEndpoint(%s, %q) = %q, want %q", tt.provider, tt.baseURL, got, tt.want)
		}
	}
}

func TestCapabilityAuthHeader(t *testing.T) {
	for _, p := range []Provider{ProviderOpenAI, ProviderOpenRouter} {
		capa, err := capabilityFor(p)
		if err != nil {
			t.Fatalf("capabilityFor(%s) returned error: %v", p, err)
		}
		name, value := capa.resolveAuthHeader("sk-test")
		if name != "Authorization" || value != "Bearer sk-test" {
			t.Errorf("resolveAuthHeader(%s) = %q: %q, want bearer auth", p, name, value)
		}
	}
}

func TestOpenRouterExtraHeaders(t *testing.T) {
	capa := openRouterCapability{}

	headers := capa.extraHeaders(&Config{SiteURL: "https://example.com", AppName: "Example App"})
	if headers["HTTP-Referer"] != "https://example.com" {
		t.Errorf("HTTP-Referer = %q, want configured site URL", headers["HTTP-Referer"])
	}
	if headers["X-Title"] != "Example App" {
		t.Errorf("X-Title = %q, want configured app name", headers["X-Title"])
	}

	// Attribution defaults apply when the config is silent.
	headers = capa.extraHeaders(&Config{})
	if headers["HTTP-Referer"] != "http://localhost" {
		t.Errorf("default HTTP-Referer = %q, want http://localhost", headers["HTTP-Referer"])
	}
}

func TestOpenAIHasNoExtraHeaders(t *testing.T) {
	capa := openAICapability{}
	if headers := capa.extraHeaders(&Config{}); len(headers) != 0 {
		t.Errorf("extraHeaders() = %v, want none", headers)
	}
}

func TestCapabilityForMockFails(t *testing.T) {
	if _, err := capabilityFor(ProviderMock); err == nil {
		t.Errorf("capabilityFor(mock) = nil, want error (mock never touches the wire)")
	}
}
