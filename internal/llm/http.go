package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strings"
	"time"
)

// maxErrorSnippet bounds how much of a provider error body is carried in
// an error message.
const maxErrorSnippet = 300

// backoffInitial is the sleep before the first retry; each retry doubles it.
const backoffInitial = 500 * time.Millisecond

// HTTPClient talks to a network provider's chat-completions endpoint.
// One Generate call maps to one logical completion, with at most
// cfg.MaxRetries retries on transient failures.
type HTTPClient struct {
	cfg    *Config
	capa   capability
	client *http.Client
	apiKey string
}

// NewHTTPClient builds a client for cfg's provider. The credential is
// resolved from the environment variable named by cfg.APIKeyEnv; a missing
// credential is an AuthError raised before any request is made.
func NewHTTPClient(cfg *Config) (*HTTPClient, error) {
	capa, err := capabilityFor(cfg.Provider)
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv(cfg.APIKeyEnv)
	if strings.TrimSpace(apiKey) == "" {
		return nil, &AuthError{Message: fmt.Sprintf("environment variable %s is not set", cfg.APIKeyEnv)}
	}

	return &HTTPClient{
		cfg:    cfg,
		capa:   capa,
		client: &http.Client{Timeout: cfg.Timeout},
		apiKey: apiKey,
	}, nil
}

// Model returns the configured model identifier.
func (c *HTTPClient) Model() string {
	return c.cfg.Model
}

// Generate sends the composed prompt and returns the provider's raw text.
// Transient failures (429, 5xx, network resets) are retried with
// exponential backoff; everything else fails immediately.
func (c *HTTPClient) Generate(ctx context.Context, req Request) (string, error) {
	for attempt := 0; ; attempt++ {
		text, err := c.call(ctx, req)
		if err == nil {
			return text, nil
		}
		if !IsTransient(err) || attempt >= c.cfg.MaxRetries {
			return "", err
		}

		sleep := backoffInitial << attempt
		t := time.NewTimer(sleep)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
			return "", &TimeoutError{Message: "canceled while waiting to retry", Cause: ctx.Err()}
		}
	}
}

// call performs exactly one request/response cycle.
func (c *HTTPClient) call(ctx context.Context, req Request) (string, error) {
	body := c.capa.formatRequestBody(c.cfg, req.Prompt)
	if req.Temperature > 0 {
		body.Temperature = req.Temperature
	}
	if req.MaxTokens > 0 {
		body.MaxTokens = req.MaxTokens
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", &ProviderError{Message: fmt.Sprintf("failed to encode request: %v", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.capa.resolveEndpoint(c.cfg), bytes.NewReader(payload))
	if err != nil {
		return "", &ProviderError{Message: fmt.Sprintf("failed to build request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	name, value := c.capa.resolveAuthHeader(c.apiKey)
	httpReq.Header.Set(name, value)
	for k, v := range c.capa.extraHeaders(c.cfg) {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", c.classifyTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &NetworkError{Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.classifyStatus(resp.StatusCode, respBody)
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", &ProviderError{Message: fmt.Sprintf("malformed response body: %v", err), StatusCode: resp.StatusCode}
	}
	if parsed.Error != nil {
		return "", &ProviderError{Message: parsed.Error.Message, StatusCode: resp.StatusCode}
	}
	if len(parsed.Choices) == 0 {
		return "", &ProviderError{Message: "response contained no choices", StatusCode: resp.StatusCode}
	}

	return parsed.Choices[0].Message.Content, nil
}

// classifyTransportError maps transport failures onto the error taxonomy.
func (c *HTTPClient) classifyTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Message: "request deadline exceeded", Cause: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &TimeoutError{Message: "request timed out", Cause: err}
	}
	return &NetworkError{Message: "request failed", Cause: err}
}

// classifyStatus maps non-2xx statuses onto the error taxonomy. The body
// snippet is truncated and scrubbed of the credential.
func (c *HTTPClient) classifyStatus(status int, body []byte) error {
	snippet := c.redact(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &AuthError{Message: snippet, StatusCode: status}
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Message: snippet, StatusCode: status}
	default:
		return &ProviderError{Message: snippet, StatusCode: status}
	}
}

// redact truncates a response body for inclusion in an error message and
// removes the credential in case the provider echoed it back.
func (c *HTTPClient) redact(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorSnippet {
		s = s[:maxErrorSnippet] + "..."
	}
	if c.apiKey != "" {
		s = strings.ReplaceAll(s, c.apiKey, "[REDACTED]")
	}
	return s
}
