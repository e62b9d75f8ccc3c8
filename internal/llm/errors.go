package llm

import "fmt"

// AuthError indicates a bad or missing credential. It is never retried.
type AuthError struct {
	Message    string
	StatusCode int
}

func (e *AuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("auth error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("auth error: %s", e.Message)
}

// RateLimitError indicates the provider throttled the request (HTTP 429).
type RateLimitError struct {
	Message    string
	StatusCode int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (status %d): %s", e.StatusCode, e.Message)
}

// TimeoutError indicates the call exceeded the configured deadline.
type TimeoutError struct {
	Message string
	Cause   error
}

func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("timeout: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("timeout: %s", e.Message)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// ProviderError indicates a non-2xx response that is not auth or rate
// limiting, or a malformed provider response body.
type ProviderError struct {
	Message    string
	StatusCode int
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider error (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("provider error: %s", e.Message)
}

// NetworkError indicates the request never produced an HTTP response
// (connection refused, reset, DNS failure).
type NetworkError struct {
	Message string
	Cause   error
}

func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("network error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("network error: %s", e.Message)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}

// IsTransient reports whether err is worth retrying: rate limits, 5xx
// provider responses, and network resets. Auth failures, other 4xx
// responses, and deadline expiry fail immediately.
func IsTransient(err error) bool {
	switch e := err.(type) {
	case *RateLimitError:
		return true
	case *NetworkError:
		return true
	case *ProviderError:
		return e.StatusCode >= 500
	default:
		return false
	}
}
