// Package server provides the HTTP REST API for the outreach generator.
package server

import (
	"errors"
	"net/http"

	"github.com/shegge-stack/EmailGenerator/internal/llm"
	"github.com/shegge-stack/EmailGenerator/internal/parsing"
	"github.com/shegge-stack/EmailGenerator/internal/prompts"
	"github.com/shegge-stack/EmailGenerator/internal/types"
)

// HTTPStatus returns the appropriate HTTP status code for an error.
// Prospect and prompt problems are the caller's fault; provider failures
// surface as upstream errors.
func HTTPStatus(err error) int {
	var (
		missingField *prompts.MissingFieldError
		unknownPH    *prompts.UnknownPlaceholderError
		validation   *types.ValidationError
		parseErr     *parsing.ParseError
		authErr      *llm.AuthError
		rateErr      *llm.RateLimitError
		timeoutErr   *llm.TimeoutError
		providerErr  *llm.ProviderError
		networkErr   *llm.NetworkError
	)

	switch {
	case errors.As(err, &missingField), errors.As(err, &unknownPH), errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &rateErr):
		return http.StatusTooManyRequests
	case errors.As(err, &timeoutErr):
		return http.StatusGatewayTimeout
	case errors.As(err, &parseErr), errors.As(err, &providerErr), errors.As(err, &networkErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
