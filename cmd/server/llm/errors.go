package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

// ProviderAuthError reports a credential the provider refused, or one that
// could not be used to build a client at all.
type ProviderAuthError struct {
	StatusCode int
	Err        error
}

func (e *ProviderAuthError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider rejected credential (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider rejected credential: %v", e.Err)
}

func (e *ProviderAuthError) Unwrap() error { return e.Err }

// ProviderRequestError covers every other failed call: network errors,
// timeouts, quota rejections and policy refusals.
type ProviderRequestError struct {
	StatusCode int
	Err        error
}

func (e *ProviderRequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider request failed (HTTP %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider request failed: %v", e.Err)
}

func (e *ProviderRequestError) Unwrap() error { return e.Err }

// RateLimited reports whether the provider rejected the call for quota
func (e *ProviderRequestError) RateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// classify sorts a raw client error into the provider error taxonomy
func classify(err error) error {
	var authErr *ProviderAuthError
	var reqErr *ProviderRequestError
	if errors.As(err, &authErr) || errors.As(err, &reqErr) {
		return err
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if isAuthFailure(apiErr) {
			return &ProviderAuthError{StatusCode: apiErr.Code, Err: err}
		}
		return &ProviderRequestError{StatusCode: apiErr.Code, Err: err}
	}

	// timeouts and cancellations stay inspectable through Unwrap
	return &ProviderRequestError{Err: err}
}

// Timeout reports whether the request ran out of time
func (e *ProviderRequestError) Timeout() bool {
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// Canceled reports whether the caller abandoned the request
func (e *ProviderRequestError) Canceled() bool {
	return errors.Is(e.Err, context.Canceled)
}

func isAuthFailure(apiErr genai.APIError) bool {
	switch apiErr.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return true
	case http.StatusBadRequest:
		// Gemini answers a bad key with 400 INVALID_ARGUMENT
		return strings.Contains(apiErr.Message, "API key") || strings.Contains(apiErr.Message, "API_KEY_INVALID")
	}
	return apiErr.Status == "UNAUTHENTICATED" || apiErr.Status == "PERMISSION_DENIED"
}
