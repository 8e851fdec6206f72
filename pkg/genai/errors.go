package genai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the generative AI service.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("AI service returned status %d (%s)", e.StatusCode, e.Status)
	}
	return fmt.Sprintf("AI service returned status %d (%s): %s", e.StatusCode, e.Status, e.Message)
}

// IsRetryable reports whether err is a rate-limit rejection. Structured
// *APIError values are inspected by status code; anything else falls back to
// the text heuristic so wrapped or provider-opaque errors still classify.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests
	}
	s := err.Error()
	return strings.Contains(s, "429") || strings.Contains(strings.ToLower(s), "rate limit")
}
