package pontoapi

import (
	"errors"
	"fmt"
)

var (
	// ErrUpstreamUnavailable wraps transport failures reaching the ponto API.
	ErrUpstreamUnavailable = errors.New("ponto API unavailable")
	// ErrSessionExpired means the ponto API rejected the bearer token.
	ErrSessionExpired = errors.New("session expired")
	// ErrUnexpectedResponse means a 2xx body could not be decoded.
	ErrUnexpectedResponse = errors.New("unexpected response from ponto API")
	ErrMissingToken       = errors.New("no bearer token for ponto API request")
)

// APIError is a non-2xx answer from the ponto API. Message is the upstream
// {"error": ...} text, verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ponto API returned %d: %s", e.StatusCode, e.Message)
}
