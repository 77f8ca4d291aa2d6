package client

import (
	"errors"
	"fmt"
)

// Common errors returned by the client.
var (
	// ErrConfig is the parent of every construction error.
	ErrConfig = errors.New("invalid client configuration")

	// ErrMissingAPIKey is returned by New when no API key is configured.
	ErrMissingAPIKey = fmt.Errorf("%w: IGDB API key is required, visit https://api.igdb.com/ to get it", ErrConfig)

	// ErrMissingBaseURL is returned by New when no base URL is configured.
	ErrMissingBaseURL = fmt.Errorf("%w: IGDB request URL is required, visit https://api.igdb.com/ to get it", ErrConfig)

	// ErrScrollHeaderNotFound signals that a response carries no scroll header,
	// which usually means there are no more pages.
	ErrScrollHeaderNotFound = errors.New("scroll header not found")

	// ErrNoResponse is returned when scroll headers are requested before any
	// request has been sent.
	ErrNoResponse = errors.New("no response available")

	// ErrTransport wraps hard transport failures (malformed URL, connection refused).
	ErrTransport = errors.New("transport failure")

	// ErrNoRegistry is returned by Collection when the client has no collection registry.
	ErrNoRegistry = errors.New("no parameter collection registry configured")
)

// ScrollHeaderError reports a missing or empty scroll header.
type ScrollHeaderError struct {
	Header string
}

// Error implements the error interface.
func (e *ScrollHeaderError) Error() string {
	return fmt.Sprintf("%s header doesn't exist", e.Header)
}

// Is reports whether target is ErrScrollHeaderNotFound.
func (e *ScrollHeaderError) Is(target error) bool {
	return target == ErrScrollHeaderNotFound
}

// APIError describes a non-2xx response captured from IGDB.
type APIError struct {
	StatusCode int
	ErrorClass ErrorClass
	URL        string
	Body       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("IGDB %s error (status %d): %s: %s",
			e.ErrorClass, e.StatusCode, e.URL, e.Body)
	}
	return fmt.Sprintf("IGDB %s error (status %d): %s",
		e.ErrorClass, e.StatusCode, e.URL)
}
