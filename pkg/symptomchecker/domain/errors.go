package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMissing a required option was found neither in the environment, nor in config, nor interactively.
	ErrConfigMissing = errors.New("config missing")
	// ErrFetchFailed an image or a retrieval source could not be downloaded.
	ErrFetchFailed = errors.New("fetch failed")
	// ErrInferenceFailed the hosted model call failed; usually joined with one of the more specific errors below.
	ErrInferenceFailed = errors.New("inference failed")
	// ErrMalformedResponse the hosted model returned something we couldn't parse (or without choices).
	ErrMalformedResponse = errors.New("malformed response")
	// ErrAuth the API key was rejected.
	ErrAuth = errors.New("authentication failed")
	// ErrNetwork the transport failed before we got any response.
	ErrNetwork = errors.New("network error")
	// ErrEmptyResponse the first choice has no text.
	ErrEmptyResponse = errors.New("empty response")
)

// FetchError describes a failed download of a single source. StatusCode is 0 if no response was received.
type FetchError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Source, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() []error {
	return []error{ErrFetchFailed, e.Err}
}

// NewInferenceError wraps `err` so that it matches both ErrInferenceFailed and `kind` (ErrAuth, ErrNetwork etc.)
func NewInferenceError(kind error, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %w", ErrInferenceFailed, kind)
	}
	return fmt.Errorf("%w: %w: %w", ErrInferenceFailed, kind, err)
}
