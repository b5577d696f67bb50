package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigMissing means a required provider credential is not configured.
	ErrConfigMissing = errors.New("required configuration missing")
	// ErrUpstreamUnavailable means the coin list could not be fetched and no snapshot exists.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrUpstreamHTTP matches any *UpstreamHTTPError.
	ErrUpstreamHTTP = errors.New("upstream returned non-2xx status")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
)

// NotFoundError is returned when a symbol has no entry in the coin list.
type NotFoundError struct {
	Symbol string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("coin with symbol %s not found", e.Symbol)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UpstreamHTTPError carries the status of a failed provider call. The body is
// kept for logs only and never sent back to the browser.
type UpstreamHTTPError struct {
	Provider   string
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *UpstreamHTTPError) Error() string {
	return fmt.Sprintf("%s %s responded with status: %d", e.Provider, e.Endpoint, e.StatusCode)
}

func (e *UpstreamHTTPError) Is(target error) bool {
	return target == ErrUpstreamHTTP
}
