package apperrors

import (
	"fmt"
	"time"
)

// ErrUnexpectedStatus is returned when a download URL answers with a non-2xx status.
type ErrUnexpectedStatus struct {
	URL        string
	StatusCode int
}

// Error implements the error interface.
func (e *ErrUnexpectedStatus) Error() string {
	return fmt.Sprintf("unexpected status code %d from %s", e.StatusCode, e.URL)
}

// Is allows for error checking with errors.Is().
func (e *ErrUnexpectedStatus) Is(target error) bool {
	_, ok := target.(*ErrUnexpectedStatus)
	return ok
}

// NewUnexpectedStatusError creates a new ErrUnexpectedStatus.
func NewUnexpectedStatusError(url string, statusCode int) *ErrUnexpectedStatus {
	return &ErrUnexpectedStatus{
		URL:        url,
		StatusCode: statusCode,
	}
}

// ErrInvalidURL is returned when a download URL cannot be parsed or is not HTTP(S).
type ErrInvalidURL struct {
	URL    string
	Reason string
}

// Error implements the error interface.
func (e *ErrInvalidURL) Error() string {
	return fmt.Sprintf("invalid download URL %q: %s", e.URL, e.Reason)
}

// Is allows for error checking with errors.Is().
func (e *ErrInvalidURL) Is(target error) bool {
	_, ok := target.(*ErrInvalidURL)
	return ok
}

// ErrBodyTooLarge is returned when a response body exceeds the configured buffer limit.
type ErrBodyTooLarge struct {
	URL   string
	Limit int64
}

// Error implements the error interface.
func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("response body from %s exceeds limit of %d bytes", e.URL, e.Limit)
}

// Is allows for error checking with errors.Is().
func (e *ErrBodyTooLarge) Is(target error) bool {
	_, ok := target.(*ErrBodyTooLarge)
	return ok
}

// ErrReadTimeout is returned when a response body stops delivering data for longer than the client timeout.
type ErrReadTimeout struct {
	URL     string
	Timeout time.Duration
}

// Error implements the error interface.
func (e *ErrReadTimeout) Error() string {
	return fmt.Sprintf("no data received from %s for %s", e.URL, e.Timeout)
}

// Is allows for error checking with errors.Is().
func (e *ErrReadTimeout) Is(target error) bool {
	_, ok := target.(*ErrReadTimeout)
	return ok
}
