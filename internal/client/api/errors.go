package api

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials maps HTTP 401 from the admin endpoints.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnavailable covers transport failures and timeouts.
	ErrUnavailable = errors.New("server unavailable")
	// ErrServer covers 5xx and other unexpected statuses.
	ErrServer = errors.New("server error")
	// ErrNotFound maps HTTP 404 for a targeted submission.
	ErrNotFound = errors.New("submission not found")
	// ErrRateLimited maps HTTP 429 from the public contact endpoint.
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError carries the backend's 400 detail message so the caller
// can surface it verbatim.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

// RateLimitError carries the backend's 429 detail message. It matches
// ErrRateLimited under errors.Is.
type RateLimitError struct {
	Detail string
}

func (e *RateLimitError) Error() string {
	return e.Detail
}

func (e *RateLimitError) Is(target error) bool {
	return target == ErrRateLimited
}

func wrapTransport(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
