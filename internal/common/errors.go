// Package common contains shared sentinel errors used across the server and
// console layers. Callers should match these values with errors.Is.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors (invalid submission fields, bad status values).
	ErrorValidation = errors.New("validation error")

	// Rate limiting (public contact endpoint).
	ErrorRateLimited = errors.New("rate limited")
)
