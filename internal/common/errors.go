// Package common defines shared constants and sentinel errors used across
// FileKeeper components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Auth errors. Expired, forged and malformed tokens all collapse to
	// ErrInvalidToken so the caller cannot tell which check failed.
	ErrInvalidToken = errors.New("invalid token")

	// Upload pipeline errors.
	ErrorUploadFailed = errors.New("upload failed")
)
