// Package apperr holds the domain failures shared by every service.
// Callers wrap them with context and match them with errors.Is.
package apperr

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidToken       = errors.New("invalid token")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrAlreadyEnrolled    = errors.New("already enrolled")
	ErrUniqueViolation    = errors.New("unique violation")
	ErrInvalidInput       = errors.New("invalid input")
)
