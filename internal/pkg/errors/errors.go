package errors

import "errors"

var (
	// ErrNotFound is the sentinel for IDs or paths that resolve to nothing.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is the sentinel for rejected uploads and bad parameters.
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden is the sentinel for path-traversal attempts on model files.
	ErrForbidden = errors.New("forbidden")
)
