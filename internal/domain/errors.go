package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was violated.
	ErrAlreadyExists = errors.New("already exists")
	// ErrForbidden indicates the principal is not allowed to perform the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput indicates the request payload failed validation.
	ErrInvalidInput = errors.New("invalid input")
)
