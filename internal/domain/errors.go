package domain

import "errors"

var (
	// ErrNotFound is wrapped by repositories when a row does not exist,
	// so callers can map it without caring about the storage backend
	ErrNotFound = errors.New("not found")

	// ErrInvalid is wrapped by Validate methods, so transport layers can
	// distinguish bad input from infrastructure failures
	ErrInvalid = errors.New("invalid input")
)
