package service

import "errors"

// Validation errors surfaced to the boundary as 400s.
var (
	ErrInvalidQuantity  = errors.New("quantity out of range")
	ErrEmptyContent     = errors.New("content must not be empty")
	ErrPasswordMismatch = errors.New("password confirmation does not match")
	ErrInvalidPrice     = errors.New("price must be positive")
	ErrMissingField     = errors.New("required field missing")
)
