package service

import "errors"

var (
	// ErrUnauthorized means the request carries no usable identity, or the
	// identity is not allowed to perform the operation.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput means the request payload fails validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict means the operation collides with existing state, such as
	// deleting an event that still has bookings.
	ErrConflict = errors.New("conflict")
)
