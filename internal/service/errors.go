package service

import "errors"

// Outcome errors returned by the services. Handlers map these onto HTTP
// status codes; nothing below this layer leaks raw persistence errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
	ErrInvalidTime  = errors.New("invalid appointment time")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal failure")
)
