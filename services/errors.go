package services

import "errors"

// Failure classes surfaced by the services. Controllers map these to HTTP
// status codes with errors.Is; anything unclassified is a backend failure.
var (
	ErrValidation = errors.New("invalid input")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
)
