package models

import "errors"

var (
	// ErrDataUnavailable means the adjustment source could not be read
	ErrDataUnavailable = errors.New("data unavailable")
	// ErrMalformedAdjustment means a record's value or date failed to parse
	ErrMalformedAdjustment = errors.New("malformed adjustment")

	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
)
