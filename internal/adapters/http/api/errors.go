package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrServe            = errors.New("operator endpoint failed")
	ErrMethodNotAllowed = errors.New("method not allowed")
)
