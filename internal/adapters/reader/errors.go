package reader

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrMalformedLine = errors.New("malformed clock line")
	ErrScript        = errors.New("invalid clock script")
)
