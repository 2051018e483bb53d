package md2rst

import "errors"

// Sentinel errors for library operations.
var (
	ErrInvalidEncoding = errors.New("source is not valid UTF-8")
)
