package sheets

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotConfigured = errors.New("source url not set")
	ErrFetch         = errors.New("fetch source failed")
	ErrParse         = errors.New("parse source failed")
)
