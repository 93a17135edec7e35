package service

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrNotConfigured = errors.New("not set")
	ErrUpstream      = errors.New("source unavailable")
)
