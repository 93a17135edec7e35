package config

import "errors"

var (
	// ErrInvalidConfig is returned by Validate for values the service cannot run with.
	ErrInvalidConfig = errors.New("invalid arena config")
	// ErrLoadConfig wraps failures reading the YAML, dotenv or env layers.
	ErrLoadConfig = errors.New("load arena config")
)
