package config

import "errors"

// Sentinel errors for internal use.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
	ErrIndexMissing  = errors.New("index document missing from build output")
)
