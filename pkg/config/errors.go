package config

import "errors"

var (
	// ErrInvalidConfig is returned when loaded values fail validation.
	ErrInvalidConfig = errors.New("invalid configuration")
	// ErrInvalidStrategyKind is returned for an unknown --strategy value.
	ErrInvalidStrategyKind = errors.New("invalid strategy")
)
