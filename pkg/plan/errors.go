package plan

import "errors"

var errPatternRequired = errors.New("pattern is required")

// ErrInvalidPlan is returned when a plan document cannot be turned into a strategy.
var ErrInvalidPlan = errors.New("invalid wait plan")
