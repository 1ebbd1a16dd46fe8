package config

import (
	"fmt"
	"slices"
	"strings"
)

// StrategyKind selects the strategy built from flags when no plan is given.
type StrategyKind string

const (
	// StrategyReadiness waits for the pod's Ready condition.
	StrategyReadiness StrategyKind = "readiness"
	// StrategyLog waits for a log pattern.
	StrategyLog StrategyKind = "log"
	// StrategyPort waits for a TCP port.
	StrategyPort StrategyKind = "port"
	// StrategyHTTP waits for an HTTP endpoint.
	StrategyHTTP StrategyKind = "http"
	// StrategyCommand waits for a command to exit with 0.
	StrategyCommand StrategyKind = "command"
	// StrategyPostgres waits for a PostgreSQL server to accept queries.
	StrategyPostgres StrategyKind = "postgres"
)

// ValidStrategyKinds returns the supported strategy kinds.
func ValidStrategyKinds() []StrategyKind {
	return []StrategyKind{
		StrategyReadiness,
		StrategyLog,
		StrategyPort,
		StrategyHTTP,
		StrategyCommand,
		StrategyPostgres,
	}
}

// Set for StrategyKind (pflag.Value interface).
func (k *StrategyKind) Set(value string) error {
	for _, kind := range ValidStrategyKinds() {
		if strings.EqualFold(value, string(kind)) {
			*k = kind

			return nil
		}
	}

	return fmt.Errorf("%w: %s (valid options: %s)", ErrInvalidStrategyKind, value, strings.Join(k.ValidValues(), ", "))
}

// IsValid checks if the strategy kind is supported.
func (k *StrategyKind) IsValid() bool {
	return slices.Contains(ValidStrategyKinds(), *k)
}

// String returns the string representation of the StrategyKind.
func (k *StrategyKind) String() string {
	return string(*k)
}

// Type returns the type of the StrategyKind.
func (k *StrategyKind) Type() string {
	return "StrategyKind"
}

// ValidValues returns all valid StrategyKind values as strings.
func (k *StrategyKind) ValidValues() []string {
	kinds := ValidStrategyKinds()
	values := make([]string, len(kinds))

	for i, kind := range kinds {
		values[i] = string(kind)
	}

	return values
}
