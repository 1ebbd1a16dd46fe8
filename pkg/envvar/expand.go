package envvar

import (
	"os"
	"regexp"

	"github.com/sirupsen/logrus"
)

// pattern matches ${NAME} and ${NAME:-default}.
// Group 1 is the variable name, group 2 the default marker, group 3 the default.
var pattern = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)(:-([^}]*))?\}`)

const (
	nameGroup    = 1
	markerGroup  = 2
	defaultGroup = 3
)

// LookupFunc resolves a variable name. It has the signature of os.LookupEnv.
type LookupFunc func(name string) (string, bool)

// Expand replaces placeholders with values from the process environment.
//
// An unset variable with a default (${VAR:-default}) expands to the default.
// An unset variable without one expands to the empty string and logs a warning.
func Expand(value string) string {
	return ExpandWith(value, os.LookupEnv)
}

// ExpandWith is like Expand but resolves variables through lookup.
func ExpandWith(value string, lookup LookupFunc) string {
	if value == "" {
		return value
	}

	return pattern.ReplaceAllStringFunc(value, func(match string) string {
		groups := pattern.FindStringSubmatch(match)

		name := groups[nameGroup]
		if resolved, ok := lookup(name); ok {
			return resolved
		}

		if groups[markerGroup] != "" {
			return groups[defaultGroup]
		}

		logrus.WithField("variable", name).Warn("environment variable not set")

		return ""
	})
}

// ExpandBytes expands placeholders in file content.
func ExpandBytes(data []byte) []byte {
	return []byte(Expand(string(data)))
}
