// Package config loads testpods CLI configuration.
//
// Values come from, in increasing order of precedence: built-in defaults, a
// testpods.yaml file, TESTPODS_* environment variables and command-line
// flags. Flag names map to keys one to one; the environment variable for a
// key is the key upper-cased with dashes replaced by underscores, so
// --poll-interval becomes TESTPODS_POLL_INTERVAL.
package config
