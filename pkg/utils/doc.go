// Package utils provides small helper packages used by the command layer.
//
//   - notify: formatted status messages with symbols, colors and timing
//   - timer: elapsed time tracking for single and multi-stage operations
package utils
