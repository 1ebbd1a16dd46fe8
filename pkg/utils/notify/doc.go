// Package notify writes the testpods CLI's user-facing messages.
//
// [WriteMessage] prints a line prefixed with a symbol and colored by type:
// success (✔), error (✗), warning (⚠), info (ℹ) and activity (►). Title
// messages start with an emoji instead, and [StageSeparatingWriter] puts a
// blank line in front of every title after the first.
package notify
