package wait

import (
	"time"
	"unicode/utf8"
)

const (
	// logSnippetLength bounds the log tail attached to log-message failures.
	logSnippetLength = 500
	// outputSnippetLength bounds stdout/stderr attached to command failures.
	outputSnippetLength = 200
)

func formatDuration(d time.Duration) string {
	if d >= time.Second {
		return d.Round(time.Millisecond).String()
	}

	return d.Round(time.Microsecond).String()
}

// truncate keeps the first maxLength bytes of s, cut on a rune boundary.
func truncate(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}

	end := maxLength
	for end > 0 && !utf8.RuneStart(s[end]) {
		end--
	}

	return s[:end] + "..."
}

// tail keeps the last maxLength bytes of s, cut on a rune boundary.
func tail(s string, maxLength int) string {
	if len(s) <= maxLength {
		return s
	}

	start := len(s) - maxLength
	for start < len(s) && !utf8.RuneStart(s[start]) {
		start++
	}

	return "..." + s[start:]
}
