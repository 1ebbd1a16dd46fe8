package k8s

import "strings"

// MaxDNSLabelLength is the length limit of RFC 1123 labels, which namespace names must satisfy.
const MaxDNSLabelLength = 63

// SanitizeToDNSLabel converts an arbitrary string to a lowercase alphanumeric
// string with hyphens as the only separator. Consecutive hyphens are collapsed
// and leading/trailing hyphens are trimmed.
func SanitizeToDNSLabel(value string) string {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" {
		return ""
	}

	var builder strings.Builder

	prevHyphen := false

	for _, char := range trimmed {
		switch {
		case (char >= 'a' && char <= 'z') || (char >= '0' && char <= '9'):
			builder.WriteRune(char)

			prevHyphen = false
		default:
			if !prevHyphen {
				builder.WriteRune('-')

				prevHyphen = true
			}
		}
	}

	return strings.Trim(builder.String(), "-")
}

// TruncateDNSLabel cuts a sanitized label to at most maxLength characters
// without leaving a trailing hyphen.
func TruncateDNSLabel(label string, maxLength int) string {
	if maxLength <= 0 {
		return ""
	}

	if len(label) > maxLength {
		label = label[:maxLength]
	}

	return strings.TrimRight(label, "-")
}
