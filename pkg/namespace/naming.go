package namespace

import (
	"github.com/devantler-tech/testpods/pkg/k8s"
	utilrand "k8s.io/apimachinery/pkg/util/rand"
)

const (
	// Prefix starts every generated namespace name.
	Prefix       = "testpods"
	suffixLength = 5
)

// Supplier returns a namespace name each time it is called.
type Supplier func() string

// Generate returns testpods-<suffix>.
func Generate() string {
	return Prefix + "-" + utilrand.String(suffixLength)
}

// GenerateFor returns testpods-<context>-<suffix>, truncating context so the
// name fits a DNS label. A context that sanitizes to nothing yields Generate().
func GenerateFor(context string) string {
	sanitized := k8s.SanitizeToDNSLabel(context)
	if sanitized == "" {
		return Generate()
	}

	// Two hyphens separate prefix, context and suffix.
	available := k8s.MaxDNSLabelLength - len(Prefix) - suffixLength - 2
	sanitized = k8s.TruncateDNSLabel(sanitized, available)

	return Prefix + "-" + sanitized + "-" + utilrand.String(suffixLength)
}

// ForContext returns a Supplier generating names for context, typically the
// name of a test suite.
func ForContext(context string) Supplier {
	return func() string {
		return GenerateFor(context)
	}
}

// DefaultSupplier returns a Supplier of Generate.
func DefaultSupplier() Supplier {
	return Generate
}
