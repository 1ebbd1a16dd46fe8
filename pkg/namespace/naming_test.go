package namespace_test

import (
	"regexp"
	"strings"
	"testing"

	"github.com/devantler-tech/testpods/pkg/namespace"
	"github.com/stretchr/testify/assert"
)

var dnsLabel = regexp.MustCompile(`^[a-z0-9]([-a-z0-9]*[a-z0-9])?$`)

func TestGenerate(t *testing.T) {
	t.Parallel()

	name := namespace.Generate()

	assert.Regexp(t, `^testpods-[a-z0-9]{5}$`, name)
	assert.NotEqual(t, name, namespace.Generate())
}

func TestGenerateFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		context string
		pattern string
	}{
		{name: "simple", context: "orders", pattern: `^testpods-orders-[a-z0-9]{5}$`},
		{name: "test suite name", context: "OrderFlowIntegrationTest", pattern: `^testpods-orderflowintegrationtest-[a-z0-9]{5}$`},
		{name: "sanitized", context: "Order Flow/IT", pattern: `^testpods-order-flow-it-[a-z0-9]{5}$`},
		{name: "blank falls back", context: "  ", pattern: `^testpods-[a-z0-9]{5}$`},
		{name: "only symbols falls back", context: "__", pattern: `^testpods-[a-z0-9]{5}$`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			name := namespace.GenerateFor(test.context)

			assert.Regexp(t, test.pattern, name)
			assert.Regexp(t, dnsLabel, name)
		})
	}
}

func TestGenerateFor_LongContextFitsDNSLabel(t *testing.T) {
	t.Parallel()

	name := namespace.GenerateFor(strings.Repeat("very-long-suite-name-", 10))

	assert.LessOrEqual(t, len(name), 63)
	assert.Regexp(t, dnsLabel, name)
	assert.True(t, strings.HasPrefix(name, "testpods-very-long-suite-name-"))
}

func TestSuppliers(t *testing.T) {
	t.Parallel()

	supplier := namespace.ForContext("checkout")
	first, second := supplier(), supplier()

	assert.Regexp(t, `^testpods-checkout-`, first)
	assert.NotEqual(t, first, second)
	assert.Regexp(t, `^testpods-[a-z0-9]{5}$`, namespace.DefaultSupplier()())
}
