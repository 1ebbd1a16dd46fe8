package envvar_test

import (
	"testing"

	"github.com/devantler-tech/testpods/pkg/envvar"
	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		envVars  map[string]string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no placeholders",
			input:    "image: postgres:16",
			expected: "image: postgres:16",
		},
		{
			name:     "single placeholder with value",
			input:    "namespace: ${TESTPODS_TEST_NS}",
			envVars:  map[string]string{"TESTPODS_TEST_NS": "orders"},
			expected: "namespace: orders",
		},
		{
			name:     "unset placeholder without default",
			input:    "user: ${TESTPODS_TEST_MISSING}",
			expected: "user: ",
		},
		{
			name:     "unset placeholder with default",
			input:    "timeout: ${TESTPODS_TEST_TIMEOUT:-90s}",
			expected: "timeout: 90s",
		},
		{
			name:     "unset placeholder with empty default",
			input:    "header: ${TESTPODS_TEST_HEADER:-}",
			expected: "header: ",
		},
		{
			name:     "set placeholder ignores default",
			input:    "${TESTPODS_TEST_PORT:-8080}",
			envVars:  map[string]string{"TESTPODS_TEST_PORT": "9090"},
			expected: "9090",
		},
		{
			name:  "multiple placeholders",
			input: "${TESTPODS_TEST_A}-${TESTPODS_TEST_B}",
			envVars: map[string]string{
				"TESTPODS_TEST_A": "left",
				"TESTPODS_TEST_B": "right",
			},
			expected: "left-right",
		},
		{
			name:     "no braces is left alone",
			input:    "$TESTPODS_TEST_A",
			envVars:  map[string]string{"TESTPODS_TEST_A": "value"},
			expected: "$TESTPODS_TEST_A",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.envVars {
				t.Setenv(key, value)
			}

			assert.Equal(t, tc.expected, envvar.Expand(tc.input))
		})
	}
}

func TestExpandWith(t *testing.T) {
	t.Parallel()

	lookup := func(name string) (string, bool) {
		if name == "HOST" {
			return "db.local", true
		}

		return "", false
	}

	assert.Equal(t, "db.local:5432", envvar.ExpandWith("${HOST}:${PORT:-5432}", lookup))
}

func TestExpandBytes(t *testing.T) {
	t.Setenv("TESTPODS_TEST_PATH", "/ready")

	assert.Equal(t, []byte("path: /ready\n"), envvar.ExpandBytes([]byte("path: ${TESTPODS_TEST_PATH}\n")))
}
