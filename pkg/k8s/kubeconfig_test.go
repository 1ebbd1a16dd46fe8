package k8s_test

import (
	"testing"

	"github.com/devantler-tech/testpods/pkg/k8s"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContexts(t *testing.T) {
	t.Parallel()

	names, current, err := k8s.Contexts(writeKubeconfig(t, twoContextKubeconfig))

	require.NoError(t, err)
	assert.Equal(t, []string{"custom-context", "minikit"}, names)
	assert.Equal(t, "custom-context", current)
}

func TestContexts_InvalidFile(t *testing.T) {
	t.Parallel()

	_, _, err := k8s.Contexts(writeKubeconfig(t, "clusters: [}"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read kubeconfig")
}
