package k8s

import (
	"fmt"
	"slices"
)

// Contexts returns the context names of a kubeconfig, sorted, and its current context.
// An empty kubeconfig path uses the standard loading rules.
func Contexts(kubeconfig string) ([]string, string, error) {
	raw, err := loader(kubeconfig, "").RawConfig()
	if err != nil {
		return nil, "", fmt.Errorf("failed to read kubeconfig: %w", err)
	}

	names := make([]string, 0, len(raw.Contexts))
	for name := range raw.Contexts {
		names = append(names, name)
	}

	slices.Sort(names)

	return names, raw.CurrentContext, nil
}
