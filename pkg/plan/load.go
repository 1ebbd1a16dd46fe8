package plan

import (
	"fmt"
	"os"

	"github.com/devantler-tech/testpods/pkg/envvar"
	"sigs.k8s.io/yaml"
)

// Load reads and parses the plan at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path) //nolint:gosec // plan path is user input by design
	if err != nil {
		return nil, fmt.Errorf("read plan %s: %w", path, err)
	}

	plan, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("plan %s: %w", path, err)
	}

	return plan, nil
}

// Parse expands environment placeholders in data and parses the result.
// Unknown fields are rejected.
func Parse(data []byte) (*Plan, error) {
	var plan Plan

	err := yaml.UnmarshalStrict(envvar.ExpandBytes(data), &plan)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPlan, err)
	}

	if plan.APIVersion != "" && plan.APIVersion != APIVersion {
		return nil, fmt.Errorf("%w: unsupported apiVersion %q, expected %q",
			ErrInvalidPlan, plan.APIVersion, APIVersion)
	}

	if plan.Kind != "" && plan.Kind != Kind {
		return nil, fmt.Errorf("%w: unsupported kind %q, expected %q", ErrInvalidPlan, plan.Kind, Kind)
	}

	return &plan, nil
}
