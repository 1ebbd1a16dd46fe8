package plan

import (
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// APIVersion is the apiVersion plans are written against.
	APIVersion = "testpods.devantler.tech/v1alpha1"
	// Kind is the kind of a plan document.
	Kind = "WaitPlan"
)

// Plan is a wait plan document.
type Plan struct {
	metav1.TypeMeta `json:",inline"`

	// Timeout is the budget shared by all steps.
	Timeout *metav1.Duration `json:"timeout,omitempty"`
	// PollInterval applies to every step, nested ones included.
	PollInterval *metav1.Duration `json:"pollInterval,omitempty"`
	Steps        []Step           `json:"steps"`
}

// Step describes one strategy. Exactly one field must be set.
//
// Steps have no timeout of their own: each runs with whatever is left of the
// plan's budget.
type Step struct {
	Readiness *ReadinessStep `json:"readiness,omitempty"`
	Log       *LogStep       `json:"log,omitempty"`
	Port      *PortStep      `json:"port,omitempty"`
	HTTP      *HTTPStep      `json:"http,omitempty"`
	Command   *CommandStep   `json:"command,omitempty"`
	Postgres  *PostgresStep  `json:"postgres,omitempty"`
	AllOf     *AllOfStep     `json:"allOf,omitempty"`
}

// ReadinessStep waits for the workload's own readiness signal.
type ReadinessStep struct{}

// LogStep waits for a pattern to appear in the workload's logs.
type LogStep struct {
	Pattern string `json:"pattern"`
	// Times is the number of matches required. Zero means one.
	Times int `json:"times,omitempty"`
}

// PortStep waits for a TCP connection to succeed.
type PortStep struct {
	// Port is "5432" or "5432/tcp".
	Port           string           `json:"port"`
	ConnectTimeout *metav1.Duration `json:"connectTimeout,omitempty"`
}

// HTTPStep waits for an HTTP endpoint to answer with an accepted status.
type HTTPStep struct {
	Path        string            `json:"path"`
	Port        int               `json:"port"`
	Method      string            `json:"method,omitempty"`
	StatusCodes []int             `json:"statusCodes,omitempty"`
	TLS         bool              `json:"tls,omitempty"`
	Insecure    bool              `json:"insecure,omitempty"`
	Headers     map[string]string `json:"headers,omitempty"`
	ReadTimeout *metav1.Duration  `json:"readTimeout,omitempty"`
}

// CommandStep waits for a command run inside the workload to exit with 0.
type CommandStep struct {
	Command []string `json:"command"`
}

// PostgresStep waits for a PostgreSQL server to accept queries.
type PostgresStep struct {
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	Database string `json:"database,omitempty"`
}

// AllOfStep nests a sequence of steps. They share the plan timeout and poll interval.
type AllOfStep struct {
	Steps []Step `json:"steps"`
}
