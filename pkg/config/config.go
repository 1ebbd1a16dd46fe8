package config

import (
	"fmt"
	"time"

	"github.com/devantler-tech/testpods/pkg/plan"
	"github.com/sirupsen/logrus"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const (
	// DefaultTimeout bounds a whole wait when neither flags nor the plan set one.
	DefaultTimeout = 2 * time.Minute
	// DefaultNamespace is the namespace pods are looked up in unless configured otherwise.
	DefaultNamespace = "default"
	// DefaultLogLevel is the logrus level used unless configured otherwise.
	DefaultLogLevel = "warning"
)

// Config holds the values the wait command runs with.
type Config struct {
	Kubeconfig string `mapstructure:"kubeconfig"`
	Context    string `mapstructure:"context"`
	Namespace  string `mapstructure:"namespace"`

	Selector  string `mapstructure:"selector"`
	Container string `mapstructure:"container"`
	Service   string `mapstructure:"service"`

	// Plan is a path to a wait plan. When set, the strategy flags are ignored.
	Plan     string       `mapstructure:"plan"`
	Strategy StrategyKind `mapstructure:"strategy"`

	LogPattern string   `mapstructure:"log-pattern"`
	LogTimes   int      `mapstructure:"log-times"`
	Port       string   `mapstructure:"port"`
	HTTPPath   string   `mapstructure:"http-path"`
	HTTPPort   int      `mapstructure:"http-port"`
	Command    []string `mapstructure:"command"`

	PostgresUser     string `mapstructure:"postgres-user"`
	PostgresPassword string `mapstructure:"postgres-password"`
	PostgresDatabase string `mapstructure:"postgres-database"`

	Timeout time.Duration `mapstructure:"timeout"`
	// PollInterval overrides the strategies' own intervals when positive.
	PollInterval time.Duration `mapstructure:"poll-interval"`
	// Parallelism caps concurrent waits. Zero picks a default from the CPU count.
	Parallelism int `mapstructure:"parallelism"`

	LogLevel string `mapstructure:"log-level"`
}

// Validate checks the loaded values.
//
//nolint:cyclop // one branch per strategy kind
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidConfig, c.Timeout)
	}

	if c.PollInterval < 0 {
		return fmt.Errorf("%w: poll-interval must not be negative, got %s", ErrInvalidConfig, c.PollInterval)
	}

	if c.Parallelism < 0 {
		return fmt.Errorf("%w: parallelism must not be negative, got %d", ErrInvalidConfig, c.Parallelism)
	}

	_, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	err = c.Strategy.Set(string(c.Strategy))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if c.Plan != "" {
		return nil
	}

	switch c.Strategy {
	case StrategyLog:
		if c.LogPattern == "" {
			return fmt.Errorf("%w: --log-pattern is required for the log strategy", ErrInvalidConfig)
		}
	case StrategyPort:
		if c.Port == "" {
			return fmt.Errorf("%w: --port is required for the port strategy", ErrInvalidConfig)
		}
	case StrategyHTTP:
		if c.HTTPPort <= 0 {
			return fmt.Errorf("%w: --http-port is required for the http strategy", ErrInvalidConfig)
		}
	case StrategyCommand:
		if len(c.Command) == 0 {
			return fmt.Errorf("%w: --command is required for the command strategy", ErrInvalidConfig)
		}
	case StrategyReadiness, StrategyPostgres:
	}

	return nil
}

// Level returns the configured logrus level, falling back to the default.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.WarnLevel
	}

	return level
}

// WaitPlan returns the plan file's plan, or a one-step plan built from the
// strategy flags. The configured timeout and poll interval apply unless the
// plan file sets its own.
func (c *Config) WaitPlan() (*plan.Plan, error) {
	var (
		waitPlan *plan.Plan
		err      error
	)

	if c.Plan != "" {
		waitPlan, err = plan.Load(c.Plan)
		if err != nil {
			return nil, fmt.Errorf("load plan: %w", err)
		}
	} else {
		waitPlan = &plan.Plan{Steps: []plan.Step{c.step()}}
	}

	if waitPlan.Timeout == nil {
		waitPlan.Timeout = &metav1.Duration{Duration: c.Timeout}
	}

	if waitPlan.PollInterval == nil && c.PollInterval > 0 {
		waitPlan.PollInterval = &metav1.Duration{Duration: c.PollInterval}
	}

	return waitPlan, nil
}

func (c *Config) step() plan.Step {
	switch c.Strategy {
	case StrategyLog:
		return plan.Step{Log: &plan.LogStep{Pattern: c.LogPattern, Times: c.LogTimes}}
	case StrategyPort:
		return plan.Step{Port: &plan.PortStep{Port: c.Port}}
	case StrategyHTTP:
		return plan.Step{HTTP: &plan.HTTPStep{Path: c.HTTPPath, Port: c.HTTPPort}}
	case StrategyCommand:
		return plan.Step{Command: &plan.CommandStep{Command: c.Command}}
	case StrategyPostgres:
		return plan.Step{Postgres: &plan.PostgresStep{
			User:     c.PostgresUser,
			Password: c.PostgresPassword,
			Database: c.PostgresDatabase,
		}}
	case StrategyReadiness:
	}

	return plan.Step{Readiness: &plan.ReadinessStep{}}
}
