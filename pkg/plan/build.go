package plan

import (
	"fmt"
	"maps"
	"slices"

	"github.com/devantler-tech/testpods/pkg/wait"
	"github.com/devantler-tech/testpods/pkg/wait/postgres"
)

// Strategy builds the strategy the plan describes.
//
// A plan with one step yields that step's strategy; longer plans yield a
// sequence. The plan's timeout and poll interval are applied to the result
// when set.
func (p *Plan) Strategy() (wait.Strategy, error) {
	strategy, err := sequence(p.Steps, "steps")
	if err != nil {
		return nil, err
	}

	if p.PollInterval != nil {
		if p.PollInterval.Duration <= 0 {
			return nil, fmt.Errorf("%w: pollInterval must be positive", ErrInvalidPlan)
		}

		strategy = strategy.WithPollInterval(p.PollInterval.Duration)
	}

	if p.Timeout != nil {
		if p.Timeout.Duration <= 0 {
			return nil, fmt.Errorf("%w: timeout must be positive", ErrInvalidPlan)
		}

		strategy = strategy.WithTimeout(p.Timeout.Duration)
	}

	return strategy, nil
}

// Postgres returns the first postgres step in the plan, searching nested
// sequences. Callers use it to give targets the credentials the step needs.
func (p *Plan) Postgres() (*PostgresStep, bool) {
	return findPostgres(p.Steps)
}

func findPostgres(steps []Step) (*PostgresStep, bool) {
	for _, step := range steps {
		if step.Postgres != nil {
			return step.Postgres, true
		}

		if step.AllOf != nil {
			if found, ok := findPostgres(step.AllOf.Steps); ok {
				return found, true
			}
		}
	}

	return nil, false
}

func sequence(steps []Step, path string) (wait.Strategy, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: %s: at least one step is required", ErrInvalidPlan, path)
	}

	strategies := make([]wait.Strategy, 0, len(steps))

	for i, step := range steps {
		strategy, err := step.strategy(fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}

		strategies = append(strategies, strategy)
	}

	if len(strategies) == 1 {
		return strategies[0], nil
	}

	return wait.AllOf(strategies...)
}

func (s Step) strategy(path string) (wait.Strategy, error) {
	set := s.kinds()
	if len(set) != 1 {
		return nil, fmt.Errorf("%w: %s: exactly one of readiness, log, port, http, command, postgres or allOf must be set, got %d",
			ErrInvalidPlan, path, len(set))
	}

	var (
		strategy wait.Strategy
		err      error
	)

	switch {
	case s.Readiness != nil:
		strategy = wait.ForReadinessProbe()
	case s.Log != nil:
		strategy, err = s.Log.strategy()
	case s.Port != nil:
		strategy, err = s.Port.strategy()
	case s.HTTP != nil:
		strategy, err = s.HTTP.strategy()
	case s.Command != nil:
		strategy, err = wait.ForCommand(s.Command.Command...)
	case s.Postgres != nil:
		strategy = postgres.New()
	case s.AllOf != nil:
		return sequence(s.AllOf.Steps, path+".allOf.steps")
	}

	if err != nil {
		return nil, fmt.Errorf("%w: %s.%s: %w", ErrInvalidPlan, path, set[0], err)
	}

	return strategy, nil
}

func (s Step) kinds() []string {
	present := map[string]bool{
		"readiness": s.Readiness != nil,
		"log":       s.Log != nil,
		"port":      s.Port != nil,
		"http":      s.HTTP != nil,
		"command":   s.Command != nil,
		"postgres":  s.Postgres != nil,
		"allOf":     s.AllOf != nil,
	}

	var kinds []string

	for _, kind := range slices.Sorted(maps.Keys(present)) {
		if present[kind] {
			kinds = append(kinds, kind)
		}
	}

	return kinds
}

func (l *LogStep) strategy() (wait.Strategy, error) {
	if l.Pattern == "" {
		return nil, errPatternRequired
	}

	times := l.Times
	if times == 0 {
		times = 1
	}

	return wait.ForLogMessageTimes(l.Pattern, times)
}

func (p *PortStep) strategy() (wait.Strategy, error) {
	strategy, err := wait.ForPortSpec(p.Port)
	if err != nil {
		return nil, err
	}

	if p.ConnectTimeout != nil {
		strategy = strategy.WithConnectTimeout(p.ConnectTimeout.Duration)
	}

	return strategy, nil
}

func (h *HTTPStep) strategy() (wait.Strategy, error) {
	strategy, err := wait.ForHTTP(h.Path, h.Port)
	if err != nil {
		return nil, err
	}

	if h.Method != "" {
		strategy = strategy.WithMethod(h.Method)
	}

	if len(h.StatusCodes) > 0 {
		strategy = strategy.ForStatusCodes(h.StatusCodes...)
	}

	if h.TLS {
		strategy = strategy.UsingTLS()
	}

	if h.Insecure {
		strategy = strategy.WithInsecureSkipVerify()
	}

	for _, key := range slices.Sorted(maps.Keys(h.Headers)) {
		strategy = strategy.WithHeader(key, h.Headers[key])
	}

	if h.ReadTimeout != nil {
		strategy = strategy.WithReadTimeout(h.ReadTimeout.Duration)
	}

	return strategy, nil
}
