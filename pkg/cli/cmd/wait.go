package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/devantler-tech/testpods/pkg/cli/parallel"
	"github.com/devantler-tech/testpods/pkg/cluster"
	"github.com/devantler-tech/testpods/pkg/config"
	"github.com/devantler-tech/testpods/pkg/defaults"
	"github.com/devantler-tech/testpods/pkg/di"
	"github.com/devantler-tech/testpods/pkg/plan"
	"github.com/devantler-tech/testpods/pkg/pod"
	"github.com/devantler-tech/testpods/pkg/utils/notify"
	"github.com/devantler-tech/testpods/pkg/utils/timer"
	"github.com/devantler-tech/testpods/pkg/wait"
	"github.com/spf13/cobra"
)

const configFlagName = "config"

// NewWaitCmd creates the wait command.
func NewWaitCmd(runtime *di.Runtime) *cobra.Command {
	manager := config.NewManager()

	cmd := &cobra.Command{
		Use:   "wait [pod...]",
		Short: "Wait for pods to become ready",
		Long: "Wait for pods to become ready.\n\n" +
			"The strategy comes from --strategy and its flags, or from a plan file given with --plan.\n" +
			"Pods are waited for concurrently; the command fails if any of them does not become ready.",
		Example: "  testpods wait api --strategy http --http-port 8080 --http-path /healthz\n" +
			"  testpods wait -l app=orders-db --strategy postgres --postgres-user test\n" +
			"  testpods wait api worker -f wait.yaml",
	}

	cmd.Flags().String(configFlagName, "", "configuration file, testpods.yaml is searched for when empty")

	// Registering a fixed flag set on a fresh FlagSet cannot fail.
	_ = manager.AddFlags(cmd.Flags())

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runtime.Invoke(func(injector di.Injector) error {
			return di.WithTimer(func(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
				return handleWaitRunE(cmd, injector, tmr, manager, args)
			})(cmd, injector)
		})
	}

	return cmd
}

func handleWaitRunE(
	cmd *cobra.Command,
	injector di.Injector,
	tmr timer.Timer,
	manager *config.Manager,
	names []string,
) error {
	tmr.Start()

	configFile, _ := cmd.Flags().GetString(configFlagName)
	if configFile != "" {
		manager.SetConfigFile(configFile)
	}

	cfg, err := manager.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	err = checkPodArgs(cfg, names)
	if err != nil {
		return err
	}

	logger, err := di.ResolveLogger(injector)
	if err != nil {
		return err
	}

	logger.SetLevel(cfg.Level())
	wait.SetLogger(logger)

	waitPlan, err := cfg.WaitPlan()
	if err != nil {
		return err
	}

	strategy, err := waitPlan.Strategy()
	if err != nil {
		return err
	}

	ctx := scopeFor(cmd.Context(), cfg)

	supplier, err := di.ResolveClusterSupplier(injector)
	if err != nil {
		return err
	}

	target, err := supplier(ctx)
	if err != nil {
		return err
	}

	namespace := defaults.ResolveNamespaceName(ctx)
	targets := buildTargets(target, namespace, names, cfg, waitPlan)
	out := parallel.NewSyncWriter(notify.NewStageSeparatingWriter(cmd.OutOrStdout()))

	notify.Titlef(out, "⏳", "Waiting for %d pod(s) in %s on %s...", len(targets), namespace, target.Name)
	notify.Infof(out, "strategy %s", strategy)

	executor := parallel.NewExecutor(int64(cfg.Parallelism))

	tasks := make([]parallel.Task, len(targets))
	for i, podTarget := range targets {
		tasks[i] = waitTask(out, strategy, podTarget)
	}

	err = executor.ExecuteAll(ctx, tasks...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPodsNotReady, err)
	}

	tmr.Stop()
	notify.SuccessWithTimerf(out, tmr, "%d pod(s) ready", len(targets))

	return nil
}

func checkPodArgs(cfg *config.Config, names []string) error {
	switch {
	case len(names) == 0 && cfg.Selector == "":
		return ErrNoPods
	case len(names) > 0 && cfg.Selector != "":
		return ErrNamesAndSelector
	default:
		return nil
	}
}

// scopeFor puts the configured cluster and namespace in ctx's default scope.
// An explicit kubeconfig or context replaces discovery.
func scopeFor(ctx context.Context, cfg *config.Config) context.Context {
	if cfg.Kubeconfig != "" || cfg.Context != "" {
		ctx = defaults.WithClusterSupplier(ctx, func(context.Context) (*cluster.Cluster, error) {
			return cluster.FromKubeconfig(cfg.Kubeconfig, cfg.Context)
		})
	}

	namespace := cfg.Namespace

	return defaults.WithNamespaceNameSupplier(ctx, func() string { return namespace })
}

func buildTargets(
	target *cluster.Cluster,
	namespace string,
	names []string,
	cfg *config.Config,
	waitPlan *plan.Plan,
) []wait.Target {
	var opts []pod.Option

	if cfg.Container != "" {
		opts = append(opts, pod.WithContainer(cfg.Container))
	}

	if cfg.Service != "" {
		opts = append(opts, pod.WithService(cfg.Service))
	}

	if len(names) == 0 {
		names = []string{cfg.Selector}
		opts = append(opts, pod.WithSelector(cfg.Selector))
	}

	credentials, needsDSN := waitPlan.Postgres()

	targets := make([]wait.Target, len(names))
	for i, name := range names {
		handle := pod.New(target, namespace, name, opts...)

		if needsDSN {
			targets[i] = pod.PostgresHandle{
				Handle:   handle,
				User:     credentials.User,
				Password: credentials.Password,
				Database: credentials.Database,
			}

			continue
		}

		targets[i] = handle
	}

	return targets
}

func waitTask(out *parallel.SyncWriter, strategy wait.Strategy, target wait.Target) parallel.Task {
	return func(ctx context.Context) error {
		start := time.Now()

		notify.Activityf(out, "waiting for %s", target.Name())

		err := strategy.WaitUntilReady(ctx, target)
		if err != nil {
			notify.Errorf(out, "%v", err)

			return fmt.Errorf("%s: %w", target.Name(), err)
		}

		notify.Successf(out, "%s ready after %s", target.Name(), time.Since(start).Round(time.Millisecond))

		return nil
	}
}
