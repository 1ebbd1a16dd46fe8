package cmd

import (
	"fmt"

	"github.com/devantler-tech/testpods/pkg/di"
	"github.com/devantler-tech/testpods/pkg/utils/notify"
	"github.com/devantler-tech/testpods/pkg/utils/timer"
	"github.com/spf13/cobra"
)

// NewDiscoverCmd creates the discover command.
func NewDiscoverCmd(runtime *di.Runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "discover",
		Short: "Show the cluster testpods uses when none is configured",
		Long: "Show the cluster testpods uses when none is configured.\n\n" +
			"The kube contexts minikit and minikube are tried first, then the current context.",
		Args: cobra.NoArgs,
		RunE: di.RunEWithRuntime(runtime, di.WithTimer(handleDiscoverRunE)),
	}
}

func handleDiscoverRunE(cmd *cobra.Command, injector di.Injector, tmr timer.Timer) error {
	tmr.Start()

	out := notify.NewStageSeparatingWriter(cmd.OutOrStdout())

	supplier, err := di.ResolveClusterSupplier(injector)
	if err != nil {
		return err
	}

	notify.Titlef(out, "🔍", "Discovering cluster...")

	found, err := supplier(cmd.Context())
	if err != nil {
		return err
	}

	version, err := found.ServerVersion(cmd.Context())
	if err != nil {
		return fmt.Errorf("query %s: %w", found.Name, err)
	}

	notify.Infof(out, "server %s, access host %s", version, found.AccessHost)
	notify.SuccessWithTimerf(out, tmr, "using cluster %s", found.Name)

	return nil
}
