package cmd

import (
	"fmt"

	"github.com/devantler-tech/testpods/pkg/di"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command with version info and subcommands.
func NewRootCmd(version, commit, date string, modules ...di.Module) *cobra.Command {
	runtime := di.NewRuntime(modules...)

	cmd := &cobra.Command{
		Use:   "testpods",
		Short: "Wait for pods in a Kubernetes test cluster to become ready",
		Long: "testpods waits for pods in a Kubernetes test cluster to become ready,\n" +
			"using readiness, log, port, HTTP, command or PostgreSQL strategies.",
		RunE:          handleRootRunE,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	cmd.AddCommand(NewWaitCmd(runtime))
	cmd.AddCommand(NewDiscoverCmd(runtime))

	return cmd
}

// Execute runs the provided root command.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func handleRootRunE(cmd *cobra.Command, _ []string) error {
	// Help only fails when the output writer does.
	_ = cmd.Help()

	return nil
}
