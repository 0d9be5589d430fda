// Package cli wires the service's commands.
package cli

import "github.com/spf13/cobra"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "career-service",
		Short:         "Career orientation testing service",
		Long:          "Scores the eight-module career orientation test, stores results and generates AI recommendations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newRescoreCmd())
	cmd.AddCommand(newCreateAdminCmd())
	return cmd
}

func Execute() error {
	return newRootCmd().Execute()
}
