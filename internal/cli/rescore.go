package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newRescoreCmd() *cobra.Command {
	var testID uint

	cmd := &cobra.Command{
		Use:   "rescore",
		Short: "Recompute the score record of every completed attempt of a test",
		Long: "Recomputes each completed attempt from its stored answers and replaces the record. " +
			"Stored recommendations are cleared and generated again before the command exits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if testID == 0 {
				return errors.New("--test is required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.initServices(cmd.Context()); err != nil {
				return err
			}

			summary, err := a.services.Admin().RescoreTest(cmd.Context(), testID)
			if err != nil {
				return fmt.Errorf("rescore failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "test %d: %d/%d attempts rescored\n", summary.TestID, summary.Rescored, summary.Total)
			if len(summary.Failed) > 0 {
				fmt.Fprintf(out, "failed attempts: %v\n", summary.Failed)
			}
			if summary.Rescored > 0 {
				fmt.Fprintln(out, "waiting for recommendations...")
			}
			return nil
		},
	}

	cmd.Flags().UintVar(&testID, "test", 0, "Test ID to rescore")
	return cmd
}
