package cli

import (
	"fmt"

	"github.com/SAP-F-2025/career-orientation-service/internal/models"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.db.WithContext(cmd.Context()).AutoMigrate(&models.User{}, &models.TestAttempt{}); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			a.logger.Info("Database schema is up to date")
			return nil
		},
	}
}
