package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/SAP-F-2025/career-orientation-service/internal/services"
	"github.com/spf13/cobra"
)

func newCreateAdminCmd() *cobra.Command {
	var req services.RegisterRequest

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an administrator account",
		Long:  "Creates an admin user. The password is read from --password or ADMIN_PASSWORD.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Password == "" {
				req.Password = os.Getenv("ADMIN_PASSWORD")
			}
			if req.Email == "" || req.Password == "" {
				return errors.New("--email and a password are required")
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.initServices(cmd.Context()); err != nil {
				return err
			}

			user, err := a.services.User().CreateAdmin(cmd.Context(), &req)
			if err != nil {
				return fmt.Errorf("creating admin: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin %s created with id %d\n", user.Email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Admin email")
	cmd.Flags().StringVar(&req.FullName, "name", "Administrator", "Admin full name")
	cmd.Flags().StringVar(&req.Password, "password", "", "Admin password")
	return cmd
}
