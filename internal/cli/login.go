package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/internal/session"
)

func init() {
	rootCmd.AddCommand(newLoginCmd(), newLogoutCmd(), newWhoamiCmd())
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if email == "" || password == "" {
				if !interactive() {
					return fmt.Errorf("no terminal available; pass --email and --password")
				}
				if err := promptLogin(&email, &password); err != nil {
					return fmt.Errorf("read credentials: %w", err)
				}
			}

			token, user, err := deps.API.Login(cmd.Context(), email, password)
			if err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, "Login failed. Please check your credentials and try again."))
			}
			if err := deps.Session.Login(token, user); err != nil {
				// Signed in, but the token did not reach disk; the session
				// dies with this process.
				fmt.Fprintln(out, deps.Theme.Error.Render(fmt.Sprintf("Warning: could not persist session: %v", err)))
			}

			fmt.Fprintln(out, deps.Theme.Success.Render("Signed in as "+user.DisplayName()+"."))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := deps.Session.Logout(); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			if deps.Session.Initialize() != session.PhaseAuthenticated {
				fmt.Fprintln(out, "Not signed in. Run 'shopfront login' first.")
				return nil
			}
			if err := deps.Session.RefreshProfile(cmd.Context()); err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, "Unable to load profile. Please try again later."))
			}
			fmt.Fprintln(out, renderProfile(deps.Session.User()))
			return nil
		},
	}
}
