package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shopfront/shopfront/internal/api"
	"github.com/shopfront/shopfront/pkg/models"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show and edit the user profile",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return showProfile(cmd)
	},
}

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(newProfileShowCmd(), newProfileEditCmd())
}

func showProfile(cmd *cobra.Command) error {
	user, err := deps.API.Profile(cmd.Context())
	if err != nil {
		return fmt.Errorf("%s", api.BackendMessage(err, "Unable to load profile. Please try again later."))
	}
	deps.Session.SetUser(user)
	fmt.Fprintln(cmd.OutOrStdout(), renderProfile(user))
	return nil
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showProfile(cmd)
		},
	}
}

func newProfileEditCmd() *cobra.Command {
	var update models.ProfileUpdate

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()

			current, err := deps.API.Profile(cmd.Context())
			if err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, "Unable to load profile. Please try again later."))
			}

			// Flags win over the form; the form is only offered when no
			// field flag was set and a terminal is present.
			if cmd.Flags().NFlag() == 0 {
				if !interactive() {
					return fmt.Errorf("no terminal available; pass field flags (see --help)")
				}
				update, err = promptProfileEdit(current)
				if err != nil {
					return fmt.Errorf("read profile form: %w", err)
				}
			} else {
				update = mergeProfileFlags(cmd, current, update)
			}

			user, err := deps.API.UpdateProfile(cmd.Context(), update)
			if err != nil {
				return fmt.Errorf("%s", api.BackendMessage(err, "Unable to update profile. Please try again."))
			}
			deps.Session.SetUser(user)

			fmt.Fprintln(out, deps.Theme.Success.Render("Profile updated successfully."))
			fmt.Fprintln(out, renderProfile(user))
			return nil
		},
	}

	cmd.Flags().StringVar(&update.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&update.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&update.Phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&update.Address.Street, "street", "", "street address")
	cmd.Flags().StringVar(&update.Address.City, "city", "", "city")
	cmd.Flags().StringVar(&update.Address.State, "state", "", "state or province")
	cmd.Flags().StringVar(&update.Address.ZipCode, "zip", "", "postal code")
	cmd.Flags().StringVar(&update.Address.Country, "country", "", "country")
	return cmd
}

// mergeProfileFlags overlays set flags on the current profile so a
// partial edit does not blank the other fields.
func mergeProfileFlags(cmd *cobra.Command, current *models.User, update models.ProfileUpdate) models.ProfileUpdate {
	merged := models.ProfileUpdate{
		FirstName: current.FirstName,
		LastName:  current.LastName,
		Phone:     current.Phone,
		Address:   current.Address,
	}
	if cmd.Flags().Changed("first-name") {
		merged.FirstName = update.FirstName
	}
	if cmd.Flags().Changed("last-name") {
		merged.LastName = update.LastName
	}
	if cmd.Flags().Changed("phone") {
		merged.Phone = update.Phone
	}
	if cmd.Flags().Changed("street") {
		merged.Address.Street = update.Address.Street
	}
	if cmd.Flags().Changed("city") {
		merged.Address.City = update.Address.City
	}
	if cmd.Flags().Changed("state") {
		merged.Address.State = update.Address.State
	}
	if cmd.Flags().Changed("zip") {
		merged.Address.ZipCode = update.Address.ZipCode
	}
	if cmd.Flags().Changed("country") {
		merged.Address.Country = update.Address.Country
	}
	return merged
}
