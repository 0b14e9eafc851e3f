package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hemahemapathi/health-management-client/api"
)

// NewProfileCmd creates the "profile" subcommand tree.
func NewProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show or update the logged-in profile",
	}

	cmd.AddCommand(newProfileShowCmd())
	cmd.AddCommand(newProfileUpdateCmd())

	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			snap, err := a.requireSession(cmd)
			if err != nil {
				return err
			}

			printUser(cmd, snap)
			return nil
		},
	}
}

func newProfileUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE:  runProfileUpdate,
	}

	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("phone", "", "Phone number")
	cmd.Flags().String("gender", "", "Gender")
	cmd.Flags().String("date-of-birth", "", "Date of birth (YYYY-MM-DD)")
	cmd.Flags().String("address", "", "Postal address")

	return cmd
}

func runProfileUpdate(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	if _, err := a.requireSession(cmd); err != nil {
		return err
	}

	update := api.ProfileUpdate{}
	update.Name, _ = cmd.Flags().GetString("name")
	update.Phone, _ = cmd.Flags().GetString("phone")
	update.Gender, _ = cmd.Flags().GetString("gender")
	update.DateOfBirth, _ = cmd.Flags().GetString("date-of-birth")
	update.Address, _ = cmd.Flags().GetString("address")

	if update == (api.ProfileUpdate{}) {
		return fmt.Errorf("nothing to update, pass at least one flag")
	}

	if err := a.session.UpdateProfile(cmd.Context(), update); err != nil {
		snap := a.session.Snapshot()
		if snap.Err != "" {
			return fmt.Errorf("%s", snap.Err)
		}
		return err
	}

	printUser(cmd, a.session.Snapshot())
	return nil
}
