package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hemahemapathi/health-management-client/api"
	"github.com/hemahemapathi/health-management-client/session"
	"github.com/hemahemapathi/health-management-client/users"
)

// NewLoginCmd creates the "login" subcommand.
func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in and store the session token",
		Args:  cobra.ExactArgs(1),
		RunE:  runLogin,
	}

	cmd.Flags().StringP("password", "p", "", "Account password (prompted when omitted)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	if err := a.session.Login(cmd.Context(), args[0], password); err != nil {
		snap := a.session.Snapshot()
		if snap.Err != "" {
			return fmt.Errorf("%s", snap.Err)
		}
		return err
	}

	snap := a.session.Snapshot()
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", snap.User.Name, snap.User.Role)
	return nil
}

func resolvePassword(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}

	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &password); err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return password, nil
}

// NewLogoutCmd creates the "logout" subcommand.
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			a.session.Logout()
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

// NewRegisterCmd creates the "register" subcommand.
func NewRegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create a new account",
		Args:  cobra.ExactArgs(1),
		RunE:  runRegister,
	}

	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().StringP("password", "p", "", "Account password (prompted when omitted)")
	cmd.Flags().String("role", string(users.RolePatient), "Account role: patient | doctor | admin")

	return cmd
}

func runRegister(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	name, _ := cmd.Flags().GetString("name")
	rawRole, _ := cmd.Flags().GetString("role")
	role, err := users.ParseRole(rawRole)
	if err != nil {
		return err
	}

	password, err := resolvePassword(cmd)
	if err != nil {
		return err
	}

	req := api.RegisterRequest{Name: name, Email: args[0], Password: password, Role: role}
	if err := a.session.Register(cmd.Context(), req); err != nil {
		return userFacing(err, "Registration failed. Please try again.")
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Registered, you can now log in")
	return nil
}

// NewWhoamiCmd creates the "whoami" subcommand.
func NewWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Verify the stored session and print the account",
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

func printUser(cmd *cobra.Command, snap session.Snapshot) {
	w := newTabWriter(cmd)
	fmt.Fprintf(w, "Name:\t%s\n", snap.User.Name)
	fmt.Fprintf(w, "Email:\t%s\n", snap.User.Email)
	fmt.Fprintf(w, "Role:\t%s\n", snap.User.Role)
	if snap.User.Phone != "" {
		fmt.Fprintf(w, "Phone:\t%s\n", snap.User.Phone)
	}
	if snap.User.Address != "" {
		fmt.Fprintf(w, "Address:\t%s\n", snap.User.Address)
	}
	if snap.User.Specialization != "" {
		fmt.Fprintf(w, "Specialization:\t%s\n", snap.User.Specialization)
	}
	w.Flush()
}
