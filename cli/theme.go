package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hemahemapathi/health-management-client/theme"
)

// NewThemeCmd creates the "theme" subcommand tree.
func NewThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Show or change display preferences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			printPrefs(cmd, a.themes.Current())
			return nil
		},
	}

	cmd.AddCommand(newThemeSetCmd())
	cmd.AddCommand(newThemeToggleCmd())
	cmd.AddCommand(newThemeFontSizeCmd())

	return cmd
}

func newThemeSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <light|dark>",
		Short: "Set the theme",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			a.themes.SetTheme(theme.Theme(args[0]))
			printPrefs(cmd, a.themes.Current())
			return nil
		},
	}
}

func newThemeToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Switch between light and dark",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			a.themes.Toggle()
			printPrefs(cmd, a.themes.Current())
			return nil
		},
	}
}

func newThemeFontSizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "font-size <small|medium|large>",
		Short: "Set the font size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			a.themes.SetFontSize(theme.FontSize(args[0]))
			printPrefs(cmd, a.themes.Current())
			return nil
		},
	}
}

func printPrefs(cmd *cobra.Command, prefs theme.Preferences) {
	fmt.Fprintf(cmd.OutOrStdout(), "theme=%s font-size=%s\n", prefs.Theme, prefs.FontSize)
}
