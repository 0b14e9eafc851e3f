package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hemahemapathi/health-management-client/guard"
)

// NewOpenCmd creates the "open" subcommand. It resolves the stored session
// and runs the route guard for the requested path, printing the decision the
// application shell would act on.
func NewOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open <path>",
		Short: "Run the route guard for a path against the current session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			a.session.Start(cmd.Context())
			decision := guard.DecideForPath(a.session.Snapshot(), args[0])

			switch decision.Outcome {
			case guard.Render:
				fmt.Fprintf(cmd.OutOrStdout(), "render %s\n", args[0])
			case guard.Redirect:
				if decision.From != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "redirect %s (from %s)\n", decision.Path, decision.From)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "redirect %s\n", decision.Path)
				}
			default:
				fmt.Fprintln(cmd.OutOrStdout(), "verifying")
			}
			return nil
		},
	}
}
