package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewDoctorsCmd creates the "doctors" subcommand tree.
func NewDoctorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "Browse the doctor directory",
	}

	cmd.AddCommand(newDoctorsListCmd())
	cmd.AddCommand(newDoctorsShowCmd())

	return cmd
}

func newDoctorsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List doctors",
		Args:  cobra.NoArgs,
		RunE:  runDoctorsList,
	}

	cmd.Flags().Int("page", 1, "Page number")
	cmd.Flags().Int("limit", 20, "Page size")
	cmd.Flags().String("specialization", "", "Filter by specialization")

	return cmd
}

func runDoctorsList(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	limit, _ := cmd.Flags().GetInt("limit")
	specialization, _ := cmd.Flags().GetString("specialization")

	doctors, err := a.client.ListDoctors(cmd.Context(), page, limit, specialization)
	if err != nil {
		return userFacing(err, "Failed to fetch doctors")
	}

	w := newTabWriter(cmd)
	fmt.Fprintln(w, "ID\tNAME\tSPECIALIZATION\tFEE\tRATING")
	for _, d := range doctors {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%.1f\n", d.ID, d.Name, d.Specialization, d.Fee, d.Rating)
	}
	return w.Flush()
}

func newDoctorsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <doctor-id>",
		Short: "Show a doctor's profile and availability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}

			doctor, err := a.client.GetDoctor(cmd.Context(), args[0])
			if err != nil {
				return userFacing(err, "Failed to fetch doctor")
			}

			w := newTabWriter(cmd)
			fmt.Fprintf(w, "Name:\t%s\n", doctor.Name)
			fmt.Fprintf(w, "Specialization:\t%s\n", doctor.Specialization)
			fmt.Fprintf(w, "Experience:\t%d years\n", doctor.Experience)
			fmt.Fprintf(w, "Fee:\t%.0f\n", doctor.Fee)
			fmt.Fprintf(w, "Rating:\t%.1f\n", doctor.Rating)

			windows := make([]string, 0, len(doctor.Availability))
			for _, slot := range doctor.Availability {
				windows = append(windows, fmt.Sprintf("%s %s-%s", slot.Day, slot.StartTime, slot.EndTime))
			}
			if len(windows) > 0 {
				fmt.Fprintf(w, "Availability:\t%s\n", strings.Join(windows, ", "))
			}
			return w.Flush()
		},
	}
}
