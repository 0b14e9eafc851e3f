package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewPrescriptionsCmd creates the "prescriptions" subcommand tree.
func NewPrescriptionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prescriptions",
		Short: "View prescriptions",
	}

	cmd.AddCommand(newPrescriptionsListCmd())
	cmd.AddCommand(newPrescriptionsShowCmd())

	return cmd
}

func newPrescriptionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your prescriptions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if _, err := a.requireSession(cmd); err != nil {
				return err
			}

			list, err := a.client.Prescriptions(cmd.Context())
			if err != nil {
				return userFacing(err, "Failed to fetch prescriptions")
			}

			w := newTabWriter(cmd)
			fmt.Fprintln(w, "ID\tDOCTOR\tPATIENT\tMEDICATIONS\tISSUED")
			for _, p := range list {
				names := make([]string, 0, len(p.Medications))
				for _, m := range p.Medications {
					names = append(names, m.Name)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					p.ID, p.DoctorName, p.PatientName, strings.Join(names, ", "),
					p.CreatedAt.Format("2006-01-02"))
			}
			return w.Flush()
		},
	}
}

func newPrescriptionsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <prescription-id>",
		Short: "Show one prescription in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if _, err := a.requireSession(cmd); err != nil {
				return err
			}

			p, err := a.client.GetPrescription(cmd.Context(), args[0])
			if err != nil {
				return userFacing(err, "Failed to fetch prescription")
			}

			w := newTabWriter(cmd)
			fmt.Fprintf(w, "Doctor:\t%s\n", p.DoctorName)
			fmt.Fprintf(w, "Patient:\t%s\n", p.PatientName)
			fmt.Fprintf(w, "Issued:\t%s\n", p.CreatedAt.Format("2006-01-02"))
			for _, m := range p.Medications {
				fmt.Fprintf(w, "Medication:\t%s %s, %s", m.Name, m.Dosage, m.Frequency)
				if m.Duration != "" {
					fmt.Fprintf(w, " for %s", m.Duration)
				}
				fmt.Fprintln(w)
			}
			if p.Notes != "" {
				fmt.Fprintf(w, "Notes:\t%s\n", p.Notes)
			}
			return w.Flush()
		},
	}
}
