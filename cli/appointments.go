package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hemahemapathi/health-management-client/api"
	"github.com/hemahemapathi/health-management-client/users"
)

// NewAppointmentsCmd creates the "appointments" subcommand tree.
func NewAppointmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "appointments",
		Short: "Manage appointments",
	}

	cmd.AddCommand(newAppointmentsListCmd())
	cmd.AddCommand(newAppointmentsSlotsCmd())
	cmd.AddCommand(newAppointmentsBookCmd())
	cmd.AddCommand(newAppointmentsCancelCmd())
	cmd.AddCommand(newAppointmentsStatusCmd())

	return cmd
}

func newAppointmentsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your appointments",
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

			var appts []api.Appointment
			if snap.User.Role == users.RoleDoctor {
				appts, err = a.client.DoctorAppointments(cmd.Context())
			} else {
				appts, err = a.client.PatientAppointments(cmd.Context())
			}
			if err != nil {
				return userFacing(err, "Failed to fetch appointments")
			}

			w := newTabWriter(cmd)
			fmt.Fprintln(w, "ID\tDATE\tTIME\tDOCTOR\tPATIENT\tSTATUS")
			for _, appt := range appts {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					appt.ID, appt.Date, appt.TimeSlot, appt.DoctorName, appt.PatientName, appt.Status)
			}
			return w.Flush()
		},
	}
}

func newAppointmentsSlotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slots <doctor-id> <date>",
		Short: "Show a doctor's open slots on a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if _, err := a.requireSession(cmd); err != nil {
				return err
			}

			slots, err := a.client.AvailableSlots(cmd.Context(), args[0], args[1])
			if err != nil {
				return userFacing(err, "Failed to fetch available slots")
			}

			if len(slots) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No open slots")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(slots, " "))
			return nil
		},
	}
}

func newAppointmentsBookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "book <doctor-id>",
		Short: "Book an appointment (patient role)",
		Args:  cobra.ExactArgs(1),
		RunE:  runAppointmentsBook,
	}

	cmd.Flags().String("date", "", "Appointment date (YYYY-MM-DD)")
	cmd.Flags().String("time", "", "Time slot, e.g. 10:00")
	cmd.Flags().String("reason", "", "Reason for the visit")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")

	return cmd
}

func runAppointmentsBook(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if _, err := a.requireSession(cmd); err != nil {
		return err
	}

	date, _ := cmd.Flags().GetString("date")
	timeSlot, _ := cmd.Flags().GetString("time")
	reason, _ := cmd.Flags().GetString("reason")

	appt, err := a.client.BookAppointment(cmd.Context(), api.BookAppointmentRequest{
		DoctorID: args[0],
		Date:     date,
		TimeSlot: timeSlot,
		Reason:   reason,
	})
	if err != nil {
		return userFacing(err, "Failed to book appointment")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Booked %s with %s on %s at %s (%s)\n",
		appt.ID, appt.DoctorName, appt.Date, appt.TimeSlot, appt.Status)
	return nil
}

func newAppointmentsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <appointment-id>",
		Short: "Cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if _, err := a.requireSession(cmd); err != nil {
				return err
			}

			if err := a.client.CancelAppointment(cmd.Context(), args[0]); err != nil {
				return userFacing(err, "Failed to cancel appointment")
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		},
	}
}

func newAppointmentsStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <appointment-id> <pending|confirmed|cancelled|completed>",
		Short: "Update an appointment's status (doctor role)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			if _, err := a.requireSession(cmd); err != nil {
				return err
			}

			appt, err := a.client.UpdateAppointmentStatus(cmd.Context(), args[0], api.AppointmentStatus(args[1]))
			if err != nil {
				return userFacing(err, "Failed to update appointment")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", appt.ID, appt.Status)
			return nil
		},
	}
}
