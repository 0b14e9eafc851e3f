package main

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"

	"github.com/hemahemapathi/health-management-client/cli"
	"github.com/hemahemapathi/health-management-client/internal/config"
)

// Set via ldflags at build time.
var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "healthctl",
	Short:        "Health management platform CLI",
	Long:         "healthctl — appointments, prescriptions and account management from the terminal.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		displayAppname(config.New().GetAppName())
		return cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose/debug logging")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate(fmt.Sprintf("healthctl version %s\n", version))

	rootCmd.AddCommand(cli.NewLoginCmd())
	rootCmd.AddCommand(cli.NewLogoutCmd())
	rootCmd.AddCommand(cli.NewRegisterCmd())
	rootCmd.AddCommand(cli.NewWhoamiCmd())
	rootCmd.AddCommand(cli.NewProfileCmd())
	rootCmd.AddCommand(cli.NewDoctorsCmd())
	rootCmd.AddCommand(cli.NewAppointmentsCmd())
	rootCmd.AddCommand(cli.NewPrescriptionsCmd())
	rootCmd.AddCommand(cli.NewThemeCmd())
	rootCmd.AddCommand(cli.NewOpenCmd())
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
