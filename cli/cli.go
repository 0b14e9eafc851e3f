// Package cli holds the healthctl command implementations. Each command
// builds the same wiring the application shell uses: file-backed credential
// store, typed API client and the session service on top.
package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hemahemapathi/health-management-client/api"
	"github.com/hemahemapathi/health-management-client/credstore"
	"github.com/hemahemapathi/health-management-client/internal/config"
	"github.com/hemahemapathi/health-management-client/session"
	"github.com/hemahemapathi/health-management-client/theme"
)

type app struct {
	cfg     config.Config
	creds   *credstore.FileStore
	client  *api.Client
	session *session.Service
	themes  *theme.Service
	logger  zerolog.Logger
}

func newApp(cmd *cobra.Command) (*app, error) {
	cfg := config.New()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).
		With().Timestamp().Logger().Level(zerolog.WarnLevel)
	if verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose"); verbose {
		logger = logger.Level(zerolog.DebugLevel)
	}

	creds := credstore.NewFileStore(cfg.GetDataDir())
	client := api.New(cfg.GetAPIBaseURL(), creds, api.WithLogger(logger))

	sess, err := session.New(creds, client,
		session.WithLogger(logger),
		session.WithNavigator(func(path string) {
			fmt.Fprintf(cmd.OutOrStdout(), "-> %s\n", path)
		}),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		creds:   creds,
		client:  client,
		session: sess,
		themes:  theme.New(cfg.GetDataDir(), nil),
		logger:  logger,
	}, nil
}

// requireSession resolves the stored credential and fails the command when
// nobody is logged in.
func (a *app) requireSession(cmd *cobra.Command) (session.Snapshot, error) {
	a.session.Start(cmd.Context())
	snap := a.session.Snapshot()
	if snap.State != session.StateAuthenticated {
		return snap, errors.New(`not logged in, run "healthctl login" first`)
	}
	return snap, nil
}

func newTabWriter(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
}

// userFacing rewrites an API failure into its user-facing message.
func userFacing(err error, fallback string) error {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return errors.New(apiErr.UserMessage(fallback))
	}
	return err
}
