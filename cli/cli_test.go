package cli

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/hemahemapathi/health-management-client/server"
)

// newTestRoot creates a fresh cobra root command wired to all subcommands.
// Each test gets an isolated command tree to avoid shared state.
func newTestRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "healthctl",
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("verbose", false, "")
	root.AddCommand(NewLoginCmd())
	root.AddCommand(NewLogoutCmd())
	root.AddCommand(NewRegisterCmd())
	root.AddCommand(NewWhoamiCmd())
	root.AddCommand(NewProfileCmd())
	root.AddCommand(NewDoctorsCmd())
	root.AddCommand(NewAppointmentsCmd())
	root.AddCommand(NewPrescriptionsCmd())
	root.AddCommand(NewThemeCmd())
	root.AddCommand(NewOpenCmd())
	return root
}

// executeCommand runs a cobra command with the given args and captures
// stdout/stderr.
func executeCommand(root *cobra.Command, args ...string) (stdout, stderr string, err error) {
	var outBuf, errBuf bytes.Buffer
	root.SetOut(&outBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)
	err = root.Execute()
	return outBuf.String(), errBuf.String(), err
}

type cliTestConfig struct{}

func (cliTestConfig) GetPort() string             { return ":0" }
func (cliTestConfig) GetJWTSecret() string        { return "test-secret" }
func (cliTestConfig) GetTokenTTL() string         { return "1h" }
func (cliTestConfig) GetAllowedOrigins() []string { return []string{"*"} }
func (cliTestConfig) GetAuthRateLimitRPM() int    { return 1000 }

// startStub runs a seeded development backend and points the command
// environment at it with an isolated data dir.
func startStub(t *testing.T) {
	t.Helper()

	stores := server.NewStores()
	require.NoError(t, server.Seed(stores))
	srv, err := server.New(cliTestConfig{}, stores)
	require.NoError(t, err)

	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	t.Setenv("API_BASE_URL", ts.URL+"/api")
	t.Setenv("DATA_DIR", t.TempDir())
}

func TestLoginWhoamiLogout(t *testing.T) {
	startStub(t)

	stdout, _, err := executeCommand(newTestRoot(), "login", "patient@demo.local", "-p", "patient1234")
	require.NoError(t, err)
	require.Contains(t, stdout, "Logged in as John Smith (patient)")
	require.Contains(t, stdout, "-> /patient-dashboard")

	stdout, _, err = executeCommand(newTestRoot(), "whoami")
	require.NoError(t, err)
	require.Contains(t, stdout, "patient@demo.local")

	stdout, _, err = executeCommand(newTestRoot(), "logout")
	require.NoError(t, err)
	require.Contains(t, stdout, "Logged out")

	_, _, err = executeCommand(newTestRoot(), "whoami")
	require.Error(t, err)
}

func TestLoginRejectedShowsServerMessage(t *testing.T) {
	startStub(t)

	_, _, err := executeCommand(newTestRoot(), "login", "patient@demo.local", "-p", "wrong-password")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Invalid credentials")
}

func TestDoctorsListAndShow(t *testing.T) {
	startStub(t)

	stdout, _, err := executeCommand(newTestRoot(), "doctors", "list")
	require.NoError(t, err)
	require.Contains(t, stdout, "Dr. Sarah Johnson")
	require.Contains(t, stdout, "cardiology")
}

func TestOpenGuardsDashboards(t *testing.T) {
	startStub(t)

	// Unauthenticated: dashboards redirect to login, public paths render.
	stdout, _, err := executeCommand(newTestRoot(), "open", "/patient-dashboard")
	require.NoError(t, err)
	require.Contains(t, stdout, "redirect /login (from /patient-dashboard)")

	stdout, _, err = executeCommand(newTestRoot(), "open", "/")
	require.NoError(t, err)
	require.Contains(t, stdout, "render /")

	// Authenticated patient: own dashboard renders, doctor dashboard
	// redirects home.
	_, _, err = executeCommand(newTestRoot(), "login", "patient@demo.local", "-p", "patient1234")
	require.NoError(t, err)

	stdout, _, err = executeCommand(newTestRoot(), "open", "/patient-dashboard/appointments")
	require.NoError(t, err)
	require.Contains(t, stdout, "render /patient-dashboard/appointments")

	stdout, _, err = executeCommand(newTestRoot(), "open", "/doctor-dashboard")
	require.NoError(t, err)
	require.Contains(t, stdout, "redirect /patient-dashboard")
}

func TestBookingFlow(t *testing.T) {
	startStub(t)

	_, _, err := executeCommand(newTestRoot(), "login", "patient@demo.local", "-p", "patient1234")
	require.NoError(t, err)

	stdout, _, err := executeCommand(newTestRoot(), "doctors", "list", "--specialization", "cardiology")
	require.NoError(t, err)
	doctorID := firstIDCell(t, stdout)

	stdout, _, err = executeCommand(newTestRoot(), "appointments", "slots", doctorID, "2026-09-07")
	require.NoError(t, err)
	require.Contains(t, stdout, "10:00")

	stdout, _, err = executeCommand(newTestRoot(),
		"appointments", "book", doctorID, "--date", "2026-09-07", "--time", "10:00", "--reason", "checkup")
	require.NoError(t, err)
	require.Contains(t, stdout, "Dr. Sarah Johnson")

	stdout, _, err = executeCommand(newTestRoot(), "appointments", "list")
	require.NoError(t, err)
	require.Contains(t, stdout, "2026-09-07")
	require.Contains(t, stdout, "pending")

	_, _, err = executeCommand(newTestRoot(),
		"appointments", "book", doctorID, "--date", "2026-09-07", "--time", "10:00")
	require.Error(t, err)
	require.Contains(t, err.Error(), "This slot is already booked")
}

func TestThemeCommands(t *testing.T) {
	t.Setenv("DATA_DIR", t.TempDir())

	stdout, _, err := executeCommand(newTestRoot(), "theme")
	require.NoError(t, err)
	require.Contains(t, stdout, "theme=light font-size=medium")

	stdout, _, err = executeCommand(newTestRoot(), "theme", "set", "dark")
	require.NoError(t, err)
	require.Contains(t, stdout, "theme=dark")

	// Persisted across invocations.
	stdout, _, err = executeCommand(newTestRoot(), "theme", "toggle")
	require.NoError(t, err)
	require.Contains(t, stdout, "theme=light")

	stdout, _, err = executeCommand(newTestRoot(), "theme", "font-size", "large")
	require.NoError(t, err)
	require.Contains(t, stdout, "font-size=large")
}

// firstIDCell pulls the ID cell out of the first data row of a tabwriter
// listing.
func firstIDCell(t *testing.T, listing string) string {
	t.Helper()

	lines := bytes.Split([]byte(listing), []byte("\n"))
	require.Greater(t, len(lines), 1, "expected at least one data row")
	fields := bytes.Fields(lines[1])
	require.NotEmpty(t, fields)
	return string(fields[0])
}
