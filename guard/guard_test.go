package guard_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hemahemapathi/health-management-client/guard"
	"github.com/hemahemapathi/health-management-client/session"
	"github.com/hemahemapathi/health-management-client/users"
)

func authenticated(role users.RoleType) session.Snapshot {
	return session.Snapshot{
		State: session.StateAuthenticated,
		User:  &users.User{ID: "u1", Role: role},
		Token: "T",
	}
}

func TestLoadingNeverRedirects(t *testing.T) {
	snapshots := []session.Snapshot{
		{Loading: true},
		{Loading: true, Token: "T"}, // verification window
		{Loading: true, User: &users.User{Role: users.RolePatient}, Token: "T"},
	}
	for _, snap := range snapshots {
		d := guard.Decide(snap, users.RoleDoctor, "/doctor-dashboard")
		require.Equal(t, guard.Verifying, d.Outcome)
		require.Empty(t, d.Path)
	}
}

func TestUnauthenticatedRedirectsToLoginCarryingFrom(t *testing.T) {
	snap := session.Snapshot{State: session.StateUnauthenticated}

	for _, role := range []users.RoleType{"", users.RolePatient, users.RoleDoctor, users.RoleAdmin} {
		d := guard.Decide(snap, role, "/doctor-dashboard/schedule")
		require.Equal(t, guard.Redirect, d.Outcome)
		require.Equal(t, "/login", d.Path)
		require.Equal(t, "/doctor-dashboard/schedule", d.From)
	}
}

func TestRoleMismatchRedirectsToOwnDashboard(t *testing.T) {
	d := guard.Decide(authenticated(users.RolePatient), users.RoleDoctor, "/doctor-dashboard")
	require.Equal(t, guard.Redirect, d.Outcome)
	require.Equal(t, "/patient-dashboard", d.Path)

	d = guard.Decide(authenticated(users.RoleAdmin), users.RolePatient, "/patient-dashboard")
	require.Equal(t, "/admin-dashboard", d.Path)
}

func TestUnrecognizedRoleRedirectsHome(t *testing.T) {
	d := guard.Decide(authenticated(users.RoleType("receptionist")), users.RoleDoctor, "/doctor-dashboard")
	require.Equal(t, guard.Redirect, d.Outcome)
	require.Equal(t, "/", d.Path)
}

func TestMatchingRoleRenders(t *testing.T) {
	d := guard.Decide(authenticated(users.RoleDoctor), users.RoleDoctor, "/doctor-dashboard")
	require.Equal(t, guard.Render, d.Outcome)
}

func TestNoRequiredRoleRendersForAnyAuthenticatedUser(t *testing.T) {
	for _, role := range []users.RoleType{users.RolePatient, users.RoleDoctor, users.RoleAdmin} {
		d := guard.Decide(authenticated(role), "", "/appointments/book")
		require.Equal(t, guard.Render, d.Outcome)
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	snap := authenticated(users.RolePatient)
	first := guard.Decide(snap, users.RoleDoctor, "/doctor-dashboard")
	for i := 0; i < 10; i++ {
		require.Equal(t, first, guard.Decide(snap, users.RoleDoctor, "/doctor-dashboard"))
	}
}

func TestDecideForPath(t *testing.T) {
	t.Run("public path renders for anyone", func(t *testing.T) {
		d := guard.DecideForPath(session.Snapshot{State: session.StateUnauthenticated}, "/doctors")
		require.Equal(t, guard.Render, d.Outcome)
	})

	t.Run("dashboard sub-route inherits its root's role", func(t *testing.T) {
		d := guard.DecideForPath(authenticated(users.RolePatient), "/doctor-dashboard/patients")
		require.Equal(t, guard.Redirect, d.Outcome)
		require.Equal(t, "/patient-dashboard", d.Path)
	})

	t.Run("own dashboard renders", func(t *testing.T) {
		d := guard.DecideForPath(authenticated(users.RoleDoctor), "/doctor-dashboard/schedule")
		require.Equal(t, guard.Render, d.Outcome)
	})

	t.Run("unauthenticated dashboard access redirects to login", func(t *testing.T) {
		d := guard.DecideForPath(session.Snapshot{State: session.StateUnauthenticated}, "/patient-dashboard")
		require.Equal(t, guard.Redirect, d.Outcome)
		require.Equal(t, "/login", d.Path)
		require.Equal(t, "/patient-dashboard", d.From)
	})
}
