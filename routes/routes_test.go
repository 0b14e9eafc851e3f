package routes_test

import (
	"testing"

	"github.com/hemahemapathi/health-management-client/routes"
	"github.com/hemahemapathi/health-management-client/users"
	"github.com/stretchr/testify/require"
)

func TestHomeFor(t *testing.T) {
	require.Equal(t, "/patient-dashboard", routes.HomeFor(users.RolePatient))
	require.Equal(t, "/doctor-dashboard", routes.HomeFor(users.RoleDoctor))
	require.Equal(t, "/admin-dashboard", routes.HomeFor(users.RoleAdmin))
	require.Equal(t, "/", routes.HomeFor(users.RoleType("receptionist")))
}

func TestDashboardRoot(t *testing.T) {
	require.Equal(t, "/doctor-dashboard", routes.DashboardRoot("/doctor-dashboard"))
	require.Equal(t, "/doctor-dashboard", routes.DashboardRoot("/doctor-dashboard/schedule"))
	require.Equal(t, "/patient-dashboard", routes.DashboardRoot("/patient-dashboard/appointments/42"))
	require.Equal(t, "", routes.DashboardRoot("/doctors"))
	require.Equal(t, "", routes.DashboardRoot("/"))
}

func TestRoleFor(t *testing.T) {
	role, ok := routes.RoleFor("/admin-dashboard")
	require.True(t, ok)
	require.Equal(t, users.RoleAdmin, role)

	_, ok = routes.RoleFor("/doctors")
	require.False(t, ok)
}
