// Package routes defines the client-side navigation surface. Paths are part
// of the external contract: the session service navigates to them after auth
// mutations and the route guard redirects between them.
package routes

import (
	"strings"

	"github.com/hemahemapathi/health-management-client/users"
)

const (
	Home           = "/"
	Login          = "/login"
	Register       = "/register"
	ForgotPassword = "/forgot-password"

	PatientDashboard = "/patient-dashboard"
	DoctorDashboard  = "/doctor-dashboard"
	AdminDashboard   = "/admin-dashboard"
)

// HomeFor returns the dashboard root for a role, falling back to the public
// home page for anything outside the closed role set.
func HomeFor(role users.RoleType) string {
	switch role {
	case users.RolePatient:
		return PatientDashboard
	case users.RoleDoctor:
		return DoctorDashboard
	case users.RoleAdmin:
		return AdminDashboard
	}
	return Home
}

// DashboardRoot returns the dashboard root a path belongs to, or "" for
// public paths. Nested sub-routes under a dashboard share its root.
func DashboardRoot(path string) string {
	for _, root := range []string{PatientDashboard, DoctorDashboard, AdminDashboard} {
		if path == root || strings.HasPrefix(path, root+"/") {
			return root
		}
	}
	return ""
}

// RoleFor maps a dashboard root back to the role allowed to view it.
func RoleFor(dashboardRoot string) (users.RoleType, bool) {
	switch dashboardRoot {
	case PatientDashboard:
		return users.RolePatient, true
	case DoctorDashboard:
		return users.RoleDoctor, true
	case AdminDashboard:
		return users.RoleAdmin, true
	}
	return "", false
}
