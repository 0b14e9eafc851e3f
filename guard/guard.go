// Package guard decides whether a protected route may render for the
// current session. Decide is pure and deterministic: it is re-evaluated on
// every navigation and whenever the session changes, and never has side
// effects of its own.
package guard

import (
	"github.com/hemahemapathi/health-management-client/routes"
	"github.com/hemahemapathi/health-management-client/session"
	"github.com/hemahemapathi/health-management-client/users"
)

// Outcome is the kind of decision produced for a navigation attempt.
type Outcome int

const (
	// Verifying means the session is still resolving; show a neutral
	// placeholder and re-evaluate once loading completes. Never a redirect.
	Verifying Outcome = iota
	// Render means the guarded content may be shown.
	Render
	// Redirect means navigation must move to Decision.Path instead.
	Redirect
)

func (o Outcome) String() string {
	switch o {
	case Verifying:
		return "verifying"
	case Render:
		return "render"
	case Redirect:
		return "redirect"
	}
	return "invalid"
}

// Decision is the result of evaluating a navigation attempt.
type Decision struct {
	Outcome Outcome
	Path    string // redirect target, set only for Redirect
	From    string // originally requested path, set on the login redirect
}

// Decide evaluates whether a session may view content requiring
// requiredRole at requestedPath. An empty requiredRole guards only against
// unauthenticated access.
func Decide(snap session.Snapshot, requiredRole users.RoleType, requestedPath string) Decision {
	if snap.Loading {
		return Decision{Outcome: Verifying}
	}

	if snap.User == nil {
		// From lets the caller return the user here after login; the
		// session service itself always navigates to the role home.
		return Decision{Outcome: Redirect, Path: routes.Login, From: requestedPath}
	}

	if requiredRole != "" && snap.User.Role != requiredRole {
		return Decision{Outcome: Redirect, Path: routes.HomeFor(snap.User.Role)}
	}

	return Decision{Outcome: Render}
}

// DecideForPath derives the required role from the dashboard root the path
// belongs to. Public paths render for everyone.
func DecideForPath(snap session.Snapshot, requestedPath string) Decision {
	root := routes.DashboardRoot(requestedPath)
	if root == "" {
		return Decision{Outcome: Render}
	}
	role, _ := routes.RoleFor(root)
	return Decide(snap, role, requestedPath)
}
