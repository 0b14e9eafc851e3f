// Package session owns the process-wide authentication state. It is the
// single source of truth for "who is logged in" and the only component
// permitted to mutate the credential store.
package session

import (
	"context"

	"github.com/hemahemapathi/health-management-client/api"
	"github.com/hemahemapathi/health-management-client/users"
)

// State is the session lifecycle state.
type State int

const (
	// StateUnknown is the initial state while the stored token is being
	// verified against the backend.
	StateUnknown State = iota
	StateUnauthenticated
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateUnknown:
		return "unknown"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	}
	return "invalid"
}

// Snapshot is an immutable view of the session handed to subscribers and the
// route guard. User and Token are set and cleared together; the only
// exception is the startup verification window, where Token is present,
// User is still being resolved and Loading is true.
type Snapshot struct {
	State   State
	Loading bool
	User    *users.User
	Token   string
	Err     string
}

// Navigator is invoked after auth mutations that move the user somewhere
// else (role home after login, the login page after logout).
type Navigator func(path string)

// Backend is the slice of the API client the session service depends on.
// *api.Client satisfies it; tests substitute fakes.
type Backend interface {
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Verify(ctx context.Context) (*users.User, error)
	Register(ctx context.Context, req api.RegisterRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	UpdateProfile(ctx context.Context, update api.ProfileUpdate) (*users.User, error)
}
