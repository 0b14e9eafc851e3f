package session

import "errors"

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSuperseded       = errors.New("superseded by a newer operation")
)

// Generic fallback messages, used when the failure carries no server text
// the taxonomy allows passing through.
const (
	loginFailedMsg         = "Login failed. Please try again."
	registrationFailedMsg  = "Registration failed. Please try again."
	resetRequestFailedMsg  = "Failed to request password reset"
	resetFailedMsg         = "Failed to reset password"
	profileUpdateFailedMsg = "Failed to update profile"
)
