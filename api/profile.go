package api

import (
	"context"
	"net/http"

	"github.com/hemahemapathi/health-management-client/users"
)

type profileResponse struct {
	envelope
	User *users.User `json:"user"`
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*users.User, error) {
	var out profileResponse
	if apiErr := c.do(ctx, http.MethodGet, "/users/profile", nil, nil, &out, true); apiErr != nil {
		return nil, apiErr
	}
	if out.User == nil {
		return nil, shapeError(http.StatusOK, nil)
	}
	return out.User, nil
}

// ProfileUpdate carries the changed profile fields; empty fields are left
// untouched server-side.
type ProfileUpdate struct {
	Name        string `json:"name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	Address     string `json:"address,omitempty"`
}

// UpdateProfile sends changed fields and returns the updated user record as
// echoed by the server (which may contain only the changed fields).
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*users.User, error) {
	var out profileResponse
	if apiErr := c.do(ctx, http.MethodPut, "/users/profile", nil, update, &out, true); apiErr != nil {
		return nil, apiErr
	}
	if out.User == nil {
		return nil, shapeError(http.StatusOK, nil)
	}
	return out.User, nil
}
