package api

import (
	"context"
	"net/http"

	"github.com/hemahemapathi/health-management-client/users"
)

// LoginResult is the payload of a successful login: the bearer token to
// persist and the authenticated user.
type LoginResult struct {
	Token string
	User  users.User
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	envelope
	Token string      `json:"token"`
	User  *users.User `json:"user"`
}

// Login exchanges credentials for a bearer token. A server-side rejection is
// an auth failure carrying the server's message verbatim.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out loginResponse
	if apiErr := c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &out, false); apiErr != nil {
		if apiErr.Kind == KindValidation {
			// A rejected credential pair is an authentication failure, not
			// bad input.
			apiErr.Kind = KindAuth
		}
		return nil, apiErr
	}
	if out.Token == "" || out.User == nil {
		return nil, shapeError(http.StatusOK, nil)
	}
	return &LoginResult{Token: out.Token, User: *out.User}, nil
}

type verifyResponse struct {
	envelope
	User *users.User `json:"user"`
}

// Verify checks the stored bearer token against the backend and returns the
// user it belongs to.
func (c *Client) Verify(ctx context.Context) (*users.User, error) {
	var out verifyResponse
	if apiErr := c.do(ctx, http.MethodGet, "/auth/verify", nil, nil, &out, true); apiErr != nil {
		return nil, apiErr
	}
	if out.User == nil {
		return nil, shapeError(http.StatusOK, nil)
	}
	return out.User, nil
}

// RegisterRequest carries a new account registration.
type RegisterRequest struct {
	Name     string         `json:"name"`
	Email    string         `json:"email"`
	Password string         `json:"password"`
	Role     users.RoleType `json:"role"`
}

// Validate runs the client-side field checks before the request is sent.
func (r RegisterRequest) Validate() error {
	if err := users.ValidateName(r.Name); err != nil {
		return err
	}
	if err := users.ValidateEmail(r.Email); err != nil {
		return err
	}
	if err := users.ValidatePasswordStrength(r.Password); err != nil {
		return err
	}
	_, err := users.ParseRole(string(r.Role))
	return err
}

type registerResponse struct {
	envelope
}

// Register creates an account. It deliberately returns no session state:
// registration does not log the new user in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	var out registerResponse
	if apiErr := c.do(ctx, http.MethodPost, "/auth/register", nil, req, &out, false); apiErr != nil {
		return apiErr
	}
	return nil
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword requests a password reset email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	var out registerResponse
	if apiErr := c.do(ctx, http.MethodPost, "/auth/forgot-password", nil, forgotPasswordRequest{Email: email}, &out, false); apiErr != nil {
		return apiErr
	}
	return nil
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword completes a reset started by ForgotPassword.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	var out registerResponse
	if apiErr := c.do(ctx, http.MethodPost, "/auth/reset-password", nil, resetPasswordRequest{Token: token, Password: password}, &out, false); apiErr != nil {
		return apiErr
	}
	return nil
}
