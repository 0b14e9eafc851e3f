// Package api is the typed client for the health management backend REST
// API. Response payloads are validated against strict schemas at this
// boundary; anything off-contract surfaces as a shape failure rather than
// being guessed at.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"

	"github.com/hemahemapathi/health-management-client/credstore"
)

const maxResponseBytes = 1 << 20 // 1 MiB, more than any contract payload

// ErrNoCredential is returned by the token source when an authenticated call
// is attempted with nothing in the credential store.
var ErrNoCredential = errors.New("no stored credential")

// envelope is the common wrapper every backend response carries.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (e envelope) ok() bool { return e.Success }

func (e envelope) serverMsg() string { return e.Message }

type responseEnvelope interface {
	ok() bool
	serverMsg() string
}

// Client calls the backend. It never mutates the credential store; it only
// reads it through the bearer token source.
type Client struct {
	baseURL    string
	httpClient *http.Client // unauthenticated calls
	authClient *http.Client // bearer-injecting transport
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the base HTTP client used for all calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the request logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a Client against baseURL. Authenticated requests read the
// bearer token from creds on every call, so a token persisted after New is
// picked up without rebuilding the client.
func New(baseURL string, creds credstore.Repo, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     zerolog.Nop(),
	}

	for _, opt := range options {
		opt(c)
	}

	c.authClient = &http.Client{
		Timeout: c.httpClient.Timeout,
		Transport: &oauth2.Transport{
			Source: &storeTokenSource{creds: creds},
			Base:   c.httpClient.Transport,
		},
	}

	return c
}

// storeTokenSource adapts the credential store to oauth2.TokenSource so the
// stock oauth2 transport handles Authorization header injection.
type storeTokenSource struct {
	creds credstore.Repo
}

func (s *storeTokenSource) Token() (*oauth2.Token, error) {
	token, ok := s.creds.Load()
	if !ok {
		return nil, ErrNoCredential
	}
	return &oauth2.Token{AccessToken: token, TokenType: "Bearer"}, nil
}

// do issues a request and decodes the response into out, mapping every
// failure mode onto the error taxonomy. out must embed envelope.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out responseEnvelope, authed bool) *Error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return transportError(err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return transportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	httpClient := c.httpClient
	if authed {
		httpClient = c.authClient
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		if errors.Is(err, ErrNoCredential) {
			return &Error{Kind: KindAuth, Err: ErrNoCredential}
		}
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return transportError(err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("request")

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromStatus(resp.StatusCode, raw)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return shapeError(resp.StatusCode, err)
	}
	if !out.ok() {
		// success:false inside a 2xx is a server-reported rejection.
		return &Error{Kind: KindValidation, Message: out.serverMsg(), Status: resp.StatusCode}
	}
	return nil
}

// errorFromStatus maps a non-2xx response onto the taxonomy. The server
// message is extracted when the body still carries the contract envelope; a
// body off-contract is a shape failure.
func errorFromStatus(status int, raw []byte) *Error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil || env.Message == "" {
		return shapeError(status, err)
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &Error{Kind: KindAuth, Message: env.Message, Status: status}
	}
	return &Error{Kind: KindValidation, Message: env.Message, Status: status}
}
