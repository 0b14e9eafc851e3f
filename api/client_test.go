package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hemahemapathi/health-management-client/api"
	"github.com/hemahemapathi/health-management-client/credstore/repofake"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*api.Client, *repofake.FakeCredRepo) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	creds := repofake.NewFakeCredRepo()
	return api.New(srv.URL, creds), creds
}

func TestLoginSuccess(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"token":"T","user":{"id":"u1","name":"Dr. Smith","email":"smith@example.com","role":"doctor"}}`))
	})

	result, err := client.Login(context.Background(), "smith@example.com", "password1")
	require.NoError(t, err)
	require.Equal(t, "T", result.Token)
	require.Equal(t, "u1", result.User.ID)
	require.Equal(t, "doctor", string(result.User.Role))
}

func TestLoginRejectedIsAuthFailureWithVerbatimMessage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"Invalid credentials"}`))
	})

	_, err := client.Login(context.Background(), "a@b.com", "wrong")
	require.Error(t, err)
	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	require.Equal(t, api.KindAuth, apiErr.Kind)
	require.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestLoginMissingTokenIsShapeFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"user":{"id":"u1","role":"patient"}}`))
	})

	_, err := client.Login(context.Background(), "a@b.com", "password1")
	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	require.Equal(t, api.KindShape, apiErr.Kind)
}

func TestUnknownRoleIsShapeFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"token":"T","user":{"id":"u1","role":"superuser"}}`))
	})

	_, err := client.Login(context.Background(), "a@b.com", "password1")
	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	require.Equal(t, api.KindShape, apiErr.Kind)
}

func TestMalformedBodyIsShapeFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>gateway error</html>`))
	})

	_, err := client.Login(context.Background(), "a@b.com", "password1")
	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	require.Equal(t, api.KindShape, apiErr.Kind)
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	creds := repofake.NewFakeCredRepo()
	client := api.New(srv.URL, creds)
	srv.Close() // connection refused from here on

	_, err := client.Login(context.Background(), "a@b.com", "password1")
	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	require.Equal(t, api.KindTransport, apiErr.Kind)
	require.Empty(t, apiErr.UserMessage(""), "transport failures never pass server text through")
}

func TestVerifySendsStoredBearerToken(t *testing.T) {
	client, creds := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer stored-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"success":true,"user":{"id":"u1","name":"Pat","email":"pat@example.com","role":"patient"}}`))
	})
	creds.Save("stored-token")

	user, err := client.Verify(context.Background())
	require.NoError(t, err)
	require.Equal(t, "u1", user.ID)
}

func TestVerifyWithoutStoredTokenIsAuthFailure(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("request should never be sent without a credential")
	})

	_, err := client.Verify(context.Background())
	require.True(t, api.IsAuth(err))
}

func TestRejectedTokenIsAuthFailure(t *testing.T) {
	client, creds := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"success":false,"message":"Token expired"}`))
	})
	creds.Save("stale-token")

	_, err := client.Verify(context.Background())
	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	require.Equal(t, api.KindAuth, apiErr.Kind)
	require.Equal(t, "Token expired", apiErr.Message)
}

func TestValidationMessagePassedVerbatim(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"success":false,"message":"Email already registered"}`))
	})

	err := client.Register(context.Background(), api.RegisterRequest{
		Name: "John Doe", Email: "john@example.com", Password: "password1", Role: "patient",
	})
	apiErr, ok := err.(*api.Error)
	require.True(t, ok)
	require.Equal(t, api.KindValidation, apiErr.Kind)
	require.Equal(t, "Email already registered", apiErr.UserMessage("fallback"))
}

func TestListDoctorsQueryParameters(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/doctors", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "5", r.URL.Query().Get("limit"))
		require.Equal(t, "cardiology", r.URL.Query().Get("specialization"))
		w.Write([]byte(`{"success":true,"data":[{"id":"d1","name":"Dr. Heart","specialization":"cardiology"}]}`))
	})

	doctors, err := client.ListDoctors(context.Background(), 2, 5, "cardiology")
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	require.Equal(t, "Dr. Heart", doctors[0].Name)
}

func TestRegisterRequestValidate(t *testing.T) {
	valid := api.RegisterRequest{Name: "John Doe", Email: "john@example.com", Password: "password1", Role: "patient"}
	require.NoError(t, valid.Validate())

	bad := valid
	bad.Password = "short"
	require.Error(t, bad.Validate())

	bad = valid
	bad.Role = "superuser"
	require.Error(t, bad.Validate())
}
