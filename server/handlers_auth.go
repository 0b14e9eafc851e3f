package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hemahemapathi/health-management-client/api"
	"github.com/hemahemapathi/health-management-client/users"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload loginRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	user, err := s.stores.Users.GetByEmail(payload.Email)
	if err != nil || !users.CheckPasswordHash(payload.Password, user.PasswordHash) {
		writeFailure(w, http.StatusOK, "Invalid credentials")
		return
	}

	token, err := s.tokens.issue(user)
	if err != nil {
		log.Error().Err(err).Msg("token issue failed")
		writeFailure(w, http.StatusInternalServerError, "Login failed")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"token": token, "user": user})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload registerRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	role, err := users.ParseRole(payload.Role)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Role must be patient, doctor or admin")
		return
	}
	if err := users.ValidateName(payload.Name); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := users.ValidateEmail(payload.Email); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := users.ValidatePasswordStrength(payload.Password); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	hash, err := users.HashPassword(payload.Password)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	user := &users.User{
		Name:         payload.Name,
		Email:        payload.Email,
		Role:         role,
		PasswordHash: hash,
	}
	if err := s.stores.Users.Upsert(user); err != nil {
		writeFailure(w, http.StatusBadRequest, "Email already registered")
		return
	}

	// Doctors get a directory entry so they show up in listings and can
	// manage their schedule straight away.
	if role == users.RoleDoctor {
		s.stores.Doctors.Upsert(&api.Doctor{UserID: user.ID, Name: user.Name})
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"message": "Registration successful"})
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	user, err := s.stores.Users.GetByID(userID)
	if err != nil {
		writeFailure(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"user": user})
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	// The hosted service emails the token; the stub just logs it. The
	// response is the same whether or not the account exists.
	if token, err := s.stores.Users.CreateResetToken(payload.Email); err == nil {
		log.Info().Str("email", payload.Email).Str("reset_token", token).Msg("password reset requested")
	}
	writeSuccess(w, http.StatusOK, nil)
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := users.ValidatePasswordStrength(payload.Password); err != nil {
		writeFailure(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.stores.Users.ConsumeResetToken(payload.Token)
	if err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	hash, err := users.HashPassword(payload.Password)
	if err != nil {
		writeFailure(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}
	user.PasswordHash = hash
	if err := s.stores.Users.Upsert(user); err != nil {
		writeFailure(w, http.StatusInternalServerError, "Failed to reset password")
		return
	}

	writeSuccess(w, http.StatusOK, nil)
}
