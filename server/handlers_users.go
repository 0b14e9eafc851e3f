package server

import (
	"encoding/json"
	"net/http"

	"github.com/hemahemapathi/health-management-client/users"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	user, err := s.stores.Users.GetByID(userID)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "User not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"user": user})
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, _ := UserIDFromContext(r.Context())
	current, err := s.stores.Users.GetByID(userID)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "User not found")
		return
	}

	var update users.User
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	// Identity and role are not editable through the profile endpoint.
	update.ID = ""
	update.Email = ""
	update.Role = ""

	if update.Name != "" {
		if err := users.ValidateName(update.Name); err != nil {
			writeFailure(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if update.Phone != "" {
		if err := users.ValidatePhone(update.Phone); err != nil {
			writeFailure(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	merged := current.Merge(update)
	if err := s.stores.Users.Upsert(&merged); err != nil {
		writeFailure(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"user": merged})
}
