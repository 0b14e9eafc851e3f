package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hemahemapathi/health-management-client/api"
)

func (s *Server) handleListDoctors(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	specialization := r.URL.Query().Get("specialization")

	doctors := s.stores.Doctors.List((page-1)*limit, limit, specialization)
	writeSuccess(w, http.StatusOK, map[string]any{"data": doctors, "count": len(doctors)})
}

func (s *Server) handleGetDoctor(w http.ResponseWriter, r *http.Request) {
	doctor, err := s.stores.Doctors.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Doctor not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": doctor})
}

func (s *Server) handleDoctorAvailability(w http.ResponseWriter, r *http.Request) {
	doctor, err := s.stores.Doctors.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Doctor not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": doctor.Availability})
}

func (s *Server) handleSpecializations(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, map[string]any{"data": s.stores.Doctors.Specializations()})
}

func (s *Server) handleUpdateAvailability(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, _ := UserIDFromContext(r.Context())
	doctorID := chi.URLParam(r, "id")

	// A doctor can only edit their own schedule.
	own, err := s.stores.Doctors.GetByUserID(userID)
	if err != nil || own.ID != doctorID {
		writeFailure(w, http.StatusForbidden, "You can only update your own availability")
		return
	}

	var payload struct {
		Availability []api.AvailabilitySlot `json:"availability"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if err := s.stores.Doctors.SetAvailability(doctorID, payload.Availability); err != nil {
		writeFailure(w, http.StatusNotFound, "Doctor not found")
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}
