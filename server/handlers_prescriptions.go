package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hemahemapathi/health-management-client/api"
	"github.com/hemahemapathi/health-management-client/users"
)

func (s *Server) handleListPrescriptions(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	role, _ := RoleFromContext(r.Context())

	var list []api.Prescription
	if role == users.RoleDoctor {
		doctor, err := s.stores.Doctors.GetByUserID(userID)
		if err != nil {
			writeFailure(w, http.StatusNotFound, "Doctor profile not found")
			return
		}
		list = s.stores.Prescriptions.ListForDoctor(doctor.ID)
	} else {
		list = s.stores.Prescriptions.ListForPatient(userID)
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": list})
}

func (s *Server) handleGetPrescription(w http.ResponseWriter, r *http.Request) {
	p, err := s.stores.Prescriptions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Prescription not found")
		return
	}

	userID, _ := UserIDFromContext(r.Context())
	role, _ := RoleFromContext(r.Context())
	allowed := role == users.RoleAdmin || p.PatientID == userID
	if !allowed && role == users.RoleDoctor {
		doctor, err := s.stores.Doctors.GetByUserID(userID)
		allowed = err == nil && doctor.ID == p.DoctorID
	}
	if !allowed {
		writeFailure(w, http.StatusForbidden, "Not your prescription")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": p})
}

func (s *Server) handleCreatePrescription(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, _ := UserIDFromContext(r.Context())
	doctor, err := s.stores.Doctors.GetByUserID(userID)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Doctor profile not found")
		return
	}

	var payload api.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if payload.PatientID == "" || len(payload.Medications) == 0 {
		writeFailure(w, http.StatusBadRequest, "patientId and medications are required")
		return
	}

	patient, err := s.stores.Users.GetByID(payload.PatientID)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Patient not found")
		return
	}

	p := &api.Prescription{
		AppointmentID: payload.AppointmentID,
		DoctorID:      doctor.ID,
		PatientID:     patient.ID,
		DoctorName:    doctor.Name,
		PatientName:   patient.Name,
		Medications:   payload.Medications,
		Notes:         payload.Notes,
	}
	s.stores.Prescriptions.Create(p)

	writeSuccess(w, http.StatusCreated, map[string]any{"data": p})
}

func (s *Server) handleUpdatePrescription(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, _ := UserIDFromContext(r.Context())
	doctor, err := s.stores.Doctors.GetByUserID(userID)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Doctor profile not found")
		return
	}

	var payload api.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if len(payload.Medications) == 0 {
		writeFailure(w, http.StatusBadRequest, "medications are required")
		return
	}

	p, err := s.stores.Prescriptions.Update(chi.URLParam(r, "id"), doctor.ID, payload.Medications, payload.Notes)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Prescription not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": p})
}

func (s *Server) handleDeletePrescription(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	doctor, err := s.stores.Doctors.GetByUserID(userID)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Doctor profile not found")
		return
	}

	if err := s.stores.Prescriptions.Delete(chi.URLParam(r, "id"), doctor.ID); err != nil {
		writeFailure(w, http.StatusNotFound, "Prescription not found")
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}
