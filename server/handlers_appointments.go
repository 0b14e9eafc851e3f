package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hemahemapathi/health-management-client/api"
	"github.com/hemahemapathi/health-management-client/users"
)

func (s *Server) handleBookAppointment(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, _ := UserIDFromContext(r.Context())

	var payload api.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if payload.DoctorID == "" || payload.Date == "" || payload.TimeSlot == "" {
		writeFailure(w, http.StatusBadRequest, "doctorId, date and timeSlot are required")
		return
	}
	if _, err := time.Parse("2006-01-02", payload.Date); err != nil {
		writeFailure(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	doctor, err := s.stores.Doctors.Get(payload.DoctorID)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Doctor not found")
		return
	}
	patient, err := s.stores.Users.GetByID(userID)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "User not found")
		return
	}

	appt := &api.Appointment{
		DoctorID:    doctor.ID,
		PatientID:   patient.ID,
		DoctorName:  doctor.Name,
		PatientName: patient.Name,
		Date:        payload.Date,
		TimeSlot:    payload.TimeSlot,
		Reason:      payload.Reason,
	}
	if err := s.stores.Appointments.Create(appt); err != nil {
		writeFailure(w, http.StatusConflict, "This slot is already booked")
		return
	}

	writeSuccess(w, http.StatusCreated, map[string]any{"data": appt})
}

func (s *Server) handlePatientAppointments(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	appts := s.stores.Appointments.ListForPatient(userID)
	writeSuccess(w, http.StatusOK, map[string]any{"data": appts})
}

func (s *Server) handleDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())
	doctor, err := s.stores.Doctors.GetByUserID(userID)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Doctor profile not found")
		return
	}
	appts := s.stores.Appointments.ListForDoctor(doctor.ID)
	writeSuccess(w, http.StatusOK, map[string]any{"data": appts})
}

func (s *Server) handleGetAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := s.stores.Appointments.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if !s.isParty(r, appt) {
		writeFailure(w, http.StatusForbidden, "Not your appointment")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": appt})
}

func (s *Server) handleCancelAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := s.stores.Appointments.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if !s.isParty(r, appt) {
		writeFailure(w, http.StatusForbidden, "Not your appointment")
		return
	}
	if _, err := s.stores.Appointments.SetStatus(appt.ID, api.AppointmentCancelled); err != nil {
		writeFailure(w, http.StatusNotFound, "Appointment not found")
		return
	}
	writeSuccess(w, http.StatusOK, nil)
}

func (s *Server) handleUpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	userID, _ := UserIDFromContext(r.Context())
	doctor, err := s.stores.Doctors.GetByUserID(userID)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Doctor profile not found")
		return
	}

	appt, err := s.stores.Appointments.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Appointment not found")
		return
	}
	if appt.DoctorID != doctor.ID {
		writeFailure(w, http.StatusForbidden, "Not your appointment")
		return
	}

	var payload struct {
		Status api.AppointmentStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	switch payload.Status {
	case api.AppointmentPending, api.AppointmentConfirmed, api.AppointmentCancelled, api.AppointmentCompleted:
	default:
		writeFailure(w, http.StatusBadRequest, "Unknown appointment status")
		return
	}

	updated, err := s.stores.Appointments.SetStatus(appt.ID, payload.Status)
	if err != nil {
		writeFailure(w, http.StatusNotFound, "Appointment not found")
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": updated})
}

// defaultSlots is the schedule used when a doctor has no explicit
// availability: hourly consultations between 09:00 and 17:00.
func defaultSlots() []string {
	slots := make([]string, 0, 8)
	for hour := 9; hour < 17; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
	}
	return slots
}

func (s *Server) handleAvailableSlots(w http.ResponseWriter, r *http.Request) {
	doctorID := r.URL.Query().Get("doctorId")
	date := r.URL.Query().Get("date")
	if doctorID == "" || date == "" {
		writeFailure(w, http.StatusBadRequest, "doctorId and date are required")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		writeFailure(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}
	if _, err := s.stores.Doctors.Get(doctorID); err != nil {
		writeFailure(w, http.StatusNotFound, "Doctor not found")
		return
	}

	booked := s.stores.Appointments.BookedSlots(doctorID, date)
	open := make([]string, 0)
	for _, slot := range defaultSlots() {
		if _, taken := booked[slot]; !taken {
			open = append(open, slot)
		}
	}
	writeSuccess(w, http.StatusOK, map[string]any{"data": open})
}

// isParty reports whether the authenticated caller is the patient or the
// doctor on the given appointment.
func (s *Server) isParty(r *http.Request, appt *api.Appointment) bool {
	userID, _ := UserIDFromContext(r.Context())
	role, _ := RoleFromContext(r.Context())

	switch role {
	case users.RoleAdmin:
		return true
	case users.RoleDoctor:
		doctor, err := s.stores.Doctors.GetByUserID(userID)
		return err == nil && doctor.ID == appt.DoctorID
	default:
		return appt.PatientID == userID
	}
}
