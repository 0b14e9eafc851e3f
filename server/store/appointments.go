package store

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hemahemapathi/health-management-client/api"
)

var ErrSlotTaken = errors.New("slot already booked")

// AppointmentStore keeps bookings and enforces slot uniqueness per doctor,
// date and time.
type AppointmentStore struct {
	lock         sync.RWMutex
	appointments map[string]*api.Appointment
}

func NewAppointmentStore() *AppointmentStore {
	return &AppointmentStore{appointments: make(map[string]*api.Appointment)}
}

// Create books a slot. A non-cancelled appointment already holding the same
// doctor/date/slot makes the booking fail.
func (s *AppointmentStore) Create(appt *api.Appointment) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	for _, existing := range s.appointments {
		if existing.DoctorID == appt.DoctorID &&
			existing.Date == appt.Date &&
			existing.TimeSlot == appt.TimeSlot &&
			existing.Status != api.AppointmentCancelled {
			return ErrSlotTaken
		}
	}

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	if appt.Status == "" {
		appt.Status = api.AppointmentPending
	}
	appt.CreatedAt = time.Now().UTC()
	s.appointments[appt.ID] = appt
	return nil
}

func (s *AppointmentStore) Get(id string) (*api.Appointment, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	appt, ok := s.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	apptCopy := *appt
	return &apptCopy, nil
}

// ListForPatient returns a patient's bookings, newest first.
func (s *AppointmentStore) ListForPatient(patientID string) []api.Appointment {
	return s.list(func(a *api.Appointment) bool { return a.PatientID == patientID })
}

// ListForDoctor returns a doctor's bookings, newest first.
func (s *AppointmentStore) ListForDoctor(doctorID string) []api.Appointment {
	return s.list(func(a *api.Appointment) bool { return a.DoctorID == doctorID })
}

func (s *AppointmentStore) list(match func(*api.Appointment) bool) []api.Appointment {
	s.lock.RLock()
	defer s.lock.RUnlock()

	out := make([]api.Appointment, 0)
	for _, a := range s.appointments {
		if match(a) {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// SetStatus moves a booking through its lifecycle.
func (s *AppointmentStore) SetStatus(id string, status api.AppointmentStatus) (*api.Appointment, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	appt, ok := s.appointments[id]
	if !ok {
		return nil, ErrNotFound
	}
	appt.Status = status
	apptCopy := *appt
	return &apptCopy, nil
}

// BookedSlots returns the occupied (non-cancelled) time slots for a doctor
// on a date.
func (s *AppointmentStore) BookedSlots(doctorID, date string) map[string]struct{} {
	s.lock.RLock()
	defer s.lock.RUnlock()

	booked := make(map[string]struct{})
	for _, a := range s.appointments {
		if a.DoctorID == doctorID && a.Date == date && a.Status != api.AppointmentCancelled {
			booked[a.TimeSlot] = struct{}{}
		}
	}
	return booked
}
