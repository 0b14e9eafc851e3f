package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hemahemapathi/health-management-client/api"
)

// PrescriptionStore keeps issued prescriptions.
type PrescriptionStore struct {
	lock          sync.RWMutex
	prescriptions map[string]*api.Prescription
}

func NewPrescriptionStore() *PrescriptionStore {
	return &PrescriptionStore{prescriptions: make(map[string]*api.Prescription)}
}

func (s *PrescriptionStore) Create(p *api.Prescription) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now().UTC()
	s.prescriptions[p.ID] = p
}

func (s *PrescriptionStore) Get(id string) (*api.Prescription, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	p, ok := s.prescriptions[id]
	if !ok {
		return nil, ErrNotFound
	}
	pCopy := *p
	return &pCopy, nil
}

// ListForPatient returns prescriptions issued to a patient, newest first.
func (s *PrescriptionStore) ListForPatient(patientID string) []api.Prescription {
	return s.list(func(p *api.Prescription) bool { return p.PatientID == patientID })
}

// ListForDoctor returns prescriptions issued by a doctor, newest first.
func (s *PrescriptionStore) ListForDoctor(doctorID string) []api.Prescription {
	return s.list(func(p *api.Prescription) bool { return p.DoctorID == doctorID })
}

func (s *PrescriptionStore) list(match func(*api.Prescription) bool) []api.Prescription {
	s.lock.RLock()
	defer s.lock.RUnlock()

	out := make([]api.Prescription, 0)
	for _, p := range s.prescriptions {
		if match(p) {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

// Update replaces the medications and notes of an existing prescription,
// provided doctorID issued it.
func (s *PrescriptionStore) Update(id, doctorID string, medications []api.Medication, notes string) (*api.Prescription, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	p, ok := s.prescriptions[id]
	if !ok || p.DoctorID != doctorID {
		return nil, ErrNotFound
	}
	p.Medications = medications
	p.Notes = notes
	pCopy := *p
	return &pCopy, nil
}

// Delete removes a prescription, provided doctorID issued it.
func (s *PrescriptionStore) Delete(id, doctorID string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	p, ok := s.prescriptions[id]
	if !ok || p.DoctorID != doctorID {
		return ErrNotFound
	}
	delete(s.prescriptions, id)
	return nil
}
