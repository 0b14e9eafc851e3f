package store

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/hemahemapathi/health-management-client/api"
)

// DoctorStore keeps the public doctor directory.
type DoctorStore struct {
	lock    sync.RWMutex
	doctors map[string]*api.Doctor
	byUser  map[string]string // user id -> doctor id
}

func NewDoctorStore() *DoctorStore {
	return &DoctorStore{
		doctors: make(map[string]*api.Doctor),
		byUser:  make(map[string]string),
	}
}

func (s *DoctorStore) Upsert(doctor *api.Doctor) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	s.doctors[doctor.ID] = doctor
	if doctor.UserID != "" {
		s.byUser[doctor.UserID] = doctor.ID
	}
}

func (s *DoctorStore) Get(id string) (*api.Doctor, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	doctor, ok := s.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	doctorCopy := *doctor
	return &doctorCopy, nil
}

func (s *DoctorStore) GetByUserID(userID string) (*api.Doctor, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	id, ok := s.byUser[userID]
	if !ok {
		return nil, ErrNotFound
	}
	doctorCopy := *s.doctors[id]
	return &doctorCopy, nil
}

// List returns a stable page of doctors, optionally filtered by
// specialization (case-insensitive).
func (s *DoctorStore) List(offset, limit int, specialization string) []api.Doctor {
	s.lock.RLock()
	defer s.lock.RUnlock()

	all := make([]api.Doctor, 0, len(s.doctors))
	for _, d := range s.doctors {
		if specialization != "" && !strings.EqualFold(d.Specialization, specialization) {
			continue
		}
		all = append(all, *d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })

	if offset >= len(all) {
		return []api.Doctor{}
	}
	end := offset + limit
	if limit <= 0 || end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

// Specializations returns the distinct specializations in the directory.
func (s *DoctorStore) Specializations() []string {
	s.lock.RLock()
	defer s.lock.RUnlock()

	seen := make(map[string]struct{})
	for _, d := range s.doctors {
		if d.Specialization != "" {
			seen[strings.ToLower(d.Specialization)] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for sp := range seen {
		out = append(out, sp)
	}
	sort.Strings(out)
	return out
}

// SetAvailability replaces a doctor's weekly consultation windows.
func (s *DoctorStore) SetAvailability(id string, slots []api.AvailabilitySlot) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	doctor, ok := s.doctors[id]
	if !ok {
		return ErrNotFound
	}
	doctor.Availability = slots
	return nil
}
