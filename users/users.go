package users

import (
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// RoleType represents a user role on the platform. The set is closed:
// anything the backend sends outside of it is rejected at the decoding
// boundary rather than flowing through as an arbitrary string.
type RoleType string

const (
	RolePatient RoleType = "patient" // Books appointments, views prescriptions
	RoleDoctor  RoleType = "doctor"  // Manages schedules, patients, prescriptions
	RoleAdmin   RoleType = "admin"   // Platform administration
)

// ParseRole validates a raw role string against the closed role set.
func ParseRole(raw string) (RoleType, error) {
	switch RoleType(raw) {
	case RolePatient, RoleDoctor, RoleAdmin:
		return RoleType(raw), nil
	}
	return "", fmt.Errorf("unrecognised role %q", raw)
}

// UnmarshalJSON enforces the closed role set on every decode.
func (r *RoleType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	role, err := ParseRole(raw)
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// User is the profile record returned by the backend. Profile fields beyond
// the identity core are optional and role-dependent (Specialization is only
// meaningful for doctors).
type User struct {
	ID             string    `json:"id,omitempty"`
	Name           string    `json:"name,omitempty"`
	Email          string    `json:"email,omitempty"`
	Role           RoleType  `json:"role,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Gender         string    `json:"gender,omitempty"`
	DateOfBirth    string    `json:"dateOfBirth,omitempty"`
	Address        string    `json:"address,omitempty"`
	Specialization string    `json:"specialization,omitempty"`
	PasswordHash   string    `json:"-"` // Never serialized
	CreatedAt      time.Time `json:"createdAt,omitempty"`
}

// Merge applies a shallow merge of updated profile fields onto u: fields
// present in the update overwrite, fields absent are retained. Used for
// profile-update responses, which may echo only the changed fields.
func (u User) Merge(update User) User {
	merged := u
	if update.ID != "" {
		merged.ID = update.ID
	}
	if update.Name != "" {
		merged.Name = update.Name
	}
	if update.Email != "" {
		merged.Email = update.Email
	}
	if update.Role != "" {
		merged.Role = update.Role
	}
	if update.Phone != "" {
		merged.Phone = update.Phone
	}
	if update.Gender != "" {
		merged.Gender = update.Gender
	}
	if update.DateOfBirth != "" {
		merged.DateOfBirth = update.DateOfBirth
	}
	if update.Address != "" {
		merged.Address = update.Address
	}
	if update.Specialization != "" {
		merged.Specialization = update.Specialization
	}
	return merged
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
