package server

import (
	"github.com/pkg/errors"

	"github.com/hemahemapathi/health-management-client/api"
	"github.com/hemahemapathi/health-management-client/users"
)

type seedAccount struct {
	name           string
	email          string
	password       string
	role           users.RoleType
	specialization string
	experience     int
	fee            float64
	rating         float64
}

var seedAccounts = []seedAccount{
	{name: "Admin User", email: "admin@demo.local", password: "admin1234", role: users.RoleAdmin},
	{name: "John Smith", email: "patient@demo.local", password: "patient1234", role: users.RolePatient},
	{name: "Dr. Sarah Johnson", email: "sarah@demo.local", password: "doctor1234", role: users.RoleDoctor,
		specialization: "cardiology", experience: 12, fee: 150, rating: 4.8},
	{name: "Dr. Michael Chen", email: "michael@demo.local", password: "doctor1234", role: users.RoleDoctor,
		specialization: "dermatology", experience: 8, fee: 120, rating: 4.6},
	{name: "Dr. Emily Davis", email: "emily@demo.local", password: "doctor1234", role: users.RoleDoctor,
		specialization: "pediatrics", experience: 15, fee: 100, rating: 4.9},
}

var seedAvailability = []api.AvailabilitySlot{
	{Day: "Monday", StartTime: "09:00", EndTime: "17:00"},
	{Day: "Wednesday", StartTime: "09:00", EndTime: "17:00"},
	{Day: "Friday", StartTime: "09:00", EndTime: "13:00"},
}

// Seed loads demo accounts and a doctor directory so the stub is usable
// straight after startup. Credentials are printed by the server command.
func Seed(stores Stores) error {
	for _, account := range seedAccounts {
		hash, err := users.HashPassword(account.password)
		if err != nil {
			return errors.Wrap(err, "[server.Seed] HashPassword")
		}

		user := &users.User{
			Name:           account.name,
			Email:          account.email,
			Role:           account.role,
			Specialization: account.specialization,
			PasswordHash:   hash,
		}
		if err := stores.Users.Upsert(user); err != nil {
			return errors.Wrap(err, "[server.Seed] Upsert")
		}

		if account.role == users.RoleDoctor {
			stores.Doctors.Upsert(&api.Doctor{
				UserID:         user.ID,
				Name:           account.name,
				Specialization: account.specialization,
				Experience:     account.experience,
				Fee:            account.fee,
				Rating:         account.rating,
				Availability:   seedAvailability,
			})
		}
	}
	return nil
}
