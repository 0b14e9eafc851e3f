package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// AppointmentStatus is the server-side state of a booking.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCancelled AppointmentStatus = "cancelled"
	AppointmentCompleted AppointmentStatus = "completed"
)

// Appointment is a booking between a patient and a doctor.
type Appointment struct {
	ID          string            `json:"id"`
	DoctorID    string            `json:"doctorId"`
	PatientID   string            `json:"patientId,omitempty"`
	DoctorName  string            `json:"doctorName,omitempty"`
	PatientName string            `json:"patientName,omitempty"`
	Date        string            `json:"date"` // YYYY-MM-DD
	TimeSlot    string            `json:"timeSlot"`
	Status      AppointmentStatus `json:"status"`
	Reason      string            `json:"reason,omitempty"`
	CreatedAt   time.Time         `json:"createdAt,omitempty"`
}

type appointmentListResponse struct {
	envelope
	Data []Appointment `json:"data"`
}

// PatientAppointments lists the authenticated patient's appointments.
func (c *Client) PatientAppointments(ctx context.Context) ([]Appointment, error) {
	var out appointmentListResponse
	if apiErr := c.do(ctx, http.MethodGet, "/patients/appointments", nil, nil, &out, true); apiErr != nil {
		return nil, apiErr
	}
	return out.Data, nil
}

// DoctorAppointments lists appointments booked with the authenticated
// doctor.
func (c *Client) DoctorAppointments(ctx context.Context) ([]Appointment, error) {
	var out appointmentListResponse
	if apiErr := c.do(ctx, http.MethodGet, "/appointments/doctor", nil, nil, &out, true); apiErr != nil {
		return nil, apiErr
	}
	return out.Data, nil
}

type appointmentResponse struct {
	envelope
	Data *Appointment `json:"data"`
}

// GetAppointment fetches one appointment the caller is a party to.
func (c *Client) GetAppointment(ctx context.Context, id string) (*Appointment, error) {
	var out appointmentResponse
	if apiErr := c.do(ctx, http.MethodGet, "/appointments/"+url.PathEscape(id), nil, nil, &out, true); apiErr != nil {
		return nil, apiErr
	}
	if out.Data == nil {
		return nil, shapeError(http.StatusOK, nil)
	}
	return out.Data, nil
}

// BookAppointmentRequest creates a new booking.
type BookAppointmentRequest struct {
	DoctorID string `json:"doctorId"`
	Date     string `json:"date"`
	TimeSlot string `json:"timeSlot"`
	Reason   string `json:"reason,omitempty"`
}

// BookAppointment books a slot with a doctor. Conflict detection is
// server-side; a taken slot comes back as a validation failure.
func (c *Client) BookAppointment(ctx context.Context, req BookAppointmentRequest) (*Appointment, error) {
	var out appointmentResponse
	if apiErr := c.do(ctx, http.MethodPost, "/appointments", nil, req, &out, true); apiErr != nil {
		return nil, apiErr
	}
	if out.Data == nil {
		return nil, shapeError(http.StatusOK, nil)
	}
	return out.Data, nil
}

// CancelAppointment cancels a booking.
func (c *Client) CancelAppointment(ctx context.Context, id string) error {
	var out registerResponse
	if apiErr := c.do(ctx, http.MethodDelete, "/appointments/"+url.PathEscape(id), nil, nil, &out, true); apiErr != nil {
		return apiErr
	}
	return nil
}

type updateStatusRequest struct {
	Status AppointmentStatus `json:"status"`
}

// UpdateAppointmentStatus moves a booking through its lifecycle (doctor
// role).
func (c *Client) UpdateAppointmentStatus(ctx context.Context, id string, status AppointmentStatus) (*Appointment, error) {
	var out appointmentResponse
	if apiErr := c.do(ctx, http.MethodPatch, "/appointments/"+url.PathEscape(id), nil, updateStatusRequest{Status: status}, &out, true); apiErr != nil {
		return nil, apiErr
	}
	if out.Data == nil {
		return nil, shapeError(http.StatusOK, nil)
	}
	return out.Data, nil
}

type slotsResponse struct {
	envelope
	Data []string `json:"data"`
}

// AvailableSlots returns the open time slots for a doctor on a date.
func (c *Client) AvailableSlots(ctx context.Context, doctorID, date string) ([]string, error) {
	query := url.Values{}
	query.Set("doctorId", doctorID)
	query.Set("date", date)

	var out slotsResponse
	if apiErr := c.do(ctx, http.MethodGet, "/appointments/available-slots", query, nil, &out, true); apiErr != nil {
		return nil, apiErr
	}
	return out.Data, nil
}
