package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// Medication is one prescribed item.
type Medication struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration,omitempty"`
}

// Prescription is issued by a doctor against an appointment.
type Prescription struct {
	ID            string       `json:"id"`
	AppointmentID string       `json:"appointmentId,omitempty"`
	DoctorID      string       `json:"doctorId"`
	PatientID     string       `json:"patientId"`
	DoctorName    string       `json:"doctorName,omitempty"`
	PatientName   string       `json:"patientName,omitempty"`
	Medications   []Medication `json:"medications"`
	Notes         string       `json:"notes,omitempty"`
	CreatedAt     time.Time    `json:"createdAt,omitempty"`
}

type prescriptionListResponse struct {
	envelope
	Data []Prescription `json:"data"`
}

// Prescriptions lists the caller's prescriptions: issued-to for patients,
// issued-by for doctors.
func (c *Client) Prescriptions(ctx context.Context) ([]Prescription, error) {
	var out prescriptionListResponse
	if apiErr := c.do(ctx, http.MethodGet, "/prescriptions", nil, nil, &out, true); apiErr != nil {
		return nil, apiErr
	}
	return out.Data, nil
}

type prescriptionResponse struct {
	envelope
	Data *Prescription `json:"data"`
}

// GetPrescription fetches one prescription the caller is a party to.
func (c *Client) GetPrescription(ctx context.Context, id string) (*Prescription, error) {
	var out prescriptionResponse
	if apiErr := c.do(ctx, http.MethodGet, "/prescriptions/"+url.PathEscape(id), nil, nil, &out, true); apiErr != nil {
		return nil, apiErr
	}
	if out.Data == nil {
		return nil, shapeError(http.StatusOK, nil)
	}
	return out.Data, nil
}

// CreatePrescriptionRequest is the doctor-side creation payload.
type CreatePrescriptionRequest struct {
	PatientID     string       `json:"patientId"`
	AppointmentID string       `json:"appointmentId,omitempty"`
	Medications   []Medication `json:"medications"`
	Notes         string       `json:"notes,omitempty"`
}

// CreatePrescription issues a new prescription (doctor role).
func (c *Client) CreatePrescription(ctx context.Context, req CreatePrescriptionRequest) (*Prescription, error) {
	var out prescriptionResponse
	if apiErr := c.do(ctx, http.MethodPost, "/prescriptions", nil, req, &out, true); apiErr != nil {
		return nil, apiErr
	}
	if out.Data == nil {
		return nil, shapeError(http.StatusOK, nil)
	}
	return out.Data, nil
}

// UpdatePrescription replaces the medications and notes of an existing
// prescription (doctor role).
func (c *Client) UpdatePrescription(ctx context.Context, id string, req CreatePrescriptionRequest) (*Prescription, error) {
	var out prescriptionResponse
	if apiErr := c.do(ctx, http.MethodPut, "/prescriptions/"+url.PathEscape(id), nil, req, &out, true); apiErr != nil {
		return nil, apiErr
	}
	if out.Data == nil {
		return nil, shapeError(http.StatusOK, nil)
	}
	return out.Data, nil
}

// DeletePrescription removes a prescription (doctor role).
func (c *Client) DeletePrescription(ctx context.Context, id string) error {
	var out registerResponse
	if apiErr := c.do(ctx, http.MethodDelete, "/prescriptions/"+url.PathEscape(id), nil, nil, &out, true); apiErr != nil {
		return apiErr
	}
	return nil
}
