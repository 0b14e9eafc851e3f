package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

// Doctor is the public listing record for a doctor.
type Doctor struct {
	ID             string             `json:"id"`
	UserID         string             `json:"userId,omitempty"`
	Name           string             `json:"name"`
	Specialization string             `json:"specialization,omitempty"`
	Experience     int                `json:"experience,omitempty"`
	Fee            float64            `json:"fee,omitempty"`
	Rating         float64            `json:"rating,omitempty"`
	Availability   []AvailabilitySlot `json:"availability,omitempty"`
}

// AvailabilitySlot is one recurring weekly consultation window.
type AvailabilitySlot struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type doctorListResponse struct {
	envelope
	Data  []Doctor `json:"data"`
	Count int      `json:"count,omitempty"`
}

// ListDoctors returns a page of doctors, optionally filtered by
// specialization.
func (c *Client) ListDoctors(ctx context.Context, page, limit int, specialization string) ([]Doctor, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))
	if specialization != "" {
		query.Set("specialization", specialization)
	}

	var out doctorListResponse
	if apiErr := c.do(ctx, http.MethodGet, "/doctors", query, nil, &out, false); apiErr != nil {
		return nil, apiErr
	}
	return out.Data, nil
}

type doctorResponse struct {
	envelope
	Data *Doctor `json:"data"`
}

// GetDoctor returns a single doctor's profile.
func (c *Client) GetDoctor(ctx context.Context, id string) (*Doctor, error) {
	var out doctorResponse
	if apiErr := c.do(ctx, http.MethodGet, "/doctors/"+url.PathEscape(id), nil, nil, &out, false); apiErr != nil {
		return nil, apiErr
	}
	if out.Data == nil {
		return nil, shapeError(http.StatusOK, nil)
	}
	return out.Data, nil
}

type availabilityResponse struct {
	envelope
	Data []AvailabilitySlot `json:"data"`
}

// DoctorAvailability returns a doctor's weekly consultation windows.
func (c *Client) DoctorAvailability(ctx context.Context, id string) ([]AvailabilitySlot, error) {
	var out availabilityResponse
	if apiErr := c.do(ctx, http.MethodGet, "/doctors/"+url.PathEscape(id)+"/availability", nil, nil, &out, false); apiErr != nil {
		return nil, apiErr
	}
	return out.Data, nil
}

type updateAvailabilityRequest struct {
	Availability []AvailabilitySlot `json:"availability"`
}

// UpdateDoctorAvailability replaces a doctor's consultation windows. Doctor
// role only; the server enforces ownership.
func (c *Client) UpdateDoctorAvailability(ctx context.Context, id string, slots []AvailabilitySlot) error {
	var out registerResponse
	if apiErr := c.do(ctx, http.MethodPut, "/doctors/"+url.PathEscape(id)+"/availability", nil, updateAvailabilityRequest{Availability: slots}, &out, true); apiErr != nil {
		return apiErr
	}
	return nil
}

type specializationsResponse struct {
	envelope
	Data []string `json:"data"`
}

// Specializations lists the known doctor specializations.
func (c *Client) Specializations(ctx context.Context) ([]string, error) {
	var out specializationsResponse
	if apiErr := c.do(ctx, http.MethodGet, "/doctors/specializations", nil, nil, &out, false); apiErr != nil {
		return nil, apiErr
	}
	return out.Data, nil
}
