package model

import (
	"time"

	"github.com/google/uuid"
)

// BookingEntry is the patient info mirrored onto a doctor record when an
// appointment is approved.
type BookingEntry struct {
	PatientName  string `json:"patient_name"`
	PatientEmail string `json:"patient_email,omitempty"`
	PatientPhone string `json:"patient_phone,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// Doctor holds the slot template, blocked dates and the mirrored bookings
// map. TimeSlots is a template of offerable time-of-day labels independent
// of any date; UnavailableDates blocks a whole date regardless of slot;
// Bookings[date][slot] records who occupies a slot once an appointment is
// confirmed. Bookings is a denormalized mirror written by the lifecycle
// service on approval; the appointment collection is the source of truth.
type Doctor struct {
	ID               uuid.UUID                          `json:"id"`
	Name             string                             `json:"name"`
	Specialty        string                             `json:"specialty"`
	Bio              string                             `json:"bio,omitempty"`
	Image            string                             `json:"image,omitempty"`
	TimeSlots        []string                           `json:"time_slots"`
	UnavailableDates map[string]bool                    `json:"unavailable_dates"`
	Bookings         map[string]map[string]BookingEntry `json:"bookings"`
	CreatedAt        time.Time                          `json:"created_at"`
	UpdatedAt        time.Time                          `json:"updated_at"`
}

// Normalize fills documented defaults for fields absent in stored data.
// Stored records carry no schema, so a missing field is a default, never an
// error.
func (d *Doctor) Normalize() {
	if d.TimeSlots == nil {
		d.TimeSlots = []string{}
	}
	if d.UnavailableDates == nil {
		d.UnavailableDates = map[string]bool{}
	}
	if d.Bookings == nil {
		d.Bookings = map[string]map[string]BookingEntry{}
	}
}

// OffersSlot reports whether the label is part of the doctor's template.
func (d *Doctor) OffersSlot(slot string) bool {
	for _, s := range d.TimeSlots {
		if s == slot {
			return true
		}
	}
	return false
}

// CreateDoctorRequest carries the fields for a new doctor profile.
type CreateDoctorRequest struct {
	Name      string   `json:"name" validate:"required"`
	Specialty string   `json:"specialty" validate:"required"`
	Bio       string   `json:"bio"`
	Image     string   `json:"image"`
	TimeSlots []string `json:"time_slots"`
}

// UpdateDoctorRequest carries profile edits; nil fields are left untouched.
type UpdateDoctorRequest struct {
	Name      *string `json:"name"`
	Specialty *string `json:"specialty"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
}
