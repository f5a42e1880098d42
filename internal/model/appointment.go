package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusDeclined  AppointmentStatus = "declined"
	AppointmentStatusCanceled  AppointmentStatus = "canceled"
)

// Terminal reports whether no further transition is allowed from the status.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCanceled
}

// Appointment is one booking attempt. DoctorName and Specialty are
// denormalized copies taken from the doctor record at booking time; the
// authoritative join is DoctorID.
type Appointment struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"user_id"`
	DoctorID     uuid.UUID         `json:"doctor_id"`
	DoctorName   string            `json:"doctor_name"`
	Specialty    string            `json:"specialty"`
	Date         string            `json:"date"`
	Time         string            `json:"time"`
	Status       AppointmentStatus `json:"status"`
	PatientName  string            `json:"patient_name"`
	PatientEmail string            `json:"patient_email,omitempty"`
	PatientPhone string            `json:"patient_phone,omitempty"`
	Notes        string            `json:"notes,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// Normalize fills documented defaults for fields absent in stored data.
func (a *Appointment) Normalize() {
	if a.Status == "" {
		a.Status = AppointmentStatusPending
	}
}

// BookingRequest carries a patient's booking attempt.
type BookingRequest struct {
	UserID   uuid.UUID `json:"user_id" validate:"required"`
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required"`
	Time     string    `json:"time" validate:"required"`
	Notes    string    `json:"notes" validate:"max=1000"`
}

// AppointmentFilter narrows listing results; zero values match everything.
type AppointmentFilter struct {
	UserID   uuid.UUID
	DoctorID uuid.UUID
	Status   AppointmentStatus
	Date     string
}

// Matches reports whether the appointment satisfies every set filter field.
func (f *AppointmentFilter) Matches(a *Appointment) bool {
	if f == nil {
		return true
	}
	if f.UserID != uuid.Nil && a.UserID != f.UserID {
		return false
	}
	if f.DoctorID != uuid.Nil && a.DoctorID != f.DoctorID {
		return false
	}
	if f.Status != "" && a.Status != f.Status {
		return false
	}
	if f.Date != "" && a.Date != f.Date {
		return false
	}
	return true
}
