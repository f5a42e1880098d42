package model

import (
	"time"

	"github.com/google/uuid"
)

// User roles
const (
	RolePatient = "patient"
	RoleAdmin   = "admin"
)

// User represents a registered account. Credentials are stored as a bcrypt
// hash only; the observed source kept plaintext passwords, which this
// implementation deliberately does not reproduce.
type User struct {
	ID               uuid.UUID `json:"id"`
	Username         string    `json:"username"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"password_hash"`
	ContactNumber    string    `json:"contact_number,omitempty"`
	Address          string    `json:"address,omitempty"`
	Birthday         string    `json:"birthday,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
	Role             string    `json:"role"`
}

// Normalize fills documented defaults for fields absent in stored data.
func (u *User) Normalize() {
	if u.Role == "" {
		u.Role = RolePatient
	}
}

// RegisterRequest carries the fields collected by the registration form.
type RegisterRequest struct {
	Username      string `json:"username" validate:"required,min=3"`
	Name          string `json:"name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	Birthday      string `json:"birthday"`
	Role          string `json:"role" validate:"omitempty,oneof=patient admin"`
}

// UpdateProfileRequest carries profile edits; nil fields are left untouched.
type UpdateProfileRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email" validate:"omitempty,email"`
	ContactNumber *string `json:"contact_number"`
	Address       *string `json:"address"`
	Birthday      *string `json:"birthday"`
}
