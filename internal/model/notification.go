package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification is one entry in a feed, created as a side effect of booking
// and lifecycle events and consumed (read flag, delete) by the owning
// screen.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	Timestamp time.Time `json:"timestamp"`
}

// AdminFeed is the storage key of the admin-facing notification list.
const AdminFeed = "adminNotifications"

// UserFeed returns the storage key of a patient's notification list.
func UserFeed(userID uuid.UUID) string {
	return "notifications:" + userID.String()
}
