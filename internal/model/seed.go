package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTimeSlots is the slot template assigned to doctors created without
// one.
var DefaultTimeSlots = []string{
	"8:00 AM", "9:30 AM", "11:00 AM",
	"1:30 PM", "3:00 PM", "4:30 PM",
}

// DefaultDoctors returns the seed roster written to an empty store on first
// boot.
func DefaultDoctors(now time.Time) []*Doctor {
	return []*Doctor{
		{
			ID:               uuid.New(),
			Name:             "Dr. Sarah Johnson",
			Specialty:        "Ophthalmology",
			Bio:              "Specializes in cataract surgery and glaucoma treatment with 10 years of experience.",
			TimeSlots:        append([]string(nil), DefaultTimeSlots...),
			UnavailableDates: map[string]bool{},
			Bookings:         map[string]map[string]BookingEntry{},
			CreatedAt:        now,
			UpdatedAt:        now,
		},
		{
			ID:               uuid.New(),
			Name:             "Dr. Michael Lee",
			Specialty:        "Cardiology",
			Bio:              "Expert in heart failure management and cardiac imaging.",
			TimeSlots:        append([]string(nil), DefaultTimeSlots...),
			UnavailableDates: map[string]bool{},
			Bookings:         map[string]map[string]BookingEntry{},
			CreatedAt:        now,
			UpdatedAt:        now,
		},
	}
}
