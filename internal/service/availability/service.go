// Package availability computes the bookable slots for a doctor on a date.
// Three sources overlap: the doctor's slot template, the unavailable-date
// set, and the mirrored bookings map; the resolver is the single place
// where they are combined.
package availability

import (
	"time"

	"github.com/careslot/careslot/internal/model"
	apperrors "github.com/careslot/careslot/pkg/errors"
)

type Service struct {
	now func() time.Time
}

// NewService creates a resolver. now supplies the device-local clock used
// to reject past dates; pass nil for time.Now.
func NewService(now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{now: now}
}

// SlotsFor returns the slots bookable on date, in template order. The
// result is empty when the date is in the past, the whole date is marked
// unavailable, or every template slot is occupied. A date with no bookings
// entry is fully available; there are no implicit closed days.
func (s *Service) SlotsFor(doctor *model.Doctor, date string) ([]string, error) {
	day, err := time.ParseInLocation(model.DateLayout, date, time.Local)
	if err != nil {
		return nil, apperrors.Validation("invalid date, expected YYYY-MM-DD", err)
	}

	if day.Before(startOfDay(s.now())) {
		return []string{}, nil
	}
	if doctor.UnavailableDates[date] {
		return []string{}, nil
	}

	taken := doctor.Bookings[date]
	slots := make([]string, 0, len(doctor.TimeSlots))
	for _, slot := range doctor.TimeSlots {
		if _, occupied := taken[slot]; occupied {
			continue
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// DateOpen reports whether the date itself accepts bookings, ignoring slot
// occupancy: false for past dates and dates marked unavailable.
func (s *Service) DateOpen(doctor *model.Doctor, date string) (bool, error) {
	day, err := time.ParseInLocation(model.DateLayout, date, time.Local)
	if err != nil {
		return false, apperrors.Validation("invalid date, expected YYYY-MM-DD", err)
	}
	if day.Before(startOfDay(s.now())) {
		return false, nil
	}
	return !doctor.UnavailableDates[date], nil
}

// Bookable reports whether the specific (date, slot) pair can be booked.
func (s *Service) Bookable(doctor *model.Doctor, date, slot string) (bool, error) {
	slots, err := s.SlotsFor(doctor, date)
	if err != nil {
		return false, err
	}
	for _, offered := range slots {
		if offered == slot {
			return true, nil
		}
	}
	return false, nil
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
