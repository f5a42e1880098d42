// Package appointment implements the status lifecycle:
//
//	pending --approve--> confirmed
//	pending --decline--> declined
//	{pending, confirmed, declined} --cancel--> canceled (terminal)
//
// Reschedule is a self-loop on any non-canceled status that changes
// date/time without changing status. Approve additionally mirrors the
// booking into the doctor's bookings map.
package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository"
	"github.com/careslot/careslot/internal/service/availability"
	"github.com/careslot/careslot/internal/service/notification"
	apperrors "github.com/careslot/careslot/pkg/errors"
	"github.com/careslot/careslot/pkg/logger"
	"github.com/careslot/careslot/pkg/metrics"
	"github.com/careslot/careslot/pkg/pubsub"
)

type Service struct {
	appointments repository.AppointmentRepository
	doctors      repository.DoctorRepository
	resolver     *availability.Service
	notifier     *notification.Service
	bus          *pubsub.Bus
	metrics      *metrics.Metrics
	logger       *logger.Logger
	now          func() time.Time
}

func NewService(
	appointments repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	resolver *availability.Service,
	notifier *notification.Service,
	bus *pubsub.Bus,
	m *metrics.Metrics,
	log *logger.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		doctors:      doctors,
		resolver:     resolver,
		notifier:     notifier,
		bus:          bus,
		metrics:      m,
		logger:       log,
		now:          time.Now,
	}
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.appointments.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error) {
	return s.appointments.List(ctx, filter)
}

// Approve confirms a pending appointment and mirrors the booking into the
// doctor's bookings map, keyed by DoctorID. The mirror write follows the
// status write; a doctor-collection failure leaves a confirmed appointment
// without a mirror entry, which the next approval of that doctor heals.
func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status != model.AppointmentStatusPending {
		return nil, apperrors.Conflict(
			fmt.Sprintf("cannot approve appointment in status %q", apt.Status), nil)
	}

	doctor, err := s.doctors.Get(ctx, apt.DoctorID)
	if err != nil {
		return nil, err
	}

	apt.Status = model.AppointmentStatusConfirmed
	apt.UpdatedAt = s.now()
	if err := s.appointments.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to confirm appointment: %w", err)
	}

	if doctor.Bookings[apt.Date] == nil {
		doctor.Bookings[apt.Date] = map[string]model.BookingEntry{}
	}
	doctor.Bookings[apt.Date][apt.Time] = model.BookingEntry{
		PatientName:  apt.PatientName,
		PatientEmail: apt.PatientEmail,
		PatientPhone: apt.PatientPhone,
		Notes:        apt.Notes,
	}
	doctor.UpdatedAt = s.now()
	if err := s.doctors.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to mirror booking onto doctor: %w", err)
	}

	s.notifyPatient(ctx, apt, "Appointment confirmed",
		fmt.Sprintf("Your appointment with %s on %s at %s has been confirmed.",
			apt.DoctorName, apt.Date, apt.Time))

	if s.metrics != nil {
		s.metrics.Approvals.Inc()
	}
	s.logger.Info("appointment approved", "appointment_id", id.String())
	s.bus.Publish()
	return apt, nil
}

// Decline rejects a pending appointment. The slot stays free; nothing is
// mirrored.
func (s *Service) Decline(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status != model.AppointmentStatusPending {
		return nil, apperrors.Conflict(
			fmt.Sprintf("cannot decline appointment in status %q", apt.Status), nil)
	}

	apt.Status = model.AppointmentStatusDeclined
	apt.UpdatedAt = s.now()
	if err := s.appointments.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to decline appointment: %w", err)
	}

	s.notifyPatient(ctx, apt, "Appointment declined",
		fmt.Sprintf("Your appointment request with %s on %s at %s was declined.",
			apt.DoctorName, apt.Date, apt.Time))

	if s.metrics != nil {
		s.metrics.Declines.Inc()
	}
	s.logger.Info("appointment declined", "appointment_id", id.String())
	s.bus.Publish()
	return apt, nil
}

// Cancel moves any non-canceled appointment to canceled; canceled is
// terminal. A mirrored bookings entry left behind by an earlier approval is
// NOT retracted here, matching the observed system; the drift window is
// documented in DESIGN.md.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status.Terminal() {
		return nil, apperrors.Conflict("appointment is already canceled", nil)
	}

	apt.Status = model.AppointmentStatusCanceled
	apt.UpdatedAt = s.now()
	if err := s.appointments.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to cancel appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.Cancellations.Inc()
	}
	s.logger.Info("appointment canceled", "appointment_id", id.String())
	s.bus.Publish()
	return apt, nil
}

// Reschedule overwrites date/time in place after re-running availability
// validation against the new date. The id and status are unchanged; whether
// a confirmed appointment should re-enter the approval queue is an open
// product decision recorded in DESIGN.md.
func (s *Service) Reschedule(ctx context.Context, id uuid.UUID, newDate, newTime string) (*model.Appointment, error) {
	if newDate == "" || newTime == "" {
		return nil, apperrors.Validation("date and time are required", nil)
	}

	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status.Terminal() {
		return nil, apperrors.Conflict("cannot reschedule a canceled appointment", nil)
	}

	doctor, err := s.doctors.Get(ctx, apt.DoctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.OffersSlot(newTime) {
		return nil, apperrors.Validation(fmt.Sprintf("time %q is not offered by this doctor", newTime), nil)
	}

	open, err := s.resolver.DateOpen(doctor, newDate)
	if err != nil {
		return nil, err
	}
	if !open {
		return nil, apperrors.Validation(fmt.Sprintf("date %s is not bookable", newDate), nil)
	}
	ok, err := s.resolver.Bookable(doctor, newDate, newTime)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperrors.Conflict(fmt.Sprintf("slot %s on %s is already booked", newTime, newDate), nil)
	}

	apt.Date = newDate
	apt.Time = newTime
	apt.UpdatedAt = s.now()
	if err := s.appointments.Update(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to reschedule appointment: %w", err)
	}

	if s.metrics != nil {
		s.metrics.Reschedules.Inc()
	}
	s.logger.Info("appointment rescheduled",
		"appointment_id", id.String(), "date", newDate, "time", newTime)
	s.bus.Publish()
	return apt, nil
}

// Delete removes the record outright; the admin screen offers this as a
// destructive action regardless of status.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.appointments.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("appointment deleted", "appointment_id", id.String())
	s.bus.Publish()
	return nil
}

// Lifecycle notifications are best effort: a feed write failure is logged
// and the transition stands.
func (s *Service) notifyPatient(ctx context.Context, apt *model.Appointment, title, message string) {
	if err := s.notifier.NotifyUser(ctx, apt.UserID, title, message); err != nil {
		s.logger.Error(err, "failed to notify patient",
			"appointment_id", apt.ID.String(), "user_id", apt.UserID.String())
	}
}
