// Package booking implements the booking transaction: validate a patient's
// (doctor, date, time) request against the availability and duplicate
// rules, append a pending appointment, and notify the admin feed.
package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
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
	users        repository.UserRepository
	resolver     *availability.Service
	notifier     *notification.Service
	bus          *pubsub.Bus
	metrics      *metrics.Metrics
	logger       *logger.Logger
	validate     *validator.Validate
	now          func() time.Time
}

func NewService(
	appointments repository.AppointmentRepository,
	doctors repository.DoctorRepository,
	users repository.UserRepository,
	resolver *availability.Service,
	notifier *notification.Service,
	bus *pubsub.Bus,
	m *metrics.Metrics,
	log *logger.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		doctors:      doctors,
		users:        users,
		resolver:     resolver,
		notifier:     notifier,
		bus:          bus,
		metrics:      m,
		logger:       log,
		validate:     validator.New(),
		now:          time.Now,
	}
}

// Book attempts to create a new appointment. Failure modes are
// distinguishable through the error taxonomy: validation (missing or
// unbookable date/time), conflict (duplicate booking, occupied slot),
// not-found (unknown user or doctor), storage.
func (s *Service) Book(ctx context.Context, req *model.BookingRequest) (*model.Appointment, error) {
	if err := s.validate.Struct(req); err != nil {
		s.reject("validation")
		return nil, apperrors.Validation("invalid booking request", err)
	}

	user, err := s.users.Get(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	doctor, err := s.doctors.Get(ctx, req.DoctorID)
	if err != nil {
		return nil, err
	}

	if !doctor.OffersSlot(req.Time) {
		s.reject("validation")
		return nil, apperrors.Validation(fmt.Sprintf("time %q is not offered by this doctor", req.Time), nil)
	}

	open, err := s.resolver.DateOpen(doctor, req.Date)
	if err != nil {
		s.reject("validation")
		return nil, err
	}
	if !open {
		s.reject("unavailable")
		return nil, apperrors.Validation(fmt.Sprintf("date %s is not bookable", req.Date), nil)
	}

	slots, err := s.resolver.SlotsFor(doctor, req.Date)
	if err != nil {
		return nil, err
	}
	if !contains(slots, req.Time) {
		s.reject("occupied")
		return nil, apperrors.Conflict(fmt.Sprintf("slot %s on %s is already booked", req.Time, req.Date), nil)
	}

	if err := s.checkDuplicate(ctx, req); err != nil {
		return nil, err
	}

	now := s.now()
	apt := &model.Appointment{
		ID:           uuid.New(),
		UserID:       user.ID,
		DoctorID:     doctor.ID,
		DoctorName:   doctor.Name,
		Specialty:    doctor.Specialty,
		Date:         req.Date,
		Time:         req.Time,
		Status:       model.AppointmentStatusPending,
		PatientName:  user.Name,
		PatientEmail: user.Email,
		PatientPhone: user.ContactNumber,
		Notes:        req.Notes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.appointments.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	// The appointment write and the admin notification are one logical
	// unit: if the notification cannot be written, take the appointment
	// back out rather than leave a silent pending request.
	message := fmt.Sprintf("%s requested an appointment with %s on %s at %s",
		user.Name, doctor.Name, req.Date, req.Time)
	if err := s.notifier.NotifyAdmin(ctx, "New appointment request", message); err != nil {
		if rbErr := s.appointments.Delete(ctx, apt.ID); rbErr != nil {
			s.logger.Error(rbErr, "failed to roll back appointment after notification failure",
				"appointment_id", apt.ID.String())
		}
		return nil, apperrors.Storage("failed to enqueue admin notification", err)
	}

	if s.metrics != nil {
		s.metrics.BookingsCreated.Inc()
	}
	s.logger.Info("appointment booked",
		"appointment_id", apt.ID.String(),
		"doctor", doctor.Name,
		"date", req.Date,
		"time", req.Time)
	s.bus.Publish()

	return apt, nil
}

// checkDuplicate rejects a second non-canceled appointment for the same
// (user, doctor, date) regardless of time.
func (s *Service) checkDuplicate(ctx context.Context, req *model.BookingRequest) error {
	existing, err := s.appointments.List(ctx, &model.AppointmentFilter{
		UserID:   req.UserID,
		DoctorID: req.DoctorID,
		Date:     req.Date,
	})
	if err != nil {
		return err
	}
	for _, a := range existing {
		if a.Status != model.AppointmentStatusCanceled {
			s.reject("duplicate")
			return apperrors.Conflict("duplicate booking: an appointment with this doctor already exists for that date", nil)
		}
	}
	return nil
}

func (s *Service) reject(reason string) {
	if s.metrics != nil {
		s.metrics.BookingsRejected.WithLabelValues(reason).Inc()
	}
}

func contains(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
