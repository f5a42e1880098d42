package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository"
	"github.com/careslot/careslot/internal/service/availability"
	apperrors "github.com/careslot/careslot/pkg/errors"
	"github.com/careslot/careslot/pkg/logger"
	"github.com/careslot/careslot/pkg/pubsub"
)

// Service manages the doctor roster: profiles, the slot template, and the
// unavailable-date set.
type Service struct {
	repo     repository.DoctorRepository
	resolver *availability.Service
	bus      *pubsub.Bus
	logger   *logger.Logger
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo repository.DoctorRepository, resolver *availability.Service, bus *pubsub.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		resolver: resolver,
		bus:      bus,
		logger:   log,
		validate: validator.New(),
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid doctor data", err)
	}

	slots := req.TimeSlots
	if len(slots) == 0 {
		slots = append([]string(nil), model.DefaultTimeSlots...)
	}

	now := s.now()
	doctor := &model.Doctor{
		ID:               uuid.New(),
		Name:             req.Name,
		Specialty:        req.Specialty,
		Bio:              req.Bio,
		Image:            req.Image,
		TimeSlots:        slots,
		UnavailableDates: map[string]bool{},
		Bookings:         map[string]map[string]model.BookingEntry{},
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to create doctor: %w", err)
	}

	s.logger.Info("doctor created", "doctor_id", doctor.ID.String(), "name", doctor.Name)
	s.bus.Publish()
	return doctor, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*model.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateDoctorRequest) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		doctor.Name = *req.Name
	}
	if req.Specialty != nil {
		doctor.Specialty = *req.Specialty
	}
	if req.Bio != nil {
		doctor.Bio = *req.Bio
	}
	if req.Image != nil {
		doctor.Image = *req.Image
	}
	doctor.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	s.bus.Publish()
	return doctor, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("doctor deleted", "doctor_id", id.String())
	s.bus.Publish()
	return nil
}

// AddTimeSlot appends a slot label to the doctor's template.
func (s *Service) AddTimeSlot(ctx context.Context, id uuid.UUID, slot string) (*model.Doctor, error) {
	if slot == "" {
		return nil, apperrors.Validation("time slot is required", nil)
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if doctor.OffersSlot(slot) {
		return nil, apperrors.Conflict(fmt.Sprintf("time slot %q already exists", slot), nil)
	}

	doctor.TimeSlots = append(doctor.TimeSlots, slot)
	doctor.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to add time slot: %w", err)
	}
	s.bus.Publish()
	return doctor, nil
}

// RemoveTimeSlot drops a slot label from the template. Appointments already
// booked on that slot are not revalidated; they keep their recorded time.
func (s *Service) RemoveTimeSlot(ctx context.Context, id uuid.UUID, slot string) (*model.Doctor, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	for i, t := range doctor.TimeSlots {
		if t == slot {
			doctor.TimeSlots = append(doctor.TimeSlots[:i], doctor.TimeSlots[i+1:]...)
			doctor.UpdatedAt = s.now()
			if err := s.repo.Update(ctx, doctor); err != nil {
				return nil, fmt.Errorf("failed to remove time slot: %w", err)
			}
			s.bus.Publish()
			return doctor, nil
		}
	}
	return nil, apperrors.NotFound("time slot", nil)
}

// ToggleDateAvailability flips a date in and out of the unavailable set.
// Only today and future dates may be toggled.
func (s *Service) ToggleDateAvailability(ctx context.Context, id uuid.UUID, date string) (*model.Doctor, error) {
	day, err := time.ParseInLocation(model.DateLayout, date, time.Local)
	if err != nil {
		return nil, apperrors.Validation("invalid date, expected YYYY-MM-DD", err)
	}
	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, apperrors.Validation("cannot change availability of a past date", nil)
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if doctor.UnavailableDates[date] {
		delete(doctor.UnavailableDates, date)
	} else {
		doctor.UnavailableDates[date] = true
	}
	doctor.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, doctor); err != nil {
		return nil, fmt.Errorf("failed to update availability: %w", err)
	}
	s.logger.Info("doctor availability toggled", "doctor_id", id.String(), "date", date)
	s.bus.Publish()
	return doctor, nil
}

// AvailableSlots resolves the bookable slots for the doctor on the date.
func (s *Service) AvailableSlots(ctx context.Context, id uuid.UUID, date string) ([]string, error) {
	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.resolver.SlotsFor(doctor, date)
}
