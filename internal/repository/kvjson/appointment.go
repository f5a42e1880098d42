package kvjson

import (
	"context"

	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository"
	"github.com/careslot/careslot/internal/repository/kvstore"
	apperrors "github.com/careslot/careslot/pkg/errors"
)

type appointmentRepository struct {
	store kvstore.Store
}

func NewAppointmentRepository(store kvstore.Store) repository.AppointmentRepository {
	return &appointmentRepository{store: store}
}

func (r *appointmentRepository) loadAll(ctx context.Context) ([]*model.Appointment, error) {
	appointments, err := load[model.Appointment](ctx, r.store, AppointmentsKey, "appointments")
	if err != nil {
		return nil, err
	}
	for _, a := range appointments {
		a.Normalize()
	}
	return appointments, nil
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	appointments, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	appointments = append(appointments, appointment)
	return save(ctx, r.store, AppointmentsKey, "appointments", appointments)
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	appointments, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, apperrors.NotFound("appointment", nil)
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *model.Appointment) error {
	appointments, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for i, a := range appointments {
		if a.ID == appointment.ID {
			appointments[i] = appointment
			return save(ctx, r.store, AppointmentsKey, "appointments", appointments)
		}
	}
	return apperrors.NotFound("appointment", nil)
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	appointments, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for i, a := range appointments {
		if a.ID == id {
			appointments = append(appointments[:i], appointments[i+1:]...)
			return save(ctx, r.store, AppointmentsKey, "appointments", appointments)
		}
	}
	return apperrors.NotFound("appointment", nil)
}

func (r *appointmentRepository) List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error) {
	appointments, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return appointments, nil
	}

	matched := make([]*model.Appointment, 0, len(appointments))
	for _, a := range appointments {
		if filter.Matches(a) {
			matched = append(matched, a)
		}
	}
	return matched, nil
}
