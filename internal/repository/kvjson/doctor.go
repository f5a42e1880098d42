package kvjson

import (
	"context"

	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository"
	"github.com/careslot/careslot/internal/repository/kvstore"
	apperrors "github.com/careslot/careslot/pkg/errors"
)

type doctorRepository struct {
	store kvstore.Store
}

func NewDoctorRepository(store kvstore.Store) repository.DoctorRepository {
	return &doctorRepository{store: store}
}

func (r *doctorRepository) loadAll(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := load[model.Doctor](ctx, r.store, DoctorsKey, "doctors")
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		d.Normalize()
	}
	return doctors, nil
}

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	doctors, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	doctors = append(doctors, doctor)
	return save(ctx, r.store, DoctorsKey, "doctors", doctors)
}

func (r *doctorRepository) Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error) {
	doctors, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, apperrors.NotFound("doctor", nil)
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	doctors, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for i, d := range doctors {
		if d.ID == doctor.ID {
			doctors[i] = doctor
			return save(ctx, r.store, DoctorsKey, "doctors", doctors)
		}
	}
	return apperrors.NotFound("doctor", nil)
}

func (r *doctorRepository) Delete(ctx context.Context, id uuid.UUID) error {
	doctors, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for i, d := range doctors {
		if d.ID == id {
			doctors = append(doctors[:i], doctors[i+1:]...)
			return save(ctx, r.store, DoctorsKey, "doctors", doctors)
		}
	}
	return apperrors.NotFound("doctor", nil)
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	return r.loadAll(ctx)
}

func (r *doctorRepository) Seed(ctx context.Context, doctors []*model.Doctor) error {
	return save(ctx, r.store, DoctorsKey, "doctors", doctors)
}
