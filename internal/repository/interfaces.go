package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/model"
)

// All repository interfaces in one file
type (
	// UserRepository handles the registered-users collection.
	UserRepository interface {
		Create(ctx context.Context, user *model.User) error
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		FindByUsername(ctx context.Context, username string) (*model.User, error)
		FindByEmail(ctx context.Context, email string) (*model.User, error)
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.User, error)
	}

	// DoctorRepository handles the doctor roster collection.
	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id uuid.UUID) (*model.Doctor, error)
		Update(ctx context.Context, doctor *model.Doctor) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context) ([]*model.Doctor, error)
		// Seed replaces the whole collection; used only on first boot.
		Seed(ctx context.Context, doctors []*model.Doctor) error
	}

	// AppointmentRepository handles the appointment collection.
	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
		Update(ctx context.Context, appointment *model.Appointment) error
		Delete(ctx context.Context, id uuid.UUID) error
		List(ctx context.Context, filter *model.AppointmentFilter) ([]*model.Appointment, error)
	}

	// NotificationRepository handles per-feed notification lists. A feed is
	// the admin feed or one user's feed (model.AdminFeed, model.UserFeed).
	NotificationRepository interface {
		Push(ctx context.Context, feed string, n *model.Notification) error
		List(ctx context.Context, feed string) ([]*model.Notification, error)
		MarkRead(ctx context.Context, feed string, id uuid.UUID) error
		Delete(ctx context.Context, feed string, id uuid.UUID) error
		Clear(ctx context.Context, feed string) error
	}
)
