package kvjson

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository"
	"github.com/careslot/careslot/internal/repository/kvstore"
	apperrors "github.com/careslot/careslot/pkg/errors"
)

type userRepository struct {
	store kvstore.Store
}

func NewUserRepository(store kvstore.Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) loadAll(ctx context.Context) ([]*model.User, error) {
	users, err := load[model.User](ctx, r.store, UsersKey, "users")
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Normalize()
	}
	return users, nil
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	users = append(users, user)
	return save(ctx, r.store, UsersKey, "users", users)
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, apperrors.NotFound("user", nil)
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for i, u := range users {
		if u.ID == user.ID {
			users[i] = user
			return save(ctx, r.store, UsersKey, "users", users)
		}
	}
	return apperrors.NotFound("user", nil)
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	users, err := r.loadAll(ctx)
	if err != nil {
		return err
	}
	for i, u := range users {
		if u.ID == id {
			users = append(users[:i], users[i+1:]...)
			return save(ctx, r.store, UsersKey, "users", users)
		}
	}
	return apperrors.NotFound("user", nil)
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	return r.loadAll(ctx)
}
