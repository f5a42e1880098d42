package user

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository"
	"github.com/careslot/careslot/pkg/auth"
	apperrors "github.com/careslot/careslot/pkg/errors"
	"github.com/careslot/careslot/pkg/logger"
	"github.com/careslot/careslot/pkg/security"
)

// Login throttling: a username gets a small burst, then one attempt every
// few seconds.
const (
	loginAttemptInterval = 5 * time.Second
	loginAttemptBurst    = 5
)

// Service handles registration, login and profile maintenance. Passwords
// are stored as bcrypt hashes only; the observed source kept plaintext,
// a defect this implementation deliberately does not carry over.
type Service struct {
	repo     repository.UserRepository
	hasher   security.PasswordHasher
	tokens   *auth.TokenManager
	logger   *logger.Logger
	validate *validator.Validate
	now      func() time.Time

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewService(repo repository.UserRepository, hasher security.PasswordHasher, tokens *auth.TokenManager, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		logger:   log,
		validate: validator.New(),
		now:      time.Now,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Register creates a new account. Username and email must be unique,
// case-insensitively.
func (s *Service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid registration data", err)
	}

	if _, err := s.repo.FindByUsername(ctx, req.Username); err == nil {
		return nil, apperrors.Conflict("username is already taken", nil)
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.repo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.Conflict("email is already registered", nil)
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation("password rejected", err)
	}

	role := req.Role
	if role == "" {
		role = model.RolePatient
	}

	user := &model.User{
		ID:               uuid.New(),
		Username:         req.Username,
		Name:             req.Name,
		Email:            req.Email,
		PasswordHash:     hash,
		ContactNumber:    req.ContactNumber,
		Address:          req.Address,
		Birthday:         req.Birthday,
		RegistrationDate: s.now(),
		Role:             role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID.String(), "role", user.Role)
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *Service) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	if username == "" || password == "" {
		return nil, "", apperrors.Validation("username and password are required", nil)
	}
	if !s.limiter(username).Allow() {
		return nil, "", apperrors.Conflict("too many login attempts, try again later", nil)
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, "", apperrors.Unauthorized("invalid username or password", nil)
		}
		return nil, "", err
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		s.logger.Warn("failed login attempt", "username", username)
		return nil, "", apperrors.Unauthorized("invalid username or password", nil)
	}

	token, err := s.tokens.Generate(user.ID.String(), user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID.String())
	return user, token, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.repo.Get(ctx, id)
}

// List returns every account; the admin patients screen filters by role.
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	return s.repo.List(ctx)
}

// UpdateProfile applies partial edits. An email change re-checks
// uniqueness.
func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, req *model.UpdateProfileRequest) (*model.User, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Validation("invalid profile data", err)
	}

	user, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if existing, err := s.repo.FindByEmail(ctx, *req.Email); err == nil && existing.ID != id {
			return nil, apperrors.Conflict("email is already registered", nil)
		} else if err != nil && !apperrors.IsNotFound(err) {
			return nil, err
		}
		user.Email = *req.Email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.ContactNumber != nil {
		user.ContactNumber = *req.ContactNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Birthday != nil {
		user.Birthday = *req.Birthday
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

// Delete removes the account outright; the admin screen offers this as a
// destructive action.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("user deleted", "user_id", id.String())
	return nil
}

func (s *Service) limiter(username string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	lim, ok := s.limiters[username]
	if !ok {
		lim = rate.NewLimiter(rate.Every(loginAttemptInterval), loginAttemptBurst)
		s.limiters[username] = lim
	}
	return lim
}
