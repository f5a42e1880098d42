// Package app is the composition root: it builds the store, repositories,
// bus and services from configuration and owns their lifecycle. An
// embedding UI or test harness constructs one App per installation and
// calls the services directly; there is no network surface.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/careslot/careslot/internal/config"
	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository"
	"github.com/careslot/careslot/internal/repository/kvjson"
	"github.com/careslot/careslot/internal/repository/kvstore"
	"github.com/careslot/careslot/internal/service/appointment"
	"github.com/careslot/careslot/internal/service/availability"
	"github.com/careslot/careslot/internal/service/booking"
	"github.com/careslot/careslot/internal/service/doctor"
	"github.com/careslot/careslot/internal/service/notification"
	"github.com/careslot/careslot/internal/service/user"
	"github.com/careslot/careslot/pkg/auth"
	"github.com/careslot/careslot/pkg/logger"
	"github.com/careslot/careslot/pkg/metrics"
	"github.com/careslot/careslot/pkg/pubsub"
	"github.com/careslot/careslot/pkg/security"
)

type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics
	Store   kvstore.Store
	Bus     *pubsub.Bus

	Users         *user.Service
	Doctors       *doctor.Service
	Booking       *booking.Service
	Appointments  *appointment.Service
	Notifications *notification.Service
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logger.NewLogger(&logger.Config{Level: logger.ParseLevel(cfg.Log.Level)})

	m := metrics.New("careslot", prometheus.DefaultRegisterer)

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}
	store = kvstore.Instrument(store, m.StoreOperations)

	bus := pubsub.New()
	resolver := availability.NewService(nil)
	hasher := security.NewBcryptHasher(cfg.Auth.BcryptCost)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry)

	users := kvjson.NewUserRepository(store)
	doctors := kvjson.NewDoctorRepository(store)
	appointments := kvjson.NewAppointmentRepository(store)
	notifications := kvjson.NewNotificationRepository(store)

	notifier := notification.NewService(notifications, m)

	a := &App{
		Config:        cfg,
		Logger:        log,
		Metrics:       m,
		Store:         store,
		Bus:           bus,
		Users:         user.NewService(users, hasher, tokens, log),
		Doctors:       doctor.NewService(doctors, resolver, bus, log),
		Booking:       booking.NewService(appointments, doctors, users, resolver, notifier, bus, m, log),
		Appointments:  appointment.NewService(appointments, doctors, resolver, notifier, bus, m, log),
		Notifications: notifier,
	}

	if err := a.seed(ctx, doctors); err != nil {
		store.Close()
		return nil, err
	}
	return a, nil
}

func newStore(cfg *config.Config) (kvstore.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendRedis:
		return kvstore.NewRedisStore(cfg.Store.RedisURL)
	case config.BackendPostgres:
		return kvstore.NewPostgresStore(cfg.Store.Postgres.DSN)
	case config.BackendMemory:
		return kvstore.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// seed writes the default roster on first boot only; an existing doctors
// key, even an empty list, is left alone.
func (a *App) seed(ctx context.Context, doctors repository.DoctorRepository) error {
	_, exists, err := a.Store.Get(ctx, kvjson.DoctorsKey)
	if err != nil {
		return fmt.Errorf("failed to check doctor roster: %w", err)
	}
	if exists {
		return nil
	}

	defaults := model.DefaultDoctors(time.Now())
	if err := doctors.Seed(ctx, defaults); err != nil {
		return fmt.Errorf("failed to seed doctor roster: %w", err)
	}
	a.Logger.Info("seeded default doctor roster", "count", len(defaults))
	return nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
