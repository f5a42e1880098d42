package booking

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository"
	"github.com/careslot/careslot/internal/repository/kvjson"
	"github.com/careslot/careslot/internal/repository/kvstore"
	"github.com/careslot/careslot/internal/service/availability"
	"github.com/careslot/careslot/internal/service/notification"
	apperrors "github.com/careslot/careslot/pkg/errors"
	"github.com/careslot/careslot/pkg/logger"
	"github.com/careslot/careslot/pkg/metrics"
	"github.com/careslot/careslot/pkg/pubsub"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)
}

type fixture struct {
	svc          *Service
	store        kvstore.Store
	users        repository.UserRepository
	doctors      repository.DoctorRepository
	appointments repository.AppointmentRepository
	notifier     *notification.Service
	bus          *pubsub.Bus

	user   *model.User
	doctor *model.Doctor
}

func newFixture(t *testing.T, store kvstore.Store) *fixture {
	t.Helper()
	ctx := context.Background()

	users := kvjson.NewUserRepository(store)
	doctors := kvjson.NewDoctorRepository(store)
	appointments := kvjson.NewAppointmentRepository(store)
	notifications := kvjson.NewNotificationRepository(store)

	m := metrics.New("careslot", prometheus.NewRegistry())
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	resolver := availability.NewService(fixedClock)
	notifier := notification.NewService(notifications, m)
	bus := pubsub.New()

	f := &fixture{
		svc:          NewService(appointments, doctors, users, resolver, notifier, bus, m, log),
		store:        store,
		users:        users,
		doctors:      doctors,
		appointments: appointments,
		notifier:     notifier,
		bus:          bus,
	}

	f.user = &model.User{
		ID:            uuid.New(),
		Username:      "annlowe",
		Name:          "Ann Lowe",
		Email:         "ann@example.com",
		ContactNumber: "555-0101",
		Role:          model.RolePatient,
	}
	require.NoError(t, users.Create(ctx, f.user))

	f.doctor = &model.Doctor{
		ID:               uuid.New(),
		Name:             "Dr. Sarah Johnson",
		Specialty:        "Ophthalmology",
		TimeSlots:        []string{"9:00 AM", "10:00 AM"},
		UnavailableDates: map[string]bool{},
		Bookings:         map[string]map[string]model.BookingEntry{},
	}
	require.NoError(t, doctors.Create(ctx, f.doctor))

	return f
}

func (f *fixture) request(date, slot string) *model.BookingRequest {
	return &model.BookingRequest{
		UserID:   f.user.ID,
		DoctorID: f.doctor.ID,
		Date:     date,
		Time:     slot,
	}
}

func TestBookSuccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kvstore.NewMemoryStore())

	published := 0
	f.bus.Subscribe(func() { published++ })

	apt, err := f.svc.Book(ctx, f.request("2025-03-10", "9:00 AM"))
	require.NoError(t, err)

	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, f.user.ID, apt.UserID)
	assert.Equal(t, f.doctor.ID, apt.DoctorID)
	assert.Equal(t, "Dr. Sarah Johnson", apt.DoctorName)
	assert.Equal(t, "Ann Lowe", apt.PatientName)
	assert.Equal(t, 1, published)

	stored, err := f.appointments.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPending, stored.Status)

	feed, err := f.notifier.AdminFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Contains(t, feed[0].Message, "Dr. Sarah Johnson")
	assert.Contains(t, feed[0].Message, "2025-03-10")
}

func TestBookDuplicateSameDateRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kvstore.NewMemoryStore())

	_, err := f.svc.Book(ctx, f.request("2025-03-10", "9:00 AM"))
	require.NoError(t, err)

	// Same user, doctor and date with a different time is still a duplicate.
	_, err = f.svc.Book(ctx, f.request("2025-03-10", "10:00 AM"))
	assert.True(t, apperrors.IsConflict(err))

	all, err := f.appointments.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestBookAfterCancellationAllowed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kvstore.NewMemoryStore())

	apt, err := f.svc.Book(ctx, f.request("2025-03-10", "9:00 AM"))
	require.NoError(t, err)

	apt.Status = model.AppointmentStatusCanceled
	require.NoError(t, f.appointments.Update(ctx, apt))

	_, err = f.svc.Book(ctx, f.request("2025-03-10", "10:00 AM"))
	assert.NoError(t, err)
}

func TestBookValidationFailures(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kvstore.NewMemoryStore())

	_, err := f.svc.Book(ctx, f.request("", "9:00 AM"))
	assert.True(t, apperrors.IsValidation(err), "missing date")

	_, err = f.svc.Book(ctx, f.request("2025-03-10", ""))
	assert.True(t, apperrors.IsValidation(err), "missing time")

	_, err = f.svc.Book(ctx, f.request("2025-02-20", "9:00 AM"))
	assert.True(t, apperrors.IsValidation(err), "past date")

	_, err = f.svc.Book(ctx, f.request("2025-03-10", "6:00 PM"))
	assert.True(t, apperrors.IsValidation(err), "slot not in template")
}

func TestBookUnavailableDateRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kvstore.NewMemoryStore())

	f.doctor.UnavailableDates["2025-03-15"] = true
	require.NoError(t, f.doctors.Update(ctx, f.doctor))

	_, err := f.svc.Book(ctx, f.request("2025-03-15", "9:00 AM"))
	assert.True(t, apperrors.IsValidation(err))
}

func TestBookOccupiedSlotRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kvstore.NewMemoryStore())

	f.doctor.Bookings["2025-03-10"] = map[string]model.BookingEntry{
		"9:00 AM": {PatientName: "Greg Hill"},
	}
	require.NoError(t, f.doctors.Update(ctx, f.doctor))

	_, err := f.svc.Book(ctx, f.request("2025-03-10", "9:00 AM"))
	assert.True(t, apperrors.IsConflict(err))
}

func TestBookUnknownDoctor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, kvstore.NewMemoryStore())

	req := f.request("2025-03-10", "9:00 AM")
	req.DoctorID = uuid.New()

	_, err := f.svc.Book(ctx, req)
	assert.True(t, apperrors.IsNotFound(err))
}

// failingStore fails every write to one key, simulating a storage fault on
// the notification feed.
type failingStore struct {
	kvstore.Store
	failKey string
}

func (s *failingStore) Set(ctx context.Context, key, value string) error {
	if key == s.failKey {
		return assert.AnError
	}
	return s.Store.Set(ctx, key, value)
}

func TestBookRollsBackWhenNotificationWriteFails(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{Store: kvstore.NewMemoryStore(), failKey: model.AdminFeed}
	f := newFixture(t, store)

	_, err := f.svc.Book(ctx, f.request("2025-03-10", "9:00 AM"))
	assert.True(t, apperrors.IsStorage(err))

	// The appointment write and the notification are one logical unit: the
	// appointment must not survive the failed notification.
	all, err := f.appointments.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}
