package doctor

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository/kvjson"
	"github.com/careslot/careslot/internal/repository/kvstore"
	"github.com/careslot/careslot/internal/service/availability"
	apperrors "github.com/careslot/careslot/pkg/errors"
	"github.com/careslot/careslot/pkg/logger"
	"github.com/careslot/careslot/pkg/pubsub"
)

func newService(t *testing.T) *Service {
	t.Helper()
	store := kvstore.NewMemoryStore()
	repo := kvjson.NewDoctorRepository(store)
	resolver := availability.NewService(func() time.Time {
		return time.Date(2025, 3, 1, 10, 0, 0, 0, time.Local)
	})
	log := logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
	return NewService(repo, resolver, pubsub.New(), log)
}

func create(t *testing.T, svc *Service, req *model.CreateDoctorRequest) *model.Doctor {
	t.Helper()
	doctor, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	return doctor
}

func TestCreateWithDefaultTemplate(t *testing.T) {
	svc := newService(t)

	doctor := create(t, svc, &model.CreateDoctorRequest{
		Name:      "Dr. Michael Lee",
		Specialty: "Cardiology",
	})

	assert.NotEqual(t, uuid.Nil, doctor.ID)
	assert.Equal(t, model.DefaultTimeSlots, doctor.TimeSlots)
	assert.NotNil(t, doctor.UnavailableDates)
	assert.NotNil(t, doctor.Bookings)
}

func TestCreateWithExplicitSlots(t *testing.T) {
	svc := newService(t)

	doctor := create(t, svc, &model.CreateDoctorRequest{
		Name:      "Dr. Sarah Johnson",
		Specialty: "Ophthalmology",
		TimeSlots: []string{"7:00 AM"},
	})

	assert.Equal(t, []string{"7:00 AM"}, doctor.TimeSlots)
}

func TestCreateValidation(t *testing.T) {
	svc := newService(t)

	_, err := svc.Create(context.Background(), &model.CreateDoctorRequest{
		Specialty: "Cardiology",
	})
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdatePartialFields(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	doctor := create(t, svc, &model.CreateDoctorRequest{
		Name:      "Dr. Sarah Johnson",
		Specialty: "Ophthalmology",
	})

	bio := "Board certified."
	got, err := svc.Update(ctx, doctor.ID, &model.UpdateDoctorRequest{Bio: &bio})
	require.NoError(t, err)

	assert.Equal(t, "Board certified.", got.Bio)
	assert.Equal(t, "Dr. Sarah Johnson", got.Name)
	assert.Equal(t, "Ophthalmology", got.Specialty)
}

func TestAddTimeSlot(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	doctor := create(t, svc, &model.CreateDoctorRequest{
		Name:      "Dr. Sarah Johnson",
		Specialty: "Ophthalmology",
		TimeSlots: []string{"9:00 AM"},
	})

	got, err := svc.AddTimeSlot(ctx, doctor.ID, "5:00 PM")
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "5:00 PM"}, got.TimeSlots)

	_, err = svc.AddTimeSlot(ctx, doctor.ID, "5:00 PM")
	assert.True(t, apperrors.IsConflict(err))

	_, err = svc.AddTimeSlot(ctx, doctor.ID, "")
	assert.True(t, apperrors.IsValidation(err))
}

func TestRemoveTimeSlot(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	doctor := create(t, svc, &model.CreateDoctorRequest{
		Name:      "Dr. Sarah Johnson",
		Specialty: "Ophthalmology",
		TimeSlots: []string{"9:00 AM", "10:00 AM"},
	})

	got, err := svc.RemoveTimeSlot(ctx, doctor.ID, "9:00 AM")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM"}, got.TimeSlots)

	_, err = svc.RemoveTimeSlot(ctx, doctor.ID, "9:00 AM")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestToggleDateAvailability(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	doctor := create(t, svc, &model.CreateDoctorRequest{
		Name:      "Dr. Sarah Johnson",
		Specialty: "Ophthalmology",
	})

	got, err := svc.ToggleDateAvailability(ctx, doctor.ID, "2030-06-01")
	require.NoError(t, err)
	assert.True(t, got.UnavailableDates["2030-06-01"])

	got, err = svc.ToggleDateAvailability(ctx, doctor.ID, "2030-06-01")
	require.NoError(t, err)
	_, present := got.UnavailableDates["2030-06-01"]
	assert.False(t, present, "toggling twice restores availability")
}

func TestToggleDateAvailabilityRejectsPastAndMalformed(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	doctor := create(t, svc, &model.CreateDoctorRequest{
		Name:      "Dr. Sarah Johnson",
		Specialty: "Ophthalmology",
	})

	_, err := svc.ToggleDateAvailability(ctx, doctor.ID, "2020-01-01")
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.ToggleDateAvailability(ctx, doctor.ID, "06/01/2030")
	assert.True(t, apperrors.IsValidation(err))
}

func TestAvailableSlots(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	doctor := create(t, svc, &model.CreateDoctorRequest{
		Name:      "Dr. Sarah Johnson",
		Specialty: "Ophthalmology",
		TimeSlots: []string{"9:00 AM", "10:00 AM"},
	})

	slots, err := svc.AvailableSlots(ctx, doctor.ID, "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "10:00 AM"}, slots)

	_, err = svc.AvailableSlots(ctx, uuid.New(), "2025-03-10")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestDeleteDoctor(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	doctor := create(t, svc, &model.CreateDoctorRequest{
		Name:      "Dr. Sarah Johnson",
		Specialty: "Ophthalmology",
	})

	require.NoError(t, svc.Delete(ctx, doctor.ID))

	_, err := svc.Get(ctx, doctor.ID)
	assert.True(t, apperrors.IsNotFound(err))

	doctors, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, doctors)
}
