package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository/kvjson"
	"github.com/careslot/careslot/internal/repository/kvstore"
	"github.com/careslot/careslot/pkg/metrics"
)

func newService(t *testing.T) *Service {
	t.Helper()
	store := kvstore.NewMemoryStore()
	repo := kvjson.NewNotificationRepository(store)
	return NewService(repo, metrics.New("careslot", prometheus.NewRegistry()))
}

func TestFeedsAreIsolated(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := uuid.New()

	require.NoError(t, svc.NotifyAdmin(ctx, "New appointment request", "Ann Lowe requested 9:00 AM."))
	require.NoError(t, svc.NotifyUser(ctx, userID, "Appointment confirmed", "See you at 9:00 AM."))

	admin, err := svc.AdminFeed(ctx)
	require.NoError(t, err)
	require.Len(t, admin, 1)
	assert.Equal(t, "New appointment request", admin[0].Title)

	user, err := svc.UserFeed(ctx, userID)
	require.NoError(t, err)
	require.Len(t, user, 1)
	assert.Equal(t, "Appointment confirmed", user[0].Title)

	other, err := svc.UserFeed(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestFeedNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	require.NoError(t, svc.NotifyAdmin(ctx, "first", "m"))
	require.NoError(t, svc.NotifyAdmin(ctx, "second", "m"))
	require.NoError(t, svc.NotifyAdmin(ctx, "third", "m"))

	feed, err := svc.AdminFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "third", feed[0].Title)
	assert.Equal(t, "second", feed[1].Title)
	assert.Equal(t, "first", feed[2].Title)
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	require.NoError(t, svc.NotifyAdmin(ctx, "a", "m"))
	require.NoError(t, svc.NotifyAdmin(ctx, "b", "m"))

	count, err := svc.UnreadCount(ctx, model.AdminFeed)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	feed, err := svc.AdminFeed(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.MarkRead(ctx, model.AdminFeed, feed[0].ID))

	count, err = svc.UnreadCount(ctx, model.AdminFeed)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	feed, err = svc.AdminFeed(ctx)
	require.NoError(t, err)
	assert.True(t, feed[0].Read)
	assert.False(t, feed[1].Read)
}

func TestDeleteNotification(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	require.NoError(t, svc.NotifyAdmin(ctx, "keep", "m"))
	require.NoError(t, svc.NotifyAdmin(ctx, "drop", "m"))

	feed, err := svc.AdminFeed(ctx)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, model.AdminFeed, feed[0].ID))

	feed, err = svc.AdminFeed(ctx)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "keep", feed[0].Title)
}

func TestClearFeed(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	userID := uuid.New()

	require.NoError(t, svc.NotifyUser(ctx, userID, "a", "m"))
	require.NoError(t, svc.NotifyUser(ctx, userID, "b", "m"))
	require.NoError(t, svc.NotifyAdmin(ctx, "stays", "m"))

	require.NoError(t, svc.Clear(ctx, model.UserFeed(userID)))

	user, err := svc.UserFeed(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, user)

	admin, err := svc.AdminFeed(ctx)
	require.NoError(t, err)
	assert.Len(t, admin, 1)
}
