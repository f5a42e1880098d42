package kvjson

import (
	"context"

	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository"
	"github.com/careslot/careslot/internal/repository/kvstore"
	apperrors "github.com/careslot/careslot/pkg/errors"
)

type notificationRepository struct {
	store kvstore.Store
}

func NewNotificationRepository(store kvstore.Store) repository.NotificationRepository {
	return &notificationRepository{store: store}
}

func (r *notificationRepository) loadFeed(ctx context.Context, feed string) ([]*model.Notification, error) {
	return load[model.Notification](ctx, r.store, feed, "notifications")
}

func (r *notificationRepository) Push(ctx context.Context, feed string, n *model.Notification) error {
	notifications, err := r.loadFeed(ctx, feed)
	if err != nil {
		return err
	}
	// Newest first, matching the feed ordering the screens render.
	notifications = append([]*model.Notification{n}, notifications...)
	return save(ctx, r.store, feed, "notifications", notifications)
}

func (r *notificationRepository) List(ctx context.Context, feed string) ([]*model.Notification, error) {
	return r.loadFeed(ctx, feed)
}

func (r *notificationRepository) MarkRead(ctx context.Context, feed string, id uuid.UUID) error {
	notifications, err := r.loadFeed(ctx, feed)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		if n.ID == id {
			n.Read = true
			return save(ctx, r.store, feed, "notifications", notifications)
		}
	}
	return apperrors.NotFound("notification", nil)
}

func (r *notificationRepository) Delete(ctx context.Context, feed string, id uuid.UUID) error {
	notifications, err := r.loadFeed(ctx, feed)
	if err != nil {
		return err
	}
	for i, n := range notifications {
		if n.ID == id {
			notifications = append(notifications[:i], notifications[i+1:]...)
			return save(ctx, r.store, feed, "notifications", notifications)
		}
	}
	return apperrors.NotFound("notification", nil)
}

func (r *notificationRepository) Clear(ctx context.Context, feed string) error {
	if err := r.store.RemoveMany(ctx, []string{feed}); err != nil {
		return apperrors.Storage("failed to clear notifications", err)
	}
	return nil
}
