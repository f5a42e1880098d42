package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/careslot/careslot/internal/model"
	"github.com/careslot/careslot/internal/repository"
	"github.com/careslot/careslot/pkg/metrics"
)

// Service writes and maintains notification feeds: one admin feed and one
// feed per patient.
type Service struct {
	repo    repository.NotificationRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

func NewService(repo repository.NotificationRepository, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m, now: time.Now}
}

func (s *Service) NotifyAdmin(ctx context.Context, title, message string) error {
	return s.push(ctx, model.AdminFeed, title, message)
}

func (s *Service) NotifyUser(ctx context.Context, userID uuid.UUID, title, message string) error {
	return s.push(ctx, model.UserFeed(userID), title, message)
}

func (s *Service) push(ctx context.Context, feed, title, message string) error {
	n := &model.Notification{
		ID:        uuid.New(),
		Title:     title,
		Message:   message,
		Timestamp: s.now(),
	}
	if err := s.repo.Push(ctx, feed, n); err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	if s.metrics != nil {
		s.metrics.NotificationsEnqueued.Inc()
	}
	return nil
}

func (s *Service) AdminFeed(ctx context.Context) ([]*model.Notification, error) {
	return s.repo.List(ctx, model.AdminFeed)
}

func (s *Service) UserFeed(ctx context.Context, userID uuid.UUID) ([]*model.Notification, error) {
	return s.repo.List(ctx, model.UserFeed(userID))
}

func (s *Service) MarkRead(ctx context.Context, feed string, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, feed, id)
}

func (s *Service) Delete(ctx context.Context, feed string, id uuid.UUID) error {
	return s.repo.Delete(ctx, feed, id)
}

func (s *Service) Clear(ctx context.Context, feed string) error {
	return s.repo.Clear(ctx, feed)
}

// UnreadCount backs the badge rendered next to the notification icon.
func (s *Service) UnreadCount(ctx context.Context, feed string) (int, error) {
	notifications, err := s.repo.List(ctx, feed)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}
