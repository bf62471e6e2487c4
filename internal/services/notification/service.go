package notification

import (
	"context"

	"github.com/google/uuid"

	"baartal/internal/models"
	"baartal/internal/repositories"
	"baartal/internal/utils"
)

// Service serves in-app notifications. Records are written by the
// ledger inside its transactions; this service only reads and marks.
type Service interface {
	List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error)
	MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	repo repositories.NotificationRepository
}

func NewService(repo repositories.NotificationRepository) Service {
	if repo == nil {
		panic("notification repository is required")
	}
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Notification, int64, error) {
	if limit <= 0 {
		limit = utils.DefaultLimit
	}
	if limit > utils.MaxLimit {
		limit = utils.MaxLimit
	}
	return s.repo.ListByUser(ctx, userID, limit, offset)
}

func (s *service) MarkRead(ctx context.Context, userID, notificationID uuid.UUID) error {
	return s.repo.MarkRead(userID, notificationID)
}

func (s *service) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(userID)
}
