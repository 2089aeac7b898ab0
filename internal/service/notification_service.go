package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/goroutine"
	"github.com/ignatzorin/photomarket-backend/internal/logger"
)

// Pusher доставляет событие в открытые websocket-подключения пользователя.
type Pusher interface {
	Push(userID uuid.UUID, event string, data any) error
}

// NotificationEvent: форма уведомления для websocket и брокера.
type NotificationEvent struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Type      string     `json:"type"`
	Link      string     `json:"link,omitempty"`
	RelatedID *uuid.UUID `json:"related_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NotificationService сохраняет уведомление, пушит его в websocket и публикует в брокер.
// Ошибки доставки только логируются.
type NotificationService struct {
	repo      repository.NotificationRepository
	pusher    Pusher
	publisher gateway.EventPublisher
}

func NewNotificationService(repo repository.NotificationRepository, pusher Pusher, publisher gateway.EventPublisher) *NotificationService {
	return &NotificationService{repo: repo, pusher: pusher, publisher: publisher}
}

var _ gateway.Notifier = (*NotificationService)(nil)

// Notify не блокирует вызывающего и переживает отмену контекста запроса.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, n entity.Notification) {
	n.ID = uuid.New()
	n.UserID = userID
	n.IsRead = false
	n.CreatedAt = time.Now()

	fields := logrus.Fields{"user_id": userID, "notification_type": n.Type}
	goroutine.SafeGoWithContext(context.WithoutCancel(ctx), fields, func(ctx context.Context) {
		s.deliver(ctx, &n, fields)
	})
}

func (s *NotificationService) deliver(ctx context.Context, n *entity.Notification, fields logrus.Fields) {
	log := logger.Log.WithFields(fields)

	if err := s.repo.Create(ctx, n); err != nil {
		log.WithError(err).Error("failed to persist notification")
		return
	}

	event := NotificationEvent{
		ID:        n.ID,
		UserID:    n.UserID,
		Title:     n.Title,
		Message:   n.Message,
		Type:      string(n.Type),
		Link:      n.Link,
		RelatedID: n.RelatedID,
		CreatedAt: n.CreatedAt,
	}
	if s.pusher != nil {
		if err := s.pusher.Push(n.UserID, "notification", event); err != nil {
			log.WithError(err).Warn("failed to push notification")
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, "notification."+string(n.Type), event); err != nil {
			log.WithError(err).Warn("failed to publish notification event")
		}
	}
}

func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, limit, offset int, unreadOnly bool) ([]*entity.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.List(ctx, userID, limit, offset, unreadOnly)
}

func (s *NotificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}

// MarkRead отмечает прочитанным только своё уведомление; чужое выглядит как несуществующее.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
