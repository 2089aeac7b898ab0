package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/usecasetest"
)

type recordingPusher struct {
	mu     sync.Mutex
	events []NotificationEvent
}

func (p *recordingPusher) Push(userID uuid.UUID, event string, data any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, data.(NotificationEvent))
	return nil
}

func (p *recordingPusher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.events)
}

type recordingPublisher struct {
	mu   sync.Mutex
	keys []string
	err  error
}

func (p *recordingPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.keys = append(p.keys, routingKey)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.keys...)
}

func TestNotificationService_FansOut(t *testing.T) {
	repo := &usecasetest.NotificationRepo{}
	pusher := &recordingPusher{}
	publisher := &recordingPublisher{}
	svc := NewNotificationService(repo, pusher, publisher)
	userID, requestID := uuid.New(), uuid.New()

	ctx, cancel := context.WithCancel(context.Background())
	svc.Notify(ctx, userID, entity.RequestNotification(entity.NotificationBidReceived, "Новая ставка", "3000.00", requestID))
	cancel()

	require.Eventually(t, func() bool { return len(publisher.published()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"notification.bid_received"}, publisher.published())
	require.Equal(t, 1, pusher.count())
	assert.Equal(t, "/requests/"+requestID.String(), pusher.events[0].Link)

	unread, err := svc.CountUnread(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, 1, unread)
}

func TestNotificationService_PersistFailureStopsDelivery(t *testing.T) {
	repo := &usecasetest.NotificationRepo{Err: errors.New("db down")}
	pusher := &recordingPusher{}
	publisher := &recordingPublisher{}
	svc := NewNotificationService(repo, pusher, publisher)

	fields := map[string]any{}
	n := entity.Notification{ID: uuid.New(), UserID: uuid.New(), Type: entity.NotificationHired}
	svc.deliver(context.Background(), &n, fields)

	assert.Zero(t, pusher.count())
	assert.Empty(t, publisher.published())
}

func TestNotificationService_PublishFailureIsSwallowed(t *testing.T) {
	repo := &usecasetest.NotificationRepo{}
	publisher := &recordingPublisher{err: errors.New("broker down")}
	svc := NewNotificationService(repo, nil, publisher)

	n := entity.Notification{ID: uuid.New(), UserID: uuid.New(), Type: entity.NotificationHired}
	svc.deliver(context.Background(), &n, nil)

	assert.Len(t, repo.Items, 1)
}

func TestNotificationService_MarkRead(t *testing.T) {
	repo := &usecasetest.NotificationRepo{}
	svc := NewNotificationService(repo, nil, nil)
	owner := uuid.New()
	n := &entity.Notification{ID: uuid.New(), UserID: owner}
	require.NoError(t, repo.Create(context.Background(), n))

	err := svc.MarkRead(context.Background(), n.ID, uuid.New())
	assert.True(t, apperror.IsNotFound(err))

	require.NoError(t, svc.MarkRead(context.Background(), n.ID, owner))
	unread, err := svc.CountUnread(context.Background(), owner)
	require.NoError(t, err)
	assert.Zero(t, unread)
}
