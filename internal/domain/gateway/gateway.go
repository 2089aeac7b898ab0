// Package gateway описывает внешних участников процесса: платёжный мост,
// файловое хранилище, канал уведомлений и брокер событий.
package gateway

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

type PaymentIntent struct {
	ClientSecret string
}

type ConnectAccount struct {
	URL       string
	AccountID string
}

type Transfer struct {
	ID string
}

// PaymentGateway: контракт платёжного моста. Суммы передаются в центах.
type PaymentGateway interface {
	CreatePaymentIntent(ctx context.Context, amount valueobject.Money) (*PaymentIntent, error)
	CreateConnectAccount(ctx context.Context, userID uuid.UUID, email string) (*ConnectAccount, error)
	CreateTransfer(ctx context.Context, amount valueobject.Money, destination string) (*Transfer, error)
}

// FileStorage сохраняет файл и возвращает постоянный URL.
type FileStorage interface {
	Save(ctx context.Context, ownerID uuid.UUID, fileName, contentType string, r io.Reader, size int64) (string, error)
}

// Notifier не возвращает ошибок: сбой доставки не должен откатывать бизнес-операцию.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, n entity.Notification)
}

type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}
