package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

type PayoutRepository interface {
	// Create отклоняет вторую ожидающую выплату пользователя.
	Create(ctx context.Context, payout *entity.PayoutRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.PayoutRequest, error)
	// FindPendingByUser возвращает nil, nil, если ожидающей выплаты нет.
	FindPendingByUser(ctx context.Context, userID uuid.UUID) (*entity.PayoutRequest, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.PayoutRequest, error)
	ListByStatus(ctx context.Context, status valueobject.PayoutStatus, limit, offset int) ([]*entity.PayoutRequest, error)
	CompleteIfPending(ctx context.Context, payout *entity.PayoutRequest) error
	SetTransferID(ctx context.Context, id uuid.UUID, transferID string) error
}
