package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
)

type BidRepository interface {
	Create(ctx context.Context, bid *entity.Bid) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error)
	// FindByIDForUpdate блокирует строку ставки до конца транзакции.
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Bid, error)
	// FindActive возвращает nil, nil, если активной ставки нет.
	FindActive(ctx context.Context, requestID, bidderID uuid.UUID) (*entity.Bid, error)
	CancelIfActive(ctx context.Context, id uuid.UUID) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.Bid, error)
	ListByBidder(ctx context.Context, bidderID uuid.UUID) ([]*entity.Bid, error)
}
