package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
)

type EscrowRepository interface {
	// Record добавляет запись; повтор той же записи игнорируется.
	Record(ctx context.Context, payment *entity.EscrowPayment) error
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.EscrowPayment, error)
	ListByPayee(ctx context.Context, payeeID uuid.UUID) ([]*entity.EscrowPayment, error)
}
