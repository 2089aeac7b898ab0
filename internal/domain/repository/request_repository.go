package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

type RequestRepository interface {
	// Create идемпотентен по ID.
	Create(ctx context.Context, request *entity.Request) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Request, error)
	// UpdateIfStatus записывает статус и поля проекта, только если текущий статус равен expected.
	// Иначе возвращает ошибку проигранной гонки.
	UpdateIfStatus(ctx context.Context, request *entity.Request, expected valueobject.RequestStatus) error
	AppendDeliveredFiles(ctx context.Context, id uuid.UUID, files []string) error
	// MarkReviewed выставляет флаг стороны, если он ещё не выставлен.
	MarkReviewed(ctx context.Context, id uuid.UUID, ownerSide bool) error
	IncrementUnreadBids(ctx context.Context, id uuid.UUID) error
	ResetUnreadBids(ctx context.Context, id uuid.UUID) error
	ListOpen(ctx context.Context, limit, offset int) ([]*entity.Request, int, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*entity.Request, error)
	ListByStatus(ctx context.Context, status valueobject.RequestStatus, limit, offset int) ([]*entity.Request, error)
}
