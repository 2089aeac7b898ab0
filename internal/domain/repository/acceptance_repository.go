package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

type AcceptanceRepository interface {
	// Create отклоняет второе ожидающее намерение по одной заявке.
	Create(ctx context.Context, intent *entity.AcceptanceIntent) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AcceptanceIntent, error)
	// FindPendingByRequest возвращает nil, nil, если ожидающего намерения нет.
	FindPendingByRequest(ctx context.Context, requestID uuid.UUID) (*entity.AcceptanceIntent, error)
	SetClientSecret(ctx context.Context, id uuid.UUID, clientSecret string) error
	TransitionStatus(ctx context.Context, id uuid.UUID, from, to valueobject.IntentStatus) error
}
