package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

// ProfileRepository меняет баланс и счётчики только атомарными приращениями.
type ProfileRepository interface {
	Ensure(ctx context.Context, profile *entity.Profile) (*entity.Profile, error)
	FindByID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)
	UpdateDetails(ctx context.Context, userID uuid.UUID, displayName string, isAvailable bool) error
	// AdjustBalance прибавляет delta. Списание, уводящее баланс в минус, отклоняется.
	AdjustBalance(ctx context.Context, userID uuid.UUID, delta valueobject.Money) error
	// IncrementCounter прибавляет delta, но не опускает счётчик ниже нуля.
	IncrementCounter(ctx context.Context, userID uuid.UUID, counter entity.ProfileCounter, delta int) error
	ResetCounter(ctx context.Context, userID uuid.UUID, counter entity.ProfileCounter) error
	SetPayoutAccount(ctx context.Context, userID uuid.UUID, accountID string) error
}
