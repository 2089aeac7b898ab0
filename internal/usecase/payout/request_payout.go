package payout

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type RequestPayoutUseCase struct {
	profileRepo repository.ProfileRepository
	payoutRepo  repository.PayoutRepository
}

func NewRequestPayoutUseCase(profileRepo repository.ProfileRepository, payoutRepo repository.PayoutRepository) *RequestPayoutUseCase {
	return &RequestPayoutUseCase{profileRepo: profileRepo, payoutRepo: payoutRepo}
}

// Execute фиксирует текущий баланс в заявке на выплату. Баланс не списывается.
func (uc *RequestPayoutUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.PayoutRequest, error) {
	profile, err := uc.profileRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	pending, err := uc.payoutRepo.FindPendingByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if pending != nil {
		return nil, apperror.ErrPendingPayoutExists
	}

	payout, err := entity.NewPayoutRequest(userID, profile.Balance)
	if err != nil {
		return nil, err
	}
	// параллельный запрос упрётся в уникальный индекс и получит тот же CONFLICT
	if err := uc.payoutRepo.Create(ctx, payout); err != nil {
		return nil, err
	}
	return payout, nil
}

type ListMyPayoutsUseCase struct {
	payoutRepo repository.PayoutRepository
}

func NewListMyPayoutsUseCase(payoutRepo repository.PayoutRepository) *ListMyPayoutsUseCase {
	return &ListMyPayoutsUseCase{payoutRepo: payoutRepo}
}

func (uc *ListMyPayoutsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.PayoutRequest, error) {
	return uc.payoutRepo.ListByUser(ctx, userID)
}

type ListPendingPayoutsUseCase struct {
	payoutRepo repository.PayoutRepository
}

func NewListPendingPayoutsUseCase(payoutRepo repository.PayoutRepository) *ListPendingPayoutsUseCase {
	return &ListPendingPayoutsUseCase{payoutRepo: payoutRepo}
}

func (uc *ListPendingPayoutsUseCase) Execute(ctx context.Context, limit, offset int) ([]*entity.PayoutRequest, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.payoutRepo.ListByStatus(ctx, valueobject.PayoutStatusPending, limit, offset)
}
