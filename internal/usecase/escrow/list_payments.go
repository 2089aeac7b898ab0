package escrow

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
)

type ListMyPaymentsUseCase struct {
	escrowRepo repository.EscrowRepository
}

func NewListMyPaymentsUseCase(escrowRepo repository.EscrowRepository) *ListMyPaymentsUseCase {
	return &ListMyPaymentsUseCase{escrowRepo: escrowRepo}
}

// Execute возвращает движения денег, где пользователь получатель.
func (uc *ListMyPaymentsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.EscrowPayment, error) {
	return uc.escrowRepo.ListByPayee(ctx, userID)
}
