package bid

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
)

type CancelBidUseCase struct {
	bidRepo repository.BidRepository
}

func NewCancelBidUseCase(bidRepo repository.BidRepository) *CancelBidUseCase {
	return &CancelBidUseCase{bidRepo: bidRepo}
}

// Execute отзывает ставку. Счётчик непрочитанных ставок заявки не уменьшается.
func (uc *CancelBidUseCase) Execute(ctx context.Context, bidID, callerID uuid.UUID) (*entity.Bid, error) {
	bid, err := uc.bidRepo.FindByID(ctx, bidID)
	if err != nil {
		return nil, err
	}
	if err := bid.Cancel(callerID); err != nil {
		return nil, err
	}
	if err := uc.bidRepo.CancelIfActive(ctx, bid.ID); err != nil {
		return nil, err
	}
	return bid, nil
}
