package bid

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type ListRequestBidsUseCase struct {
	requestRepo repository.RequestRepository
	bidRepo     repository.BidRepository
}

func NewListRequestBidsUseCase(requestRepo repository.RequestRepository, bidRepo repository.BidRepository) *ListRequestBidsUseCase {
	return &ListRequestBidsUseCase{requestRepo: requestRepo, bidRepo: bidRepo}
}

// Execute отдаёт ставки автору заявки и отмечает их просмотренными.
func (uc *ListRequestBidsUseCase) Execute(ctx context.Context, requestID, callerID uuid.UUID, isAdmin bool) ([]*entity.Bid, error) {
	req, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && !req.IsOwnedBy(callerID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "ставки видит только автор заявки")
	}

	bids, err := uc.bidRepo.ListByRequest(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.IsOwnedBy(callerID) && req.UnreadBidCount > 0 {
		if err := uc.requestRepo.ResetUnreadBids(ctx, req.ID); err != nil {
			return nil, err
		}
	}
	return bids, nil
}

type ListMyBidsUseCase struct {
	bidRepo repository.BidRepository
}

func NewListMyBidsUseCase(bidRepo repository.BidRepository) *ListMyBidsUseCase {
	return &ListMyBidsUseCase{bidRepo: bidRepo}
}

func (uc *ListMyBidsUseCase) Execute(ctx context.Context, bidderID uuid.UUID) ([]*entity.Bid, error) {
	return uc.bidRepo.ListByBidder(ctx, bidderID)
}
