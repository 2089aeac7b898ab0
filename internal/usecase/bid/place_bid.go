package bid

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type PlaceBidInput struct {
	RequestID uuid.UUID
	BidderID  uuid.UUID
	Amount    valueobject.Money
	Note      string
}

type PlaceBidUseCase struct {
	txManager   repository.TxManager
	requestRepo repository.RequestRepository
	bidRepo     repository.BidRepository
	notifier    gateway.Notifier
	maxAmount   valueobject.Money
}

func NewPlaceBidUseCase(
	txManager repository.TxManager,
	requestRepo repository.RequestRepository,
	bidRepo repository.BidRepository,
	notifier gateway.Notifier,
	maxAmount valueobject.Money,
) *PlaceBidUseCase {
	return &PlaceBidUseCase{
		txManager:   txManager,
		requestRepo: requestRepo,
		bidRepo:     bidRepo,
		notifier:    notifier,
		maxAmount:   maxAmount,
	}
}

// Execute создаёт ставку. Гонку двух ставок одного фотографа закрывает уникальный индекс.
func (uc *PlaceBidUseCase) Execute(ctx context.Context, input PlaceBidInput) (*entity.Bid, error) {
	req, err := uc.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	bid, err := entity.NewBid(req, input.BidderID, input.Amount, uc.maxAmount, strings.TrimSpace(input.Note))
	if err != nil {
		return nil, err
	}

	existing, err := uc.bidRepo.FindActive(ctx, req.ID, input.BidderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.ErrActiveBidExists
	}

	err = uc.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.bidRepo.Create(ctx, bid); err != nil {
			return err
		}
		return uc.requestRepo.IncrementUnreadBids(ctx, req.ID)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, req.OwnerID, entity.RequestNotification(
		entity.NotificationBidReceived, "Новая ставка", "Фотограф предложил "+bid.Amount.String()+" за «"+req.Title+"»", req.ID))
	return bid, nil
}
