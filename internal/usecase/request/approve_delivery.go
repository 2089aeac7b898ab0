package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

type ApproveDeliveryUseCase struct {
	txManager   repository.TxManager
	requestRepo repository.RequestRepository
	profileRepo repository.ProfileRepository
	escrowRepo  repository.EscrowRepository
	notifier    gateway.Notifier
}

func NewApproveDeliveryUseCase(
	txManager repository.TxManager,
	requestRepo repository.RequestRepository,
	profileRepo repository.ProfileRepository,
	escrowRepo repository.EscrowRepository,
	notifier gateway.Notifier,
) *ApproveDeliveryUseCase {
	return &ApproveDeliveryUseCase{
		txManager:   txManager,
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		escrowRepo:  escrowRepo,
		notifier:    notifier,
	}
}

// Execute закрывает проект и зачисляет оплату фотографу.
func (uc *ApproveDeliveryUseCase) Execute(ctx context.Context, requestID, ownerID uuid.UUID) (*entity.Request, error) {
	req, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	amount, err := req.ApproveDelivery(ownerID)
	if err != nil {
		return nil, err
	}
	photographerID := *req.HiredPhotographerID

	err = uc.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.requestRepo.UpdateIfStatus(ctx, req, valueobject.RequestStatusDelivered); err != nil {
			return err
		}
		if err := uc.profileRepo.AdjustBalance(ctx, photographerID, amount); err != nil {
			return err
		}
		if err := uc.profileRepo.IncrementCounter(ctx, photographerID, entity.CounterPendingReviews, 1); err != nil {
			return err
		}
		return uc.escrowRepo.Record(ctx, entity.NewEscrowPayment(req.ID, photographerID, amount, valueobject.EscrowStatusReleased, ""))
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, photographerID, entity.RequestNotification(
		entity.NotificationPaymentReleased, "Оплата зачислена", "На ваш баланс зачислено "+amount.String(), req.ID))
	uc.notifier.Notify(ctx, photographerID, entity.RequestNotification(
		entity.NotificationReviewRequested, "Оставьте отзыв", "Расскажите, как прошла работа над «"+req.Title+"»", req.ID))
	return req, nil
}
