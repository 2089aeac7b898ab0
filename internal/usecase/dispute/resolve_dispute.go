package dispute

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

type ResolveDisputeUseCase struct {
	txManager   repository.TxManager
	requestRepo repository.RequestRepository
	profileRepo repository.ProfileRepository
	escrowRepo  repository.EscrowRepository
	notifier    gateway.Notifier
}

func NewResolveDisputeUseCase(
	txManager repository.TxManager,
	requestRepo repository.RequestRepository,
	profileRepo repository.ProfileRepository,
	escrowRepo repository.EscrowRepository,
	notifier gateway.Notifier,
) *ResolveDisputeUseCase {
	return &ResolveDisputeUseCase{
		txManager:   txManager,
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		escrowRepo:  escrowRepo,
		notifier:    notifier,
	}
}

// Execute завершает спор: refund зачисляет сумму клиенту, pay зачисляет фотографу. Зачисление ровно одно.
func (uc *ResolveDisputeUseCase) Execute(ctx context.Context, requestID uuid.UUID, outcome valueobject.DisputeOutcome) (*entity.Request, error) {
	req, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	payee, amount, err := req.ResolveDispute(outcome)
	if err != nil {
		return nil, err
	}

	escrowStatus := valueobject.EscrowStatusReleased
	if outcome == valueobject.DisputeOutcomeRefund {
		escrowStatus = valueobject.EscrowStatusRefunded
	}

	err = uc.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.requestRepo.UpdateIfStatus(ctx, req, valueobject.RequestStatusDisputed); err != nil {
			return err
		}
		if err := uc.profileRepo.AdjustBalance(ctx, payee, amount); err != nil {
			return err
		}
		return uc.escrowRepo.Record(ctx, entity.NewEscrowPayment(req.ID, payee, amount, escrowStatus, ""))
	})
	if err != nil {
		return nil, err
	}

	message := "Средства возвращены клиенту"
	if outcome == valueobject.DisputeOutcomePay {
		message = "Средства зачислены фотографу"
	}
	n := entity.RequestNotification(entity.NotificationDisputeResolved, "Спор решён", message, req.ID)
	uc.notifier.Notify(ctx, req.OwnerID, n)
	uc.notifier.Notify(ctx, *req.HiredPhotographerID, n)
	return req, nil
}
