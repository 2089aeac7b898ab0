package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

type DisableRequestUseCase struct {
	txManager   repository.TxManager
	requestRepo repository.RequestRepository
	profileRepo repository.ProfileRepository
	escrowRepo  repository.EscrowRepository
	notifier    gateway.Notifier
}

func NewDisableRequestUseCase(
	txManager repository.TxManager,
	requestRepo repository.RequestRepository,
	profileRepo repository.ProfileRepository,
	escrowRepo repository.EscrowRepository,
	notifier gateway.Notifier,
) *DisableRequestUseCase {
	return &DisableRequestUseCase{
		txManager:   txManager,
		requestRepo: requestRepo,
		profileRepo: profileRepo,
		escrowRepo:  escrowRepo,
		notifier:    notifier,
	}
}

// Execute необратимо отключает заявку и возвращает клиенту удержанные средства.
func (uc *DisableRequestUseCase) Execute(ctx context.Context, requestID uuid.UUID) (*entity.Request, error) {
	req, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	prior := req.Status
	refund, err := req.Disable()
	if err != nil {
		return nil, err
	}

	err = uc.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.requestRepo.UpdateIfStatus(ctx, req, prior); err != nil {
			return err
		}
		if !refund.IsPositive() {
			return nil
		}
		if err := uc.profileRepo.AdjustBalance(ctx, req.OwnerID, refund); err != nil {
			return err
		}
		return uc.escrowRepo.Record(ctx, entity.NewEscrowPayment(req.ID, req.OwnerID, refund, valueobject.EscrowStatusRefunded, ""))
	})
	if err != nil {
		return nil, err
	}

	n := entity.RequestNotification(entity.NotificationRequestDisabled, "Заявка отключена",
		"Администратор отключил заявку «"+req.Title+"»", req.ID)
	uc.notifier.Notify(ctx, req.OwnerID, n)
	if req.HiredPhotographerID != nil {
		uc.notifier.Notify(ctx, *req.HiredPhotographerID, n)
	}
	return req, nil
}
