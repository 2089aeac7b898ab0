package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

type DeliverWorkInput struct {
	RequestID      uuid.UUID
	PhotographerID uuid.UUID
	Files          []string
}

type DeliverWorkUseCase struct {
	txManager   repository.TxManager
	requestRepo repository.RequestRepository
	notifier    gateway.Notifier
}

func NewDeliverWorkUseCase(txManager repository.TxManager, requestRepo repository.RequestRepository, notifier gateway.Notifier) *DeliverWorkUseCase {
	return &DeliverWorkUseCase{txManager: txManager, requestRepo: requestRepo, notifier: notifier}
}

// Authorize проверяет право сдачи до того, как файлы попадут в хранилище.
func (uc *DeliverWorkUseCase) Authorize(ctx context.Context, requestID, photographerID uuid.UUID) error {
	req, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return err
	}
	return req.CanDeliver(photographerID)
}

// Execute прикладывает файлы. Повторная сдача в статусе delivered только дополняет список.
func (uc *DeliverWorkUseCase) Execute(ctx context.Context, input DeliverWorkInput) (*entity.Request, error) {
	req, err := uc.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	prior := req.Status
	if err := req.Deliver(input.PhotographerID, input.Files); err != nil {
		return nil, err
	}

	err = uc.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if prior == valueobject.RequestStatusInProgress {
			if err := uc.requestRepo.UpdateIfStatus(ctx, req, prior); err != nil {
				return err
			}
		}
		return uc.requestRepo.AppendDeliveredFiles(ctx, req.ID, input.Files)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, req.OwnerID, entity.RequestNotification(
		entity.NotificationDelivered, "Работа сдана", "Фотограф загрузил файлы по заявке «"+req.Title+"»", req.ID))
	return req, nil
}
