package payout

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/logger"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type CompletePayoutUseCase struct {
	txManager   repository.TxManager
	payoutRepo  repository.PayoutRepository
	profileRepo repository.ProfileRepository
	payments    gateway.PaymentGateway
	notifier    gateway.Notifier
}

func NewCompletePayoutUseCase(
	txManager repository.TxManager,
	payoutRepo repository.PayoutRepository,
	profileRepo repository.ProfileRepository,
	payments gateway.PaymentGateway,
	notifier gateway.Notifier,
) *CompletePayoutUseCase {
	return &CompletePayoutUseCase{
		txManager:   txManager,
		payoutRepo:  payoutRepo,
		profileRepo: profileRepo,
		payments:    payments,
		notifier:    notifier,
	}
}

// Execute исполняет выплату: pending → completed, списание баланса и перевод на подключённый счёт.
// Отказ перевода откатывает всё. Сбой после перевода означает расхождение, требующее ручной сверки.
func (uc *CompletePayoutUseCase) Execute(ctx context.Context, payoutID uuid.UUID) (*entity.PayoutRequest, error) {
	payout, err := uc.payoutRepo.FindByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if !payout.IsPending() {
		return nil, apperror.NoLongerAvailable("выплата уже обработана")
	}

	profile, err := uc.profileRepo.FindByID(ctx, payout.UserID)
	if err != nil {
		return nil, err
	}
	if profile.PayoutAccountID == nil || *profile.PayoutAccountID == "" {
		return nil, apperror.ErrPayoutAccountMissing
	}
	destination := *profile.PayoutAccountID

	if err := payout.Complete(""); err != nil {
		return nil, err
	}

	var transferID string
	err = uc.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.payoutRepo.CompleteIfPending(ctx, payout); err != nil {
			return err
		}
		if err := uc.profileRepo.AdjustBalance(ctx, payout.UserID, -payout.Amount); err != nil {
			return err
		}

		transfer, err := uc.payments.CreateTransfer(ctx, payout.Amount, destination)
		if err != nil {
			logger.Log.WithFields(logrus.Fields{
				"payout_id": payout.ID,
				"user_id":   payout.UserID,
				"amount":    payout.Amount.String(),
			}).WithError(err).Warn("payout transfer rejected")
			return apperror.Wrap(err, apperror.ErrCodePaymentFailed, "не удалось выполнить перевод, попробуйте позже")
		}
		transferID = transfer.ID
		return uc.payoutRepo.SetTransferID(ctx, payout.ID, transfer.ID)
	})
	if err != nil {
		if transferID == "" {
			return nil, err
		}
		logger.Log.WithFields(logrus.Fields{
			"payout_id":   payout.ID,
			"user_id":     payout.UserID,
			"amount":      payout.Amount.String(),
			"transfer_id": transferID,
		}).WithError(err).Error("RECONCILIATION GAP: transfer sent but payout was not recorded")
		return nil, apperror.ReconciliationGap(err)
	}
	payout.TransferID = &transferID

	uc.notifier.Notify(ctx, payout.UserID, entity.Notification{
		Title:     "Выплата отправлена",
		Message:   "Средства " + payout.Amount.String() + " переведены на ваш счёт",
		Type:      entity.NotificationPayoutCompleted,
		Link:      "/payouts",
		RelatedID: &payout.ID,
	})
	return payout, nil
}
