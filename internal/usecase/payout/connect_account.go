package payout

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type ConnectAccountUseCase struct {
	profileRepo repository.ProfileRepository
	payments    gateway.PaymentGateway
}

func NewConnectAccountUseCase(profileRepo repository.ProfileRepository, payments gateway.PaymentGateway) *ConnectAccountUseCase {
	return &ConnectAccountUseCase{profileRepo: profileRepo, payments: payments}
}

// Execute заводит счёт для выплат у провайдера и возвращает ссылку на онбординг.
func (uc *ConnectAccountUseCase) Execute(ctx context.Context, userID uuid.UUID, email string) (string, error) {
	account, err := uc.payments.CreateConnectAccount(ctx, userID, email)
	if err != nil {
		return "", apperror.Wrap(err, apperror.ErrCodePaymentFailed, "не удалось подключить счёт для выплат")
	}
	if err := uc.profileRepo.SetPayoutAccount(ctx, userID, account.AccountID); err != nil {
		return "", err
	}
	return account.URL, nil
}
