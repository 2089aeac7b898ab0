package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

// PayoutRequest фиксирует баланс на момент запроса. Баланс списывается только при исполнении.
type PayoutRequest struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Amount      valueobject.Money
	Status      valueobject.PayoutStatus
	TransferID  *string
	RequestedAt time.Time
	CompletedAt *time.Time
}

func NewPayoutRequest(userID uuid.UUID, balance valueobject.Money) (*PayoutRequest, error) {
	if !balance.IsPositive() {
		return nil, apperror.New(apperror.ErrCodeValidation, "на балансе нет средств для выплаты")
	}
	return &PayoutRequest{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      balance,
		Status:      valueobject.PayoutStatusPending,
		RequestedAt: time.Now(),
	}, nil
}

func (p *PayoutRequest) IsPending() bool {
	return p.Status == valueobject.PayoutStatusPending
}

func (p *PayoutRequest) Complete(transferID string) error {
	if !p.IsPending() {
		return apperror.New(apperror.ErrCodeValidation, "выплата уже обработана")
	}
	now := time.Now()
	p.Status = valueobject.PayoutStatusCompleted
	p.CompletedAt = &now
	if transferID != "" {
		p.TransferID = &transferID
	}
	return nil
}
