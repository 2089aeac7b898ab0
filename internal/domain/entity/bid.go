package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/photomarket-backend/internal/validation"
)

// Bid: предложение фотографа по открытой заявке. Сумма после создания не меняется.
type Bid struct {
	ID        uuid.UUID
	RequestID uuid.UUID
	BidderID  uuid.UUID
	Amount    valueobject.Money
	Note      string
	Status    valueobject.BidStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewBid(request *Request, bidderID uuid.UUID, amount, maxAmount valueobject.Money, note string) (*Bid, error) {
	if request.IsOwnedBy(bidderID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "нельзя делать ставку на свою заявку")
	}
	if request.Status != valueobject.RequestStatusOpen {
		return nil, apperror.New(apperror.ErrCodeValidation, "заявка не принимает ставки")
	}
	if !amount.IsPositive() {
		return nil, apperror.New(apperror.ErrCodeValidation, "ставка должна быть больше нуля")
	}
	if maxAmount.IsPositive() && amount > maxAmount {
		return nil, apperror.New(apperror.ErrCodeValidation, "ставка превышает допустимый максимум "+maxAmount.String())
	}
	note, err := validation.ValidateText("комментарий к ставке", note, false, validation.MaxBidNoteLength)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Bid{
		ID:        uuid.New(),
		RequestID: request.ID,
		BidderID:  bidderID,
		Amount:    amount,
		Note:      note,
		Status:    valueobject.BidStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (b *Bid) IsActive() bool {
	return b.Status == valueobject.BidStatusActive
}

func (b *Bid) IsOwnedBy(userID uuid.UUID) bool {
	return b.BidderID == userID
}

// Cancel отзывает ставку. Повторная отмена отклоняется, статус остаётся cancelled.
func (b *Bid) Cancel(userID uuid.UUID) error {
	if !b.IsOwnedBy(userID) {
		return apperror.New(apperror.ErrCodeForbidden, "отменить ставку может только её автор")
	}
	if !b.IsActive() {
		return apperror.ErrBidNotActive
	}
	b.Status = valueobject.BidStatusCancelled
	b.UpdatedAt = time.Now()
	return nil
}
