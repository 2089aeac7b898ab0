package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

// AcceptanceIntent связывает платёжную сессию с заявкой до подтверждения оплаты.
// Для бронирования RequestID содержит зарезервированный ID будущей заявки.
type AcceptanceIntent struct {
	ID             uuid.UUID
	Kind           valueobject.IntentKind
	RequestID      uuid.UUID
	BidID          *uuid.UUID
	OwnerID        uuid.UUID
	PhotographerID uuid.UUID
	Title          string
	Description    string
	Breakdown      valueobject.FeeBreakdown
	ClientSecret   string
	Status         valueobject.IntentStatus
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func NewBidAcceptanceIntent(request *Request, bid *Bid, ttl time.Duration) *AcceptanceIntent {
	now := time.Now()
	bidID := bid.ID
	return &AcceptanceIntent{
		ID:             uuid.New(),
		Kind:           valueobject.IntentKindBid,
		RequestID:      request.ID,
		BidID:          &bidID,
		OwnerID:        request.OwnerID,
		PhotographerID: bid.BidderID,
		Breakdown:      valueobject.NewFeeBreakdown(bid.Amount),
		Status:         valueobject.IntentStatusPending,
		ExpiresAt:      now.Add(ttl),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func NewBookingIntent(ownerID, photographerID uuid.UUID, title, description string, budget valueobject.Money, ttl time.Duration) (*AcceptanceIntent, error) {
	if ownerID == photographerID {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя забронировать самого себя")
	}
	if err := validateRequestFields(title, description, budget); err != nil {
		return nil, err
	}
	now := time.Now()
	return &AcceptanceIntent{
		ID:             uuid.New(),
		Kind:           valueobject.IntentKindBooking,
		RequestID:      uuid.New(),
		OwnerID:        ownerID,
		PhotographerID: photographerID,
		Title:          title,
		Description:    description,
		Breakdown:      valueobject.NewFeeBreakdown(budget),
		Status:         valueobject.IntentStatusPending,
		ExpiresAt:      now.Add(ttl),
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (i *AcceptanceIntent) IsExpired(now time.Time) bool {
	return i.Status == valueobject.IntentStatusPending && now.After(i.ExpiresAt)
}

// PaymentReference: идентификатор платежа у провайдера, префикс client secret до "_secret_".
func (i *AcceptanceIntent) PaymentReference() string {
	if idx := strings.Index(i.ClientSecret, "_secret_"); idx > 0 {
		return i.ClientSecret[:idx]
	}
	return i.ClientSecret
}
