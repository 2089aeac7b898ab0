package dto

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/acceptance"
)

type AcceptBidRequest struct {
	BidID string `json:"bid_id" binding:"required"`
}

type ConfirmAcceptanceRequest struct {
	Handle string `json:"handle" binding:"required"`
}

type BookingRequest struct {
	PhotographerID string  `json:"photographer_id" binding:"required"`
	Title          string  `json:"title" binding:"required"`
	Description    string  `json:"description"`
	Budget         float64 `json:"budget" binding:"required,gt=0"`
}

// FeeBreakdownDTO отдаёт суммы и в долларах, и в центах. Клиент оплаты работает с центами.
type FeeBreakdownDTO struct {
	Amount      float64 `json:"amount"`
	Fee         float64 `json:"fee"`
	Total       float64 `json:"total"`
	AmountCents int64   `json:"amount_cents"`
	FeeCents    int64   `json:"fee_cents"`
	TotalCents  int64   `json:"total_cents"`
}

func ToFeeBreakdownDTO(b valueobject.FeeBreakdown) FeeBreakdownDTO {
	return FeeBreakdownDTO{
		Amount:      b.Amount.Float64(),
		Fee:         b.Fee.Float64(),
		Total:       b.Total.Float64(),
		AmountCents: b.Amount.Cents(),
		FeeCents:    b.Fee.Cents(),
		TotalCents:  b.Total.Cents(),
	}
}

type CheckoutResponse struct {
	Handle       uuid.UUID       `json:"handle"`
	ClientSecret string          `json:"client_secret"`
	RequestID    uuid.UUID       `json:"request_id"`
	Breakdown    FeeBreakdownDTO `json:"breakdown"`
}

func ToCheckoutResponse(c *acceptance.Checkout) CheckoutResponse {
	return CheckoutResponse{
		Handle:       c.Handle,
		ClientSecret: c.ClientSecret,
		RequestID:    c.RequestID,
		Breakdown:    ToFeeBreakdownDTO(c.Breakdown),
	}
}
