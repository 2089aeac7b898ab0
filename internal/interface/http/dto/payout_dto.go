package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
)

type ConnectAccountResponse struct {
	URL string `json:"url"`
}

type PayoutResponse struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	TransferID  *string    `json:"transfer_id"`
	RequestedAt time.Time  `json:"requested_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func ToPayoutResponse(p *entity.PayoutRequest) PayoutResponse {
	return PayoutResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Amount:      p.Amount.Float64(),
		Status:      string(p.Status),
		TransferID:  p.TransferID,
		RequestedAt: p.RequestedAt,
		CompletedAt: p.CompletedAt,
	}
}

func ToPayoutResponses(payouts []*entity.PayoutRequest) []PayoutResponse {
	out := make([]PayoutResponse, 0, len(payouts))
	for _, p := range payouts {
		out = append(out, ToPayoutResponse(p))
	}
	return out
}

type EscrowPaymentResponse struct {
	ID         uuid.UUID `json:"id"`
	RequestID  uuid.UUID `json:"request_id"`
	Amount     float64   `json:"amount"`
	Status     string    `json:"status"`
	PaymentRef string    `json:"payment_ref"`
	PaidAt     time.Time `json:"paid_at"`
}

func ToEscrowPaymentResponses(payments []*entity.EscrowPayment) []EscrowPaymentResponse {
	out := make([]EscrowPaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, EscrowPaymentResponse{
			ID:         p.ID,
			RequestID:  p.RequestID,
			Amount:     p.Amount.Float64(),
			Status:     string(p.Status),
			PaymentRef: p.PaymentRef,
			PaidAt:     p.PaidAt,
		})
	}
	return out
}
