package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

var escrowNamespace = uuid.MustParse("b3a8e9f2-41c6-4d7e-8f25-0c9d6a1e7b34")

// EscrowPayment: запись о движении денег по заявке. Только добавляется, одна запись на статус.
type EscrowPayment struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	PayeeID    uuid.UUID
	Amount     valueobject.Money
	Status     valueobject.EscrowStatus
	PaymentRef string
	PaidAt     time.Time
}

// NewEscrowPayment выводит ID из заявки и статуса, повторная запись того же движения игнорируется.
func NewEscrowPayment(requestID, payeeID uuid.UUID, amount valueobject.Money, status valueobject.EscrowStatus, paymentRef string) *EscrowPayment {
	return &EscrowPayment{
		ID:         uuid.NewSHA1(escrowNamespace, []byte(requestID.String()+":"+string(status))),
		RequestID:  requestID,
		PayeeID:    payeeID,
		Amount:     amount,
		Status:     status,
		PaymentRef: paymentRef,
		PaidAt:     time.Now(),
	}
}
