package valueobject

import (
	"fmt"

	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusOpen       RequestStatus = "open"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusDelivered  RequestStatus = "delivered"
	RequestStatusDisputed   RequestStatus = "disputed"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusDisabled   RequestStatus = "disabled"
)

// requestTransitions: единственная таблица допустимых переходов заявки.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:    {RequestStatusInProgress, RequestStatusDisabled},
	RequestStatusOpen:       {RequestStatusInProgress, RequestStatusDisabled},
	RequestStatusInProgress: {RequestStatusDelivered, RequestStatusDisputed, RequestStatusDisabled},
	RequestStatusDelivered:  {RequestStatusCompleted, RequestStatusDisputed, RequestStatusDisabled},
	RequestStatusDisputed:   {RequestStatusCompleted, RequestStatusDisabled},
	RequestStatusCompleted:  {},
	RequestStatusDisabled:   {},
}

func (s RequestStatus) IsValid() bool {
	_, ok := requestTransitions[s]
	return ok
}

func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusDisabled
}

// HoldsFunds: в этих статусах деньги клиента удержаны и при отключении возвращаются.
func (s RequestStatus) HoldsFunds() bool {
	switch s {
	case RequestStatusInProgress, RequestStatusDelivered, RequestStatusDisputed:
		return true
	}
	return false
}

func (s RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	for _, status := range requestTransitions[s] {
		if status == newStatus {
			return true
		}
	}
	return false
}

// TransitionError возвращается при попытке недопустимого перехода.
func TransitionError(from, to RequestStatus) error {
	return apperror.New(apperror.ErrCodeValidation,
		fmt.Sprintf("переход заявки из статуса %q в %q недопустим", from, to))
}

func NewRequestStatus(status string) (RequestStatus, error) {
	s := RequestStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус заявки")
	}
	return s, nil
}

type BidStatus string

const (
	BidStatusActive    BidStatus = "active"
	BidStatusCancelled BidStatus = "cancelled"
)

func (s BidStatus) IsValid() bool {
	switch s {
	case BidStatusActive, BidStatusCancelled:
		return true
	}
	return false
}

func NewBidStatus(status string) (BidStatus, error) {
	s := BidStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "некорректный статус ставки")
	}
	return s, nil
}

type PayoutStatus string

const (
	PayoutStatusPending   PayoutStatus = "pending"
	PayoutStatusCompleted PayoutStatus = "completed"
)

type EscrowStatus string

const (
	EscrowStatusPending  EscrowStatus = "pending"
	EscrowStatusReleased EscrowStatus = "released"
	EscrowStatusRefunded EscrowStatus = "refunded"
)

type DisputeResolution string

const (
	DisputeResolutionRefunded DisputeResolution = "refunded"
	DisputeResolutionPaid     DisputeResolution = "paid"
)

// DisputeOutcome: решение администратора по спору.
type DisputeOutcome string

const (
	DisputeOutcomeRefund DisputeOutcome = "refund"
	DisputeOutcomePay    DisputeOutcome = "pay"
)

func NewDisputeOutcome(outcome string) (DisputeOutcome, error) {
	switch DisputeOutcome(outcome) {
	case DisputeOutcomeRefund, DisputeOutcomePay:
		return DisputeOutcome(outcome), nil
	}
	return "", apperror.New(apperror.ErrCodeValidation, "решение по спору должно быть refund или pay")
}

func (o DisputeOutcome) Resolution() DisputeResolution {
	if o == DisputeOutcomePay {
		return DisputeResolutionPaid
	}
	return DisputeResolutionRefunded
}

type IntentStatus string

const (
	IntentStatusPending   IntentStatus = "pending"
	IntentStatusConfirmed IntentStatus = "confirmed"
	IntentStatusFailed    IntentStatus = "failed"
	IntentStatusExpired   IntentStatus = "expired"
)

type IntentKind string

const (
	IntentKindBid     IntentKind = "bid"
	IntentKindBooking IntentKind = "booking"
)

type Role string

const (
	RoleClient       Role = "client"
	RolePhotographer Role = "photographer"
	RoleAdmin        Role = "admin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
