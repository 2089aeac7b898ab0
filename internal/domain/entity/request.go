package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/photomarket-backend/internal/validation"
)

// Request: заявка клиента на съёмку.
type Request struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Description string
	Budget      valueobject.Money
	Status      valueobject.RequestStatus

	// RequestedPhotographerID заполняется только для прямого бронирования.
	RequestedPhotographerID *uuid.UUID
	HiredPhotographerID     *uuid.UUID
	AcceptedBidID           *uuid.UUID
	AcceptedBidAmount       *valueobject.Money
	ProjectChatRoomID       *uuid.UUID

	UnreadBidCount          int
	DisputeResolution       *valueobject.DisputeResolution
	OwnerHasReviewed        bool
	PhotographerHasReviewed bool
	DeliveredFiles          []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewRequest(ownerID uuid.UUID, title, description string, budget valueobject.Money) (*Request, error) {
	if err := validateRequestFields(title, description, budget); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Request{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Budget:      budget,
		Status:      valueobject.RequestStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// NewDirectBooking создаёт заявку, адресованную конкретному фотографу; она ждёт одобрения администратора.
func NewDirectBooking(id, ownerID, photographerID uuid.UUID, title, description string, budget valueobject.Money) (*Request, error) {
	if ownerID == photographerID {
		return nil, apperror.New(apperror.ErrCodeValidation, "нельзя забронировать самого себя")
	}
	if err := validateRequestFields(title, description, budget); err != nil {
		return nil, err
	}

	now := time.Now()
	return &Request{
		ID:                      id,
		OwnerID:                 ownerID,
		Title:                   title,
		Description:             description,
		Budget:                  budget,
		Status:                  valueobject.RequestStatusPending,
		RequestedPhotographerID: &photographerID,
		CreatedAt:               now,
		UpdatedAt:               now,
	}, nil
}

func validateRequestFields(title, description string, budget valueobject.Money) error {
	if _, err := validation.ValidateText("название заявки", title, true, validation.MaxRequestTitleLength); err != nil {
		return err
	}
	if err := validation.ValidateLength("описание", description, 0, validation.MaxRequestDescriptionLength); err != nil {
		return err
	}
	if !budget.IsPositive() {
		return apperror.New(apperror.ErrCodeValidation, "бюджет должен быть больше нуля")
	}
	return nil
}

func (r *Request) IsOwnedBy(userID uuid.UUID) bool {
	return r.OwnerID == userID
}

func (r *Request) IsHired(userID uuid.UUID) bool {
	return r.HiredPhotographerID != nil && *r.HiredPhotographerID == userID
}

func (r *Request) IsParticipant(userID uuid.UUID) bool {
	return r.IsOwnedBy(userID) || r.IsHired(userID)
}

// CounterpartOf возвращает вторую сторону проекта.
func (r *Request) CounterpartOf(userID uuid.UUID) (uuid.UUID, bool) {
	if r.HiredPhotographerID == nil {
		return uuid.Nil, false
	}
	switch userID {
	case r.OwnerID:
		return *r.HiredPhotographerID, true
	case *r.HiredPhotographerID:
		return r.OwnerID, true
	}
	return uuid.Nil, false
}

func (r *Request) transition(to valueobject.RequestStatus) error {
	if !r.Status.CanTransitionTo(to) {
		return valueobject.TransitionError(r.Status, to)
	}
	r.Status = to
	r.UpdatedAt = time.Now()
	return nil
}

// Hire переводит заявку в работу. Исполнитель и сумма выставляются только вместе.
func (r *Request) Hire(photographerID uuid.UUID, bidID *uuid.UUID, amount valueobject.Money, chatRoomID uuid.UUID) error {
	if r.Status != valueobject.RequestStatusOpen && r.Status != valueobject.RequestStatusPending {
		return apperror.ErrRequestAlreadyAccepted
	}
	if photographerID == r.OwnerID {
		return apperror.New(apperror.ErrCodeValidation, "нельзя нанять самого себя")
	}
	if !amount.IsPositive() {
		return apperror.New(apperror.ErrCodeValidation, "сумма оплаты должна быть больше нуля")
	}
	if err := r.transition(valueobject.RequestStatusInProgress); err != nil {
		return err
	}

	r.HiredPhotographerID = &photographerID
	r.AcceptedBidID = bidID
	r.AcceptedBidAmount = &amount
	r.ProjectChatRoomID = &chatRoomID
	r.UnreadBidCount = 0
	return nil
}

// CanDeliver проверяет, что photographerID нанят и заявка принимает файлы.
func (r *Request) CanDeliver(photographerID uuid.UUID) error {
	if !r.IsHired(photographerID) {
		return apperror.New(apperror.ErrCodeForbidden, "сдавать работу может только нанятый фотограф")
	}
	switch r.Status {
	case valueobject.RequestStatusInProgress, valueobject.RequestStatusDelivered:
		return nil
	default:
		return valueobject.TransitionError(r.Status, valueobject.RequestStatusDelivered)
	}
}

// Deliver добавляет файлы. Первая сдача переводит заявку в delivered, последующие только дополняют список.
func (r *Request) Deliver(photographerID uuid.UUID, files []string) error {
	if err := r.CanDeliver(photographerID); err != nil {
		return err
	}
	if len(files) == 0 {
		return apperror.New(apperror.ErrCodeValidation, "нужно приложить хотя бы один файл")
	}

	if r.Status == valueobject.RequestStatusInProgress {
		if err := r.transition(valueobject.RequestStatusDelivered); err != nil {
			return err
		}
	} else {
		r.UpdatedAt = time.Now()
	}

	r.DeliveredFiles = append(r.DeliveredFiles, files...)
	return nil
}

// PaymentAmount возвращает сумму к выплате исполнителю: принятую ставку, иначе бюджет.
func (r *Request) PaymentAmount() (valueobject.Money, error) {
	if r.HiredPhotographerID == nil {
		return 0, apperror.ErrPaymentDataIncomplete
	}
	if r.AcceptedBidAmount != nil && r.AcceptedBidAmount.IsPositive() {
		return *r.AcceptedBidAmount, nil
	}
	if r.Budget.IsPositive() {
		return r.Budget, nil
	}
	return 0, apperror.ErrPaymentDataIncomplete
}

// ApproveDelivery закрывает проект по решению клиента.
func (r *Request) ApproveDelivery(ownerID uuid.UUID) (valueobject.Money, error) {
	if !r.IsOwnedBy(ownerID) {
		return 0, apperror.New(apperror.ErrCodeForbidden, "принять работу может только автор заявки")
	}
	if r.Status != valueobject.RequestStatusDelivered {
		return 0, valueobject.TransitionError(r.Status, valueobject.RequestStatusCompleted)
	}
	amount, err := r.PaymentAmount()
	if err != nil {
		return 0, err
	}
	if err := r.transition(valueobject.RequestStatusCompleted); err != nil {
		return 0, err
	}

	r.OwnerHasReviewed = false
	r.PhotographerHasReviewed = false
	return amount, nil
}

// OpenDispute только меняет статус, деньги не двигаются.
func (r *Request) OpenDispute(reporterID uuid.UUID) error {
	if !r.IsParticipant(reporterID) {
		return apperror.New(apperror.ErrCodeForbidden, "открыть спор может только участник проекта")
	}
	if r.Status != valueobject.RequestStatusInProgress && r.Status != valueobject.RequestStatusDelivered {
		return valueobject.TransitionError(r.Status, valueobject.RequestStatusDisputed)
	}
	return r.transition(valueobject.RequestStatusDisputed)
}

// ResolveDispute возвращает получателя и сумму зачисления.
func (r *Request) ResolveDispute(outcome valueobject.DisputeOutcome) (uuid.UUID, valueobject.Money, error) {
	if r.Status != valueobject.RequestStatusDisputed {
		return uuid.Nil, 0, valueobject.TransitionError(r.Status, valueobject.RequestStatusCompleted)
	}
	amount, err := r.PaymentAmount()
	if err != nil {
		return uuid.Nil, 0, err
	}
	if err := r.transition(valueobject.RequestStatusCompleted); err != nil {
		return uuid.Nil, 0, err
	}

	resolution := outcome.Resolution()
	r.DisputeResolution = &resolution

	if outcome == valueobject.DisputeOutcomePay {
		return *r.HiredPhotographerID, amount, nil
	}
	return r.OwnerID, amount, nil
}

// Disable необратимо отключает заявку. refund > 0, если клиенту нужно вернуть удержанные средства.
// HoldsFunds сообщает, удержаны ли деньги клиента. Прямое бронирование в pending уже оплачено.
func (r *Request) HoldsFunds() bool {
	if r.Status == valueobject.RequestStatusPending {
		return r.RequestedPhotographerID != nil
	}
	return r.Status.HoldsFunds()
}

func (r *Request) Disable() (refund valueobject.Money, err error) {
	holds := r.HoldsFunds()
	if err := r.transition(valueobject.RequestStatusDisabled); err != nil {
		return 0, err
	}
	if !holds {
		return 0, nil
	}
	if r.AcceptedBidAmount != nil && r.AcceptedBidAmount.IsPositive() {
		return *r.AcceptedBidAmount, nil
	}
	return r.Budget, nil
}

// MarkReviewed отмечает, что участник оставил отзыв, и возвращает того, о ком он.
func (r *Request) MarkReviewed(reviewerID uuid.UUID) (uuid.UUID, error) {
	if r.Status != valueobject.RequestStatusCompleted {
		return uuid.Nil, apperror.New(apperror.ErrCodeValidation, "отзыв можно оставить только по завершённой заявке")
	}
	target, ok := r.CounterpartOf(reviewerID)
	if !ok {
		return uuid.Nil, apperror.New(apperror.ErrCodeForbidden, "оставить отзыв может только участник проекта")
	}

	if r.IsOwnedBy(reviewerID) {
		if r.OwnerHasReviewed {
			return uuid.Nil, apperror.ErrAlreadyReviewed
		}
		r.OwnerHasReviewed = true
	} else {
		if r.PhotographerHasReviewed {
			return uuid.Nil, apperror.ErrAlreadyReviewed
		}
		r.PhotographerHasReviewed = true
	}
	r.UpdatedAt = time.Now()
	return target, nil
}
