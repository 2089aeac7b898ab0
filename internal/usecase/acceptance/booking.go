package acceptance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type InitiateBookingInput struct {
	OwnerID        uuid.UUID
	PhotographerID uuid.UUID
	Title          string
	Description    string
	Budget         valueobject.Money
}

type InitiateBookingUseCase struct {
	profileRepo    repository.ProfileRepository
	acceptanceRepo repository.AcceptanceRepository
	payments       gateway.PaymentGateway
	intentTTL      time.Duration
}

func NewInitiateBookingUseCase(
	profileRepo repository.ProfileRepository,
	acceptanceRepo repository.AcceptanceRepository,
	payments gateway.PaymentGateway,
	intentTTL time.Duration,
) *InitiateBookingUseCase {
	return &InitiateBookingUseCase{
		profileRepo:    profileRepo,
		acceptanceRepo: acceptanceRepo,
		payments:       payments,
		intentTTL:      intentTTL,
	}
}

// Execute резервирует ID будущей заявки и запускает оплату бюджета с комиссией.
func (uc *InitiateBookingUseCase) Execute(ctx context.Context, input InitiateBookingInput) (*Checkout, error) {
	photographer, err := uc.profileRepo.FindByID(ctx, input.PhotographerID)
	if err != nil {
		return nil, err
	}
	if photographer.Role != valueobject.RolePhotographer {
		return nil, apperror.New(apperror.ErrCodeValidation, "забронировать можно только фотографа")
	}
	if !photographer.IsAvailable {
		return nil, apperror.New(apperror.ErrCodeValidation, "фотограф сейчас не принимает заказы")
	}

	intent, err := entity.NewBookingIntent(input.OwnerID, input.PhotographerID,
		strings.TrimSpace(input.Title), strings.TrimSpace(input.Description), input.Budget, uc.intentTTL)
	if err != nil {
		return nil, err
	}
	if err := uc.acceptanceRepo.Create(ctx, intent); err != nil {
		return nil, err
	}
	return startPayment(ctx, uc.acceptanceRepo, uc.payments, intent)
}

type ApproveBookingUseCase struct {
	txManager   repository.TxManager
	requestRepo repository.RequestRepository
	chatRepo    repository.ChatRepository
	profileRepo repository.ProfileRepository
	notifier    gateway.Notifier
}

func NewApproveBookingUseCase(
	txManager repository.TxManager,
	requestRepo repository.RequestRepository,
	chatRepo repository.ChatRepository,
	profileRepo repository.ProfileRepository,
	notifier gateway.Notifier,
) *ApproveBookingUseCase {
	return &ApproveBookingUseCase{
		txManager:   txManager,
		requestRepo: requestRepo,
		chatRepo:    chatRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// Execute одобряет прямое бронирование: pending → in_progress с суммой, равной бюджету.
func (uc *ApproveBookingUseCase) Execute(ctx context.Context, requestID uuid.UUID) (*entity.Request, error) {
	req, err := uc.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != valueobject.RequestStatusPending || req.RequestedPhotographerID == nil {
		return nil, valueobject.TransitionError(req.Status, valueobject.RequestStatusInProgress)
	}
	photographerID := *req.RequestedPhotographerID

	room, err := entity.NewProjectChatRoom(req.ID, req.OwnerID, photographerID)
	if err != nil {
		return nil, err
	}
	if err := req.Hire(photographerID, nil, req.Budget, room.ID); err != nil {
		return nil, err
	}

	err = uc.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.chatRepo.CreateRoom(ctx, room); err != nil {
			return err
		}
		if err := uc.requestRepo.UpdateIfStatus(ctx, req, valueobject.RequestStatusPending); err != nil {
			return err
		}
		return uc.profileRepo.IncrementCounter(ctx, photographerID, entity.CounterNewGigs, 1)
	})
	if err != nil {
		return nil, err
	}

	n := entity.RequestNotification(entity.NotificationBookingApproved, "Бронирование одобрено",
		"Проект «"+req.Title+"» начат, чат открыт", req.ID)
	uc.notifier.Notify(ctx, req.OwnerID, n)
	uc.notifier.Notify(ctx, photographerID, n)
	return req, nil
}
