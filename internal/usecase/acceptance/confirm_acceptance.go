package acceptance

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/logger"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type ConfirmAcceptanceUseCase struct {
	txManager      repository.TxManager
	requestRepo    repository.RequestRepository
	bidRepo        repository.BidRepository
	chatRepo       repository.ChatRepository
	profileRepo    repository.ProfileRepository
	escrowRepo     repository.EscrowRepository
	acceptanceRepo repository.AcceptanceRepository
	notifier       gateway.Notifier
}

func NewConfirmAcceptanceUseCase(
	txManager repository.TxManager,
	requestRepo repository.RequestRepository,
	bidRepo repository.BidRepository,
	chatRepo repository.ChatRepository,
	profileRepo repository.ProfileRepository,
	escrowRepo repository.EscrowRepository,
	acceptanceRepo repository.AcceptanceRepository,
	notifier gateway.Notifier,
) *ConfirmAcceptanceUseCase {
	return &ConfirmAcceptanceUseCase{
		txManager:      txManager,
		requestRepo:    requestRepo,
		bidRepo:        bidRepo,
		chatRepo:       chatRepo,
		profileRepo:    profileRepo,
		escrowRepo:     escrowRepo,
		acceptanceRepo: acceptanceRepo,
		notifier:       notifier,
	}
}

// Execute вызывается после успешной оплаты на клиенте. Повтор для подтверждённого handle
// возвращает ту же заявку.
func (uc *ConfirmAcceptanceUseCase) Execute(ctx context.Context, handle, callerID uuid.UUID) (*entity.Request, error) {
	intent, err := uc.acceptanceRepo.FindByID(ctx, handle)
	if err != nil {
		return nil, err
	}
	if intent.OwnerID != callerID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "подтвердить оплату может только плательщик")
	}

	// Просроченная сессия могла быть оплачена по старому client secret. Подтверждение
	// защищено тем же условным переходом заявки, проигрыш попадёт в handleFailure с логом.
	switch intent.Status {
	case valueobject.IntentStatusConfirmed:
		return uc.requestRepo.FindByID(ctx, intent.RequestID)
	case valueobject.IntentStatusPending, valueobject.IntentStatusExpired:
	default:
		return nil, apperror.NoLongerAvailable("платёжная сессия больше не действительна")
	}
	from := intent.Status

	var req *entity.Request
	err = uc.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		var txErr error
		if intent.Kind == valueobject.IntentKindBooking {
			req, txErr = uc.createBooking(ctx, intent)
		} else {
			req, txErr = uc.hireBidder(ctx, intent)
		}
		if txErr != nil {
			return txErr
		}
		return uc.acceptanceRepo.TransitionStatus(ctx, intent.ID, from, valueobject.IntentStatusConfirmed)
	})
	if err != nil {
		return uc.handleFailure(ctx, intent, err)
	}

	uc.notifyConfirmed(ctx, intent, req)
	return req, nil
}

// hireBidder переводит заявку в работу по оплаченной ставке.
func (uc *ConfirmAcceptanceUseCase) hireBidder(ctx context.Context, intent *entity.AcceptanceIntent) (*entity.Request, error) {
	if intent.BidID == nil {
		return nil, apperror.ErrPaymentDataIncomplete
	}
	bid, err := uc.bidRepo.FindByIDForUpdate(ctx, *intent.BidID)
	if err != nil {
		return nil, err
	}
	if !bid.IsActive() {
		return nil, apperror.ErrBidNoLongerActive
	}

	req, err := uc.requestRepo.FindByID(ctx, intent.RequestID)
	if err != nil {
		return nil, err
	}
	if req.Status != valueobject.RequestStatusOpen {
		return nil, apperror.ErrRequestAlreadyAccepted
	}

	room, err := entity.NewProjectChatRoom(req.ID, req.OwnerID, bid.BidderID)
	if err != nil {
		return nil, err
	}
	if err := uc.chatRepo.CreateRoom(ctx, room); err != nil {
		return nil, err
	}

	if err := req.Hire(bid.BidderID, &bid.ID, bid.Amount, room.ID); err != nil {
		return nil, err
	}
	if err := uc.requestRepo.UpdateIfStatus(ctx, req, valueobject.RequestStatusOpen); err != nil {
		return nil, err
	}
	if err := uc.requestRepo.ResetUnreadBids(ctx, req.ID); err != nil {
		return nil, err
	}
	if err := uc.profileRepo.IncrementCounter(ctx, bid.BidderID, entity.CounterNewGigs, 1); err != nil {
		return nil, err
	}

	payment := entity.NewEscrowPayment(req.ID, bid.BidderID, bid.Amount, valueobject.EscrowStatusPending, intent.PaymentReference())
	if err := uc.escrowRepo.Record(ctx, payment); err != nil {
		return nil, err
	}
	return req, nil
}

// createBooking создаёт оплаченное прямое бронирование, ожидающее одобрения администратора.
func (uc *ConfirmAcceptanceUseCase) createBooking(ctx context.Context, intent *entity.AcceptanceIntent) (*entity.Request, error) {
	req, err := entity.NewDirectBooking(intent.RequestID, intent.OwnerID, intent.PhotographerID,
		intent.Title, intent.Description, intent.Breakdown.Amount)
	if err != nil {
		return nil, err
	}
	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	payment := entity.NewEscrowPayment(req.ID, intent.PhotographerID, req.Budget, valueobject.EscrowStatusPending, intent.PaymentReference())
	if err := uc.escrowRepo.Record(ctx, payment); err != nil {
		return nil, err
	}
	return uc.requestRepo.FindByID(ctx, req.ID)
}

// handleFailure: деньги клиента уже списаны, поэтому любая неудача логируется с платёжной ссылкой.
func (uc *ConfirmAcceptanceUseCase) handleFailure(ctx context.Context, intent *entity.AcceptanceIntent, err error) (*entity.Request, error) {
	fields := logrus.Fields{
		"payment_ref":   intent.PaymentReference(),
		"request_id":    intent.RequestID,
		"intent_id":     intent.ID,
		"intent_status": intent.Status,
	}

	if apperror.IsRaceLost(err) {
		// параллельный confirm того же handle мог успеть раньше
		if current, findErr := uc.acceptanceRepo.FindByID(ctx, intent.ID); findErr == nil && current.Status == valueobject.IntentStatusConfirmed {
			return uc.requestRepo.FindByID(ctx, intent.RequestID)
		}
		logger.Log.WithFields(fields).WithError(err).Error("payment captured but acceptance lost the race, refund required")
		return nil, err
	}

	logger.Log.WithFields(fields).WithError(err).Error("RECONCILIATION GAP: payment captured but project was not created")
	return nil, apperror.ReconciliationGap(err)
}

func (uc *ConfirmAcceptanceUseCase) notifyConfirmed(ctx context.Context, intent *entity.AcceptanceIntent, req *entity.Request) {
	if intent.Kind == valueobject.IntentKindBooking {
		uc.notifier.Notify(ctx, intent.PhotographerID, entity.RequestNotification(
			entity.NotificationBookingCreated, "Новое бронирование", "Клиент забронировал вас: «"+req.Title+"»", req.ID))
		return
	}
	uc.notifier.Notify(ctx, intent.PhotographerID, entity.RequestNotification(
		entity.NotificationHired, "Вас наняли", "Ваша ставка по «"+req.Title+"» принята", req.ID))
	uc.notifier.Notify(ctx, req.OwnerID, entity.RequestNotification(
		entity.NotificationProjectStarted, "Проект начат", "Оплата прошла, чат проекта открыт", req.ID))
}
