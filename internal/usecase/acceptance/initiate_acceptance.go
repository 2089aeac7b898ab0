package acceptance

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/logger"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type InitiateAcceptanceInput struct {
	RequestID uuid.UUID
	BidID     uuid.UUID
	CallerID  uuid.UUID
}

// Checkout отдаётся клиенту для оплаты. Handle нужен для подтверждения.
type Checkout struct {
	Handle       uuid.UUID
	ClientSecret string
	Breakdown    valueobject.FeeBreakdown
	RequestID    uuid.UUID
}

type InitiateAcceptanceUseCase struct {
	requestRepo    repository.RequestRepository
	bidRepo        repository.BidRepository
	acceptanceRepo repository.AcceptanceRepository
	payments       gateway.PaymentGateway
	intentTTL      time.Duration
	now            func() time.Time
}

func NewInitiateAcceptanceUseCase(
	requestRepo repository.RequestRepository,
	bidRepo repository.BidRepository,
	acceptanceRepo repository.AcceptanceRepository,
	payments gateway.PaymentGateway,
	intentTTL time.Duration,
) *InitiateAcceptanceUseCase {
	return &InitiateAcceptanceUseCase{
		requestRepo:    requestRepo,
		bidRepo:        bidRepo,
		acceptanceRepo: acceptanceRepo,
		payments:       payments,
		intentTTL:      intentTTL,
		now:            time.Now,
	}
}

func (uc *InitiateAcceptanceUseCase) Execute(ctx context.Context, input InitiateAcceptanceInput) (*Checkout, error) {
	req, err := uc.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if !req.IsOwnedBy(input.CallerID) {
		return nil, apperror.New(apperror.ErrCodeForbidden, "принять ставку может только автор заявки")
	}
	if req.Status != valueobject.RequestStatusOpen {
		return nil, apperror.ErrRequestAlreadyAccepted
	}

	bid, err := uc.bidRepo.FindByID(ctx, input.BidID)
	if err != nil {
		return nil, err
	}
	if bid.RequestID != req.ID {
		return nil, apperror.ErrBidNotFound
	}
	if !bid.IsActive() {
		return nil, apperror.ErrBidNoLongerActive
	}

	intent := entity.NewBidAcceptanceIntent(req, bid, uc.intentTTL)
	if err := reserveIntent(ctx, uc.acceptanceRepo, intent, uc.now()); err != nil {
		return nil, err
	}
	return startPayment(ctx, uc.acceptanceRepo, uc.payments, intent)
}

// reserveIntent снимает просроченное намерение и занимает слот оплаты по заявке.
func reserveIntent(ctx context.Context, repo repository.AcceptanceRepository, intent *entity.AcceptanceIntent, now time.Time) error {
	pending, err := repo.FindPendingByRequest(ctx, intent.RequestID)
	if err != nil {
		return err
	}
	if pending != nil {
		if !pending.IsExpired(now) {
			return apperror.ErrAcceptanceInProgress
		}
		if err := repo.TransitionStatus(ctx, pending.ID, valueobject.IntentStatusPending, valueobject.IntentStatusExpired); err != nil && !apperror.IsRaceLost(err) {
			return err
		}
		if pending.ClientSecret != "" {
			logger.Log.WithFields(logrus.Fields{
				"payment_ref": pending.PaymentReference(),
				"request_id":  pending.RequestID,
				"intent_id":   pending.ID,
			}).Warn("expired intent replaced, its payment may still be captured")
		}
	}
	return repo.Create(ctx, intent)
}

// startPayment запрашивает у моста платёж на полную сумму. При отказе намерение помечается failed.
func startPayment(ctx context.Context, repo repository.AcceptanceRepository, payments gateway.PaymentGateway, intent *entity.AcceptanceIntent) (*Checkout, error) {
	payment, err := payments.CreatePaymentIntent(ctx, intent.Breakdown.Total)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{
			"intent_id":  intent.ID,
			"request_id": intent.RequestID,
			"total":      intent.Breakdown.Total.String(),
		}).WithError(err).Warn("payment bridge rejected intent")

		if tErr := repo.TransitionStatus(context.WithoutCancel(ctx), intent.ID, valueobject.IntentStatusPending, valueobject.IntentStatusFailed); tErr != nil {
			logger.Log.WithField("intent_id", intent.ID).WithError(tErr).Error("failed to mark intent as failed")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodePaymentFailed, "платёжный сервис недоступен, попробуйте позже")
	}

	if err := repo.SetClientSecret(ctx, intent.ID, payment.ClientSecret); err != nil {
		return nil, err
	}
	intent.ClientSecret = payment.ClientSecret

	return &Checkout{
		Handle:       intent.ID,
		ClientSecret: payment.ClientSecret,
		Breakdown:    intent.Breakdown,
		RequestID:    intent.RequestID,
	}, nil
}
