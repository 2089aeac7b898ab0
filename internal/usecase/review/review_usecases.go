package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
)

type SubmitReviewInput struct {
	RequestID  uuid.UUID
	ReviewerID uuid.UUID
	Rating     int
	Comment    string
}

type SubmitReviewUseCase struct {
	txManager   repository.TxManager
	requestRepo repository.RequestRepository
	reviewRepo  repository.ReviewRepository
	profileRepo repository.ProfileRepository
	notifier    gateway.Notifier
}

func NewSubmitReviewUseCase(
	txManager repository.TxManager,
	requestRepo repository.RequestRepository,
	reviewRepo repository.ReviewRepository,
	profileRepo repository.ProfileRepository,
	notifier gateway.Notifier,
) *SubmitReviewUseCase {
	return &SubmitReviewUseCase{
		txManager:   txManager,
		requestRepo: requestRepo,
		reviewRepo:  reviewRepo,
		profileRepo: profileRepo,
		notifier:    notifier,
	}
}

// Execute сохраняет отзыв о второй стороне завершённого проекта. Каждая сторона пишет не больше одного.
func (uc *SubmitReviewUseCase) Execute(ctx context.Context, input SubmitReviewInput) (*entity.Review, error) {
	req, err := uc.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	revieweeID, err := req.MarkReviewed(input.ReviewerID)
	if err != nil {
		return nil, err
	}
	review, err := entity.NewReview(req.ID, input.ReviewerID, revieweeID, input.Rating, input.Comment)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.requestRepo.MarkReviewed(ctx, req.ID, req.IsOwnedBy(input.ReviewerID)); err != nil {
			return err
		}
		if err := uc.reviewRepo.Create(ctx, review); err != nil {
			return err
		}
		return uc.profileRepo.IncrementCounter(ctx, input.ReviewerID, entity.CounterPendingReviews, -1)
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, revieweeID, entity.RequestNotification(entity.NotificationReviewReceived,
		"Новый отзыв", "Вам оставили отзыв по проекту «"+req.Title+"»", req.ID))
	return review, nil
}

type ListReviewsUseCase struct {
	reviewRepo repository.ReviewRepository
}

func NewListReviewsUseCase(reviewRepo repository.ReviewRepository) *ListReviewsUseCase {
	return &ListReviewsUseCase{reviewRepo: reviewRepo}
}

func (uc *ListReviewsUseCase) Execute(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.reviewRepo.ListByReviewee(ctx, userID, limit, offset)
}
