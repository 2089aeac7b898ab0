package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	ListByReviewee(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Review, error)
	ListByRequest(ctx context.Context, requestID uuid.UUID) ([]*entity.Review, error)
}

type ReportRepository interface {
	Create(ctx context.Context, report *entity.Report) error
	List(ctx context.Context, limit, offset int) ([]*entity.Report, error)
}
