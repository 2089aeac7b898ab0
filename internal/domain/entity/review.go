package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/photomarket-backend/internal/validation"
)

type Review struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	ReviewerID uuid.UUID
	RevieweeID uuid.UUID
	Rating     int
	Comment    string
	CreatedAt  time.Time
}

func NewReview(requestID, reviewerID, revieweeID uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, apperror.New(apperror.ErrCodeValidation, "рейтинг должен быть от 1 до 5")
	}
	comment, err := validation.ValidateText("комментарий", comment, false, validation.MaxReviewCommentLength)
	if err != nil {
		return nil, err
	}
	return &Review{
		ID:         uuid.New(),
		RequestID:  requestID,
		ReviewerID: reviewerID,
		RevieweeID: revieweeID,
		Rating:     rating,
		Comment:    comment,
		CreatedAt:  time.Now(),
	}, nil
}
