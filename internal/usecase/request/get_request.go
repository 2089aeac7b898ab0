package request

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
)

type GetRequestInput struct {
	RequestID uuid.UUID
	CallerID  uuid.UUID
	IsAdmin   bool
}

type GetRequestUseCase struct {
	requestRepo repository.RequestRepository
}

func NewGetRequestUseCase(requestRepo repository.RequestRepository) *GetRequestUseCase {
	return &GetRequestUseCase{requestRepo: requestRepo}
}

// Execute: открытые заявки видны всем, остальные только участникам и администратору.
func (uc *GetRequestUseCase) Execute(ctx context.Context, input GetRequestInput) (*entity.Request, error) {
	req, err := uc.requestRepo.FindByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}

	if req.Status == valueobject.RequestStatusOpen || input.IsAdmin || req.IsParticipant(input.CallerID) {
		return req, nil
	}
	if req.RequestedPhotographerID != nil && *req.RequestedPhotographerID == input.CallerID {
		return req, nil
	}
	return nil, apperror.ErrRequestNotFound
}

type ListOpenRequestsUseCase struct {
	requestRepo repository.RequestRepository
}

func NewListOpenRequestsUseCase(requestRepo repository.RequestRepository) *ListOpenRequestsUseCase {
	return &ListOpenRequestsUseCase{requestRepo: requestRepo}
}

func (uc *ListOpenRequestsUseCase) Execute(ctx context.Context, limit, offset int) ([]*entity.Request, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.requestRepo.ListOpen(ctx, limit, offset)
}

type ListMyRequestsUseCase struct {
	requestRepo repository.RequestRepository
}

func NewListMyRequestsUseCase(requestRepo repository.RequestRepository) *ListMyRequestsUseCase {
	return &ListMyRequestsUseCase{requestRepo: requestRepo}
}

func (uc *ListMyRequestsUseCase) Execute(ctx context.Context, userID uuid.UUID) ([]*entity.Request, error) {
	return uc.requestRepo.ListForUser(ctx, userID)
}

// ListByStatusUseCase: админская выборка, например ожидающих одобрения бронирований.
type ListByStatusUseCase struct {
	requestRepo repository.RequestRepository
}

func NewListByStatusUseCase(requestRepo repository.RequestRepository) *ListByStatusUseCase {
	return &ListByStatusUseCase{requestRepo: requestRepo}
}

func (uc *ListByStatusUseCase) Execute(ctx context.Context, status string, limit, offset int) ([]*entity.Request, error) {
	s, err := valueobject.NewRequestStatus(status)
	if err != nil {
		return nil, err
	}
	return uc.requestRepo.ListByStatus(ctx, s, limit, offset)
}
