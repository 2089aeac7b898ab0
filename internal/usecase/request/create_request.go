package request

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

type CreateRequestInput struct {
	OwnerID     uuid.UUID
	Title       string
	Description string
	Budget      valueobject.Money
}

type CreateRequestUseCase struct {
	requestRepo repository.RequestRepository
}

func NewCreateRequestUseCase(requestRepo repository.RequestRepository) *CreateRequestUseCase {
	return &CreateRequestUseCase{requestRepo: requestRepo}
}

func (uc *CreateRequestUseCase) Execute(ctx context.Context, input CreateRequestInput) (*entity.Request, error) {
	req, err := entity.NewRequest(input.OwnerID, strings.TrimSpace(input.Title), strings.TrimSpace(input.Description), input.Budget)
	if err != nil {
		return nil, err
	}

	if err := uc.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}
