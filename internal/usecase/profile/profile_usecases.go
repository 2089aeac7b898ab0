package profile

import (
	"context"

	"github.com/google/uuid"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/repository"
	"github.com/ignatzorin/photomarket-backend/internal/validation"
)

type GetMeUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewGetMeUseCase(profileRepo repository.ProfileRepository) *GetMeUseCase {
	return &GetMeUseCase{profileRepo: profileRepo}
}

// Execute создаёт профиль при первом входе. Роль и баланс существующего профиля не меняются.
func (uc *GetMeUseCase) Execute(ctx context.Context, identity entity.Identity) (*entity.Profile, error) {
	return uc.profileRepo.Ensure(ctx, entity.NewProfileFromIdentity(identity))
}

type GetProfileUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewGetProfileUseCase(profileRepo repository.ProfileRepository) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: profileRepo}
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uuid.UUID) (*entity.Profile, error) {
	return uc.profileRepo.FindByID(ctx, userID)
}

type UpdateMeInput struct {
	UserID      uuid.UUID
	DisplayName string
	IsAvailable bool
}

type UpdateMeUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewUpdateMeUseCase(profileRepo repository.ProfileRepository) *UpdateMeUseCase {
	return &UpdateMeUseCase{profileRepo: profileRepo}
}

func (uc *UpdateMeUseCase) Execute(ctx context.Context, input UpdateMeInput) (*entity.Profile, error) {
	name, err := validation.ValidateText("имя", input.DisplayName, true, validation.MaxDisplayNameLength)
	if err != nil {
		return nil, err
	}
	if err := uc.profileRepo.UpdateDetails(ctx, input.UserID, name, input.IsAvailable); err != nil {
		return nil, err
	}
	return uc.profileRepo.FindByID(ctx, input.UserID)
}

type ResetCounterUseCase struct {
	profileRepo repository.ProfileRepository
}

func NewResetCounterUseCase(profileRepo repository.ProfileRepository) *ResetCounterUseCase {
	return &ResetCounterUseCase{profileRepo: profileRepo}
}

// Execute обнуляет бейдж, например после просмотра списка новых проектов.
func (uc *ResetCounterUseCase) Execute(ctx context.Context, userID uuid.UUID, counterName string) error {
	counter, err := entity.NewProfileCounter(counterName)
	if err != nil {
		return err
	}
	return uc.profileRepo.ResetCounter(ctx, userID, counter)
}
