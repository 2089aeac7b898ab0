package profile_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/pkg/apperror"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/profile"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/usecasetest"
)

func TestGetMe_CreatesOnFirstLogin(t *testing.T) {
	repo := usecasetest.NewProfileRepo()
	uc := profile.NewGetMeUseCase(repo)
	identity := entity.Identity{UserID: uuid.New(), Email: "a@example.com", DisplayName: "Анна", Role: valueobject.RolePhotographer}

	p, err := uc.Execute(context.Background(), identity)

	require.NoError(t, err)
	assert.Equal(t, valueobject.RolePhotographer, p.Role)
	assert.True(t, p.IsAvailable)
	assert.Zero(t, p.Balance)
}

func TestGetMe_KeepsBalanceAndRole(t *testing.T) {
	repo := usecasetest.NewProfileRepo()
	uc := profile.NewGetMeUseCase(repo)
	id := uuid.New()
	_, err := uc.Execute(context.Background(), entity.Identity{UserID: id, Role: valueobject.RolePhotographer})
	require.NoError(t, err)
	require.NoError(t, repo.AdjustBalance(context.Background(), id, 500))

	p, err := uc.Execute(context.Background(), entity.Identity{UserID: id, Email: "new@example.com"})

	require.NoError(t, err)
	assert.Equal(t, valueobject.Money(500), p.Balance)
	assert.Equal(t, valueobject.RolePhotographer, p.Role)
	assert.Equal(t, "new@example.com", p.Email)
}

func TestUpdateMe(t *testing.T) {
	repo := usecasetest.NewProfileRepo()
	id := uuid.New()
	_, err := profile.NewGetMeUseCase(repo).Execute(context.Background(), entity.Identity{UserID: id})
	require.NoError(t, err)
	uc := profile.NewUpdateMeUseCase(repo)

	p, err := uc.Execute(context.Background(), profile.UpdateMeInput{UserID: id, DisplayName: " Студия Свет ", IsAvailable: false})
	require.NoError(t, err)
	assert.Equal(t, "Студия Свет", p.DisplayName)
	assert.False(t, p.IsAvailable)

	_, err = uc.Execute(context.Background(), profile.UpdateMeInput{UserID: id, DisplayName: "  "})
	assert.True(t, apperror.IsValidation(err))

	_, err = uc.Execute(context.Background(), profile.UpdateMeInput{UserID: uuid.New(), DisplayName: "x"})
	assert.True(t, apperror.IsNotFound(err))
}

func TestResetCounter(t *testing.T) {
	repo := usecasetest.NewProfileRepo()
	id := uuid.New()
	require.NoError(t, repo.IncrementCounter(context.Background(), id, entity.CounterNewGigs, 3))
	uc := profile.NewResetCounterUseCase(repo)

	require.NoError(t, uc.Execute(context.Background(), id, "new_gig_count"))
	assert.Zero(t, repo.Counter(id, entity.CounterNewGigs))

	err := uc.Execute(context.Background(), id, "balance")
	assert.True(t, apperror.IsValidation(err), "произвольную колонку сбросить нельзя")
}
