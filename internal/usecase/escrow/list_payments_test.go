package escrow_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/photomarket-backend/internal/domain/entity"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/escrow"
	"github.com/ignatzorin/photomarket-backend/internal/usecase/usecasetest"
)

func TestListMyPayments(t *testing.T) {
	repo := usecasetest.NewEscrowRepo()
	ctx := context.Background()
	requestID, photographer, owner := uuid.New(), uuid.New(), uuid.New()
	released := entity.NewEscrowPayment(requestID, photographer, 8000, valueobject.EscrowStatusReleased, "")
	require.NoError(t, repo.Record(ctx, released))
	require.NoError(t, repo.Record(ctx, released))
	require.NoError(t, repo.Record(ctx, entity.NewEscrowPayment(requestID, owner, 8000, valueobject.EscrowStatusPending, "pi_1")))

	payments, err := escrow.NewListMyPaymentsUseCase(repo).Execute(ctx, photographer)

	require.NoError(t, err)
	require.Len(t, payments, 1, "повторная запись того же движения игнорируется")
	assert.Equal(t, valueobject.EscrowStatusReleased, payments[0].Status)
}
