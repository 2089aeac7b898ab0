package usecasetest

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/ignatzorin/photomarket-backend/internal/domain/gateway"
	"github.com/ignatzorin/photomarket-backend/internal/domain/valueobject"
)

// PaymentGateway: testify-мок платёжного моста.
type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) CreatePaymentIntent(ctx context.Context, amount valueobject.Money) (*gateway.PaymentIntent, error) {
	args := m.Called(ctx, amount)
	if intent, ok := args.Get(0).(*gateway.PaymentIntent); ok {
		return intent, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PaymentGateway) CreateConnectAccount(ctx context.Context, userID uuid.UUID, email string) (*gateway.ConnectAccount, error) {
	args := m.Called(ctx, userID, email)
	if account, ok := args.Get(0).(*gateway.ConnectAccount); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *PaymentGateway) CreateTransfer(ctx context.Context, amount valueobject.Money, destination string) (*gateway.Transfer, error) {
	args := m.Called(ctx, amount, destination)
	if transfer, ok := args.Get(0).(*gateway.Transfer); ok {
		return transfer, args.Error(1)
	}
	return nil, args.Error(1)
}
