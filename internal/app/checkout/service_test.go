package checkout

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kasirapp/kasir/internal/adapter/logger"
	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
	"github.com/kasirapp/kasir/internal/mocks"
)

func testLogger() logger.Logger {
	return logger.NewWithWriter("checkout-test", io.Discard)
}

func testSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		CustomerID: "cust-1",
		Lines: []domain.SnapshotLine{
			{ProductID: 1, Name: "Nasi Goreng", Price: 25000, Stock: 10, IsActive: true, Quantity: 2},
			{ProductID: 2, Name: "Es Teh", Price: 15000, Stock: 5, IsActive: true, Quantity: 1},
		},
	}
}

func cashCommand() interfaces.CheckoutCommand {
	return interfaces.CheckoutCommand{
		CustomerID:    "cust-1",
		DiningType:    "DINE_IN",
		PaymentChoice: "CASH",
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	cartRepo := new(mocks.CartRepository)
	orderRepo := new(mocks.OrderRepository)
	gw := new(mocks.PaymentGateway)
	publisher := new(mocks.EventPublisher)
	svc := NewService(cartRepo, orderRepo, gw, publisher, testLogger(), domain.PricingPolicy{}, 3)

	cartRepo.On("Snapshot", mock.Anything, "cust-1").Return(&domain.Snapshot{CustomerID: "cust-1"}, nil).Once()

	result, err := svc.Checkout(context.Background(), cashCommand())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	orderRepo.AssertNotCalled(t, "CreateFromCart", mock.Anything, mock.Anything, mock.Anything)
	cartRepo.AssertExpectations(t)
}

func TestCheckout_ValidationFailsWithoutSideEffects(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Snapshot)
		wantErr error
	}{
		{
			name: "product inactive",
			mutate: func(s *domain.Snapshot) {
				s.Lines[0].IsActive = false
			},
			wantErr: domain.ErrProductUnavailable,
		},
		{
			name: "insufficient stock",
			mutate: func(s *domain.Snapshot) {
				s.Lines[0].Stock = 1
			},
			wantErr: domain.ErrInsufficientStock,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			cartRepo := new(mocks.CartRepository)
			orderRepo := new(mocks.OrderRepository)
			gw := new(mocks.PaymentGateway)
			publisher := new(mocks.EventPublisher)
			svc := NewService(cartRepo, orderRepo, gw, publisher, testLogger(), domain.PricingPolicy{}, 3)

			snap := testSnapshot()
			testCase.mutate(snap)
			cartRepo.On("Snapshot", mock.Anything, "cust-1").Return(snap, nil).Once()

			result, err := svc.Checkout(context.Background(), cashCommand())

			assert.Nil(t, result)
			assert.ErrorIs(t, err, testCase.wantErr)
			orderRepo.AssertNotCalled(t, "NextCode", mock.Anything)
			orderRepo.AssertNotCalled(t, "CreateFromCart", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestCheckout_CashSuccess(t *testing.T) {
	cartRepo := new(mocks.CartRepository)
	orderRepo := new(mocks.OrderRepository)
	gw := new(mocks.PaymentGateway)
	publisher := new(mocks.EventPublisher)
	svc := NewService(cartRepo, orderRepo, gw, publisher, testLogger(), domain.PricingPolicy{}, 3)

	cartRepo.On("Snapshot", mock.Anything, "cust-1").Return(testSnapshot(), nil).Once()
	orderRepo.On("NextCode", mock.Anything).Return("ORD-20260831-001", "001", nil).Once()

	var committed *domain.Order
	orderRepo.On("CreateFromCart", mock.Anything, mock.AnythingOfType("*domain.Order"), mock.Anything).
		Run(func(args mock.Arguments) {
			committed = args.Get(1).(*domain.Order)
		}).Return(nil).Once()
	publisher.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := svc.Checkout(context.Background(), cashCommand())

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "ORD-20260831-001", result.Code)
	assert.Equal(t, int64(65000), result.Total)
	assert.Equal(t, "CASH", result.Method)
	assert.Empty(t, result.SnapToken)

	require.NotNil(t, committed)
	assert.Equal(t, domain.StatusAwaitingPayment, committed.Status)
	assert.Equal(t, int64(65000), committed.Subtotal)
	assert.Equal(t, int64(65000), committed.Total)
	require.Len(t, committed.Items, 2)
	assert.Equal(t, int64(50000), committed.Items[0].Total)

	gw.AssertNotCalled(t, "CreateTransactionToken", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestCheckout_RetriesOnCodeConflict(t *testing.T) {
	cartRepo := new(mocks.CartRepository)
	orderRepo := new(mocks.OrderRepository)
	gw := new(mocks.PaymentGateway)
	publisher := new(mocks.EventPublisher)
	svc := NewService(cartRepo, orderRepo, gw, publisher, testLogger(), domain.PricingPolicy{}, 3)

	cartRepo.On("Snapshot", mock.Anything, "cust-1").Return(testSnapshot(), nil).Once()
	orderRepo.On("NextCode", mock.Anything).Return("ORD-20260831-004", "004", nil).Once()
	orderRepo.On("NextCode", mock.Anything).Return("ORD-20260831-005", "005", nil).Once()
	orderRepo.On("CreateFromCart", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ErrCodeConflict).Once()
	orderRepo.On("CreateFromCart", mock.Anything, mock.Anything, mock.Anything).
		Return(nil).Once()
	publisher.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(nil).Once()

	result, err := svc.Checkout(context.Background(), cashCommand())

	require.NoError(t, err)
	assert.Equal(t, "ORD-20260831-005", result.Code)
	orderRepo.AssertExpectations(t)
}

func TestCheckout_ConflictRetriesExhausted(t *testing.T) {
	cartRepo := new(mocks.CartRepository)
	orderRepo := new(mocks.OrderRepository)
	gw := new(mocks.PaymentGateway)
	publisher := new(mocks.EventPublisher)
	svc := NewService(cartRepo, orderRepo, gw, publisher, testLogger(), domain.PricingPolicy{}, 2)

	cartRepo.On("Snapshot", mock.Anything, "cust-1").Return(testSnapshot(), nil).Once()
	orderRepo.On("NextCode", mock.Anything).Return("ORD-20260831-004", "004", nil).Twice()
	orderRepo.On("CreateFromCart", mock.Anything, mock.Anything, mock.Anything).
		Return(domain.ErrCodeConflict).Twice()

	result, err := svc.Checkout(context.Background(), cashCommand())

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrTransientConflict)
	publisher.AssertNotCalled(t, "PublishOrderCreated", mock.Anything, mock.Anything)
	orderRepo.AssertExpectations(t)
}

func TestCheckout_CashlessSuccess(t *testing.T) {
	cartRepo := new(mocks.CartRepository)
	orderRepo := new(mocks.OrderRepository)
	gw := new(mocks.PaymentGateway)
	publisher := new(mocks.EventPublisher)
	svc := NewService(cartRepo, orderRepo, gw, publisher, testLogger(), domain.PricingPolicy{}, 3)

	cartRepo.On("Snapshot", mock.Anything, "cust-1").Return(testSnapshot(), nil).Once()
	orderRepo.On("NextCode", mock.Anything).Return("ORD-20260831-001", "001", nil).Once()
	orderRepo.On("CreateFromCart", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(nil).Once()

	var gwReq interfaces.TransactionRequest
	gw.On("CreateTransactionToken", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			gwReq = args.Get(1).(interfaces.TransactionRequest)
		}).Return("snap-token-123", nil).Once()

	cmd := cashCommand()
	cmd.PaymentChoice = "CASHLESS"
	result, err := svc.Checkout(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "CASHLESS", result.Method)
	assert.Equal(t, "snap-token-123", result.SnapToken)
	assert.Equal(t, result.ExternalID, gwReq.ExternalID)
	assert.Equal(t, int64(65000), gwReq.GrossAmount)
	assert.Equal(t, "ORD-20260831-001", gwReq.OrderCode)
	gw.AssertExpectations(t)
}

func TestCheckout_GatewayFailureAfterCommit(t *testing.T) {
	cartRepo := new(mocks.CartRepository)
	orderRepo := new(mocks.OrderRepository)
	gw := new(mocks.PaymentGateway)
	publisher := new(mocks.EventPublisher)
	svc := NewService(cartRepo, orderRepo, gw, publisher, testLogger(), domain.PricingPolicy{}, 3)

	cartRepo.On("Snapshot", mock.Anything, "cust-1").Return(testSnapshot(), nil).Once()
	orderRepo.On("NextCode", mock.Anything).Return("ORD-20260831-001", "001", nil).Once()
	orderRepo.On("CreateFromCart", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(nil).Once()
	gw.On("CreateTransactionToken", mock.Anything, mock.Anything).
		Return("", domain.ErrGatewayUnavailable).Once()

	cmd := cashCommand()
	cmd.PaymentChoice = "CASHLESS"
	result, err := svc.Checkout(context.Background(), cmd)

	// The order was committed before the gateway call; the failure
	// surfaces but the commit is not undone.
	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	orderRepo.AssertExpectations(t)
}

func TestCheckout_PublishFailureDoesNotFailCheckout(t *testing.T) {
	cartRepo := new(mocks.CartRepository)
	orderRepo := new(mocks.OrderRepository)
	gw := new(mocks.PaymentGateway)
	publisher := new(mocks.EventPublisher)
	svc := NewService(cartRepo, orderRepo, gw, publisher, testLogger(), domain.PricingPolicy{}, 3)

	cartRepo.On("Snapshot", mock.Anything, "cust-1").Return(testSnapshot(), nil).Once()
	orderRepo.On("NextCode", mock.Anything).Return("ORD-20260831-001", "001", nil).Once()
	orderRepo.On("CreateFromCart", mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	publisher.On("PublishOrderCreated", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()

	result, err := svc.Checkout(context.Background(), cashCommand())

	require.NoError(t, err)
	assert.Equal(t, "ORD-20260831-001", result.Code)
}
