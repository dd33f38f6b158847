package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type ProductRepository struct {
	mock.Mock
}

func (m *ProductRepository) ListActive(ctx context.Context) ([]*domain.Product, error) {
	args := m.Called(ctx)
	if products, ok := args.Get(0).([]*domain.Product); ok {
		return products, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.Product); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

type CartRepository struct {
	mock.Mock
}

func (m *CartRepository) Snapshot(ctx context.Context, customerID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, customerID)
	if snap, ok := args.Get(0).(*domain.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CartRepository) AddLine(ctx context.Context, customerID string, productID int64, quantity int) error {
	args := m.Called(ctx, customerID, productID, quantity)
	return args.Error(0)
}

func (m *CartRepository) RemoveLine(ctx context.Context, customerID string, productID int64) error {
	args := m.Called(ctx, customerID, productID)
	return args.Error(0)
}

func (m *CartRepository) Clear(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) NextCode(ctx context.Context) (string, string, error) {
	args := m.Called(ctx)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *OrderRepository) CreateFromCart(ctx context.Context, order *domain.Order, cartID uuid.UUID) error {
	args := m.Called(ctx, order, cartID)
	return args.Error(0)
}

func (m *OrderRepository) FindByCode(ctx context.Context, code string) (*domain.Order, error) {
	args := m.Called(ctx, code)
	if order, ok := args.Get(0).(*domain.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *OrderRepository) ConfirmPayment(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

type PaymentGateway struct {
	mock.Mock
}

func (m *PaymentGateway) CreateTransactionToken(ctx context.Context, req interfaces.TransactionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) PublishOrderCreated(ctx context.Context, msg interfaces.OrderCreatedMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func (m *EventPublisher) PublishOrderPaid(ctx context.Context, msg interfaces.OrderPaidMessage) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type CheckoutService struct {
	mock.Mock
}

func (m *CheckoutService) Checkout(ctx context.Context, cmd interfaces.CheckoutCommand) (*interfaces.CheckoutResult, error) {
	args := m.Called(ctx, cmd)
	if result, ok := args.Get(0).(*interfaces.CheckoutResult); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

type PaymentService struct {
	mock.Mock
}

func (m *PaymentService) Confirm(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentService) GetOrder(ctx context.Context, code, customerID string) (*domain.Order, error) {
	args := m.Called(ctx, code, customerID)
	if order, ok := args.Get(0).(*domain.Order); ok {
		return order, args.Error(1)
	}
	return nil, args.Error(1)
}
