package checkout

import (
	"context"
	"errors"
	"fmt"

	"github.com/kasirapp/kasir/internal/adapter/logger"
	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type Service struct {
	cartRepo   interfaces.CartRepository
	orderRepo  interfaces.OrderRepository
	gateway    interfaces.PaymentGateway
	publisher  interfaces.EventPublisher
	logger     logger.Logger
	policy     domain.PricingPolicy
	retryLimit int
}

func NewService(
	cartRepo interfaces.CartRepository,
	orderRepo interfaces.OrderRepository,
	gateway interfaces.PaymentGateway,
	publisher interfaces.EventPublisher,
	logger logger.Logger,
	policy domain.PricingPolicy,
	retryLimit int,
) *Service {
	if retryLimit <= 0 {
		retryLimit = 3
	}
	return &Service{
		cartRepo:   cartRepo,
		orderRepo:  orderRepo,
		gateway:    gateway,
		publisher:  publisher,
		logger:     logger,
		policy:     policy,
		retryLimit: retryLimit,
	}
}

// Checkout converts the customer's cart into a priced, numbered order.
// Pipeline: snapshot -> validate -> price -> allocate code -> commit, with
// the allocate+commit pair retried on code conflicts. For cashless orders
// a payment session is requested after the commit; a gateway failure at
// that point surfaces as an error but the order stays AWAITING_PAYMENT
// and remains payable later.
func (s *Service) Checkout(ctx context.Context, cmd interfaces.CheckoutCommand) (*interfaces.CheckoutResult, error) {
	snap, err := s.cartRepo.Snapshot(ctx, cmd.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart snapshot: %w", err)
	}
	if snap.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}

	pricing := domain.ComputePricing(snap, s.policy)

	var order *domain.Order
	for attempt := 1; attempt <= s.retryLimit; attempt++ {
		code, queueNumber, err := s.orderRepo.NextCode(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to allocate order code: %w", err)
		}

		candidate := domain.NewOrder(cmd.CustomerID, code, queueNumber,
			domain.DiningType(cmd.DiningType), domain.PaymentMethod(cmd.PaymentChoice), snap, pricing)

		err = s.orderRepo.CreateFromCart(ctx, candidate, snap.CartID)
		if err == nil {
			order = candidate
			break
		}
		if errors.Is(err, domain.ErrCodeConflict) {
			s.logger.Debug("code_conflict", "Order code taken, retrying allocation", "", map[string]interface{}{
				"code":    code,
				"attempt": attempt,
			})
			continue
		}
		s.logger.Error("db_transaction_failed", "Failed to commit order", "", nil, err)
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrTransientConflict
	}

	s.logger.Debug("order_committed", "Order created in DB", "", map[string]interface{}{
		"code":  order.Code,
		"total": order.Total,
	})

	s.publishCreated(ctx, order)

	result := &interfaces.CheckoutResult{
		OrderID:     order.ID.String(),
		Code:        order.Code,
		QueueNumber: order.QueueNumber,
		Total:       order.Total,
		Method:      string(order.Payment),
	}

	if order.Payment == domain.PaymentCashless {
		token, err := s.gateway.CreateTransactionToken(ctx, interfaces.TransactionRequest{
			ExternalID:  order.ExternalID(),
			OrderID:     order.ID.String(),
			OrderCode:   order.Code,
			GrossAmount: order.Total,
		})
		if err != nil {
			// The order is already committed; it stays AWAITING_PAYMENT
			// and can be paid later.
			s.logger.Error("gateway_request_failed", "Payment session request failed after commit", "",
				map[string]interface{}{"code": order.Code}, err)
			return nil, fmt.Errorf("order %s committed but payment session failed: %w", order.Code, err)
		}
		result.ExternalID = order.ExternalID()
		result.SnapToken = token
	}

	return result, nil
}

// publishCreated is best effort: the order is already committed, so a
// broker failure here is logged and never undoes the checkout.
func (s *Service) publishCreated(ctx context.Context, order *domain.Order) {
	items := make([]interfaces.OrderItemMsg, len(order.Items))
	for i, item := range order.Items {
		items[i] = interfaces.OrderItemMsg{
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
		}
	}

	msg := interfaces.OrderCreatedMessage{
		OrderID:     order.ID.String(),
		Code:        order.Code,
		QueueNumber: order.QueueNumber,
		DiningType:  order.DiningType,
		Payment:     string(order.Payment),
		Total:       order.Total,
		Items:       items,
		CreatedAt:   order.CreatedAt,
	}

	if err := s.publisher.PublishOrderCreated(ctx, msg); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish order created event", "",
			map[string]interface{}{"code": order.Code}, err)
	}
}
