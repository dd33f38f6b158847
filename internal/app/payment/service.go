package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/kasirapp/kasir/internal/adapter/logger"
	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type Service struct {
	orderRepo interfaces.OrderRepository
	publisher interfaces.EventPublisher
	logger    logger.Logger
}

func NewService(orderRepo interfaces.OrderRepository, publisher interfaces.EventPublisher, logger logger.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Confirm transitions the order to PAID and decrements stock, both inside
// one repository transaction. A repeated confirmation reports already=true
// and applies nothing, so duplicate cash confirmations or duplicate
// gateway callbacks never double-decrement stock.
func (s *Service) Confirm(ctx context.Context, code string) (bool, error) {
	already, err := s.orderRepo.ConfirmPayment(ctx, code)
	if err != nil {
		return false, err
	}
	if already {
		s.logger.Debug("payment_repeated", "Order already paid", "", map[string]interface{}{"code": code})
		return true, nil
	}

	s.logger.Info("payment_confirmed", fmt.Sprintf("Order %s paid", code), "", map[string]interface{}{
		"code": code,
	})

	order, err := s.orderRepo.FindByCode(ctx, code)
	if err != nil {
		// The transition itself committed; the event is best effort.
		s.logger.Error("event_publish_failed", "Failed to reload paid order", "",
			map[string]interface{}{"code": code}, err)
		return false, nil
	}

	paidAt := time.Now().UTC()
	if order.PaidAt != nil {
		paidAt = *order.PaidAt
	}

	msg := interfaces.OrderPaidMessage{
		Code:        order.Code,
		QueueNumber: order.QueueNumber,
		Total:       order.Total,
		PaidAt:      paidAt,
	}
	if err := s.publisher.PublishOrderPaid(ctx, msg); err != nil {
		s.logger.Error("event_publish_failed", "Failed to publish order paid event", "",
			map[string]interface{}{"code": code}, err)
	}

	return false, nil
}

// GetOrder returns the order only to its owner; a foreign order is
// indistinguishable from a missing one.
func (s *Service) GetOrder(ctx context.Context, code, customerID string) (*domain.Order, error) {
	order, err := s.orderRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if order.CustomerID != customerID {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}
