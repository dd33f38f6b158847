package cart

import (
	"context"
	"fmt"

	"github.com/kasirapp/kasir/internal/adapter/logger"
	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type Service struct {
	cartRepo interfaces.CartRepository
	logger   logger.Logger
}

func NewService(cartRepo interfaces.CartRepository, logger logger.Logger) *Service {
	return &Service{
		cartRepo: cartRepo,
		logger:   logger,
	}
}

// View returns the cart snapshot; a customer with no cart gets an empty
// snapshot, not an error.
func (s *Service) View(ctx context.Context, customerID string) (*domain.Snapshot, error) {
	return s.cartRepo.Snapshot(ctx, customerID)
}

func (s *Service) AddItem(ctx context.Context, customerID string, productID int64, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	if err := s.cartRepo.AddLine(ctx, customerID, productID, quantity); err != nil {
		return err
	}

	s.logger.Debug("cart_item_added", "Cart line upserted", "", map[string]interface{}{
		"product_id": productID,
		"quantity":   quantity,
	})
	return nil
}

func (s *Service) RemoveItem(ctx context.Context, customerID string, productID int64) error {
	return s.cartRepo.RemoveLine(ctx, customerID, productID)
}

func (s *Service) Clear(ctx context.Context, customerID string) error {
	return s.cartRepo.Clear(ctx, customerID)
}
