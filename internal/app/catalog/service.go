package catalog

import (
	"context"

	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type Service struct {
	productRepo interfaces.ProductRepository
}

func NewService(productRepo interfaces.ProductRepository) *Service {
	return &Service{productRepo: productRepo}
}

func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.productRepo.ListActive(ctx)
}
