package http

import (
	"net/http"

	"github.com/kasirapp/kasir/internal/adapter/logger"
	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type ProductHandler struct {
	service interfaces.CatalogService
	logger  logger.Logger
}

func NewProductHandler(service interfaces.CatalogService, logger logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger,
	}
}

type ProductView struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    int64           `json:"price"`
	Category domain.Category `json:"category"`
	Stock    int             `json:"stock"`
	ImageURL string          `json:"imageUrl"`
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("product_list_failed", "Failed to list products", "", nil, err)
		respondDomainError(w, err)
		return
	}

	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = ProductView{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
			Stock:    p.Stock,
			ImageURL: p.ImageURL,
		}
	}

	respondJSON(w, http.StatusOK, views)
}
