package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/kasirapp/kasir/internal/adapter/logger"
	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type CartHandler struct {
	service interfaces.CartService
	logger  logger.Logger
}

func NewCartHandler(service interfaces.CartService, logger logger.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger,
	}
}

type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Qty       int   `json:"qty"`
}

type CartView struct {
	Items []CartItemView `json:"items"`
	Total int64          `json:"total"`
}

type CartItemView struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	Price     int64           `json:"price"`
	Qty       int             `json:"qty"`
	Total     int64           `json:"total"`
	ImageURL  string          `json:"imageUrl"`
	Category  domain.Category `json:"category"`
}

// HandleCart serves /cart: GET views the snapshot, DELETE clears it.
func (h *CartHandler) HandleCart(w http.ResponseWriter, r *http.Request) {
	customerID, ok := CustomerID(r.Context())
	if !ok {
		respondError(w, "Unauthenticated", http.StatusUnauthorized, nil)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.viewCart(w, r, customerID)
	case http.MethodDelete:
		h.clearCart(w, r, customerID)
	default:
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
	}
}

// HandleCartItems serves POST /cart/items and DELETE /cart/items/{productId}.
func (h *CartHandler) HandleCartItems(w http.ResponseWriter, r *http.Request) {
	customerID, ok := CustomerID(r.Context())
	if !ok {
		respondError(w, "Unauthenticated", http.StatusUnauthorized, nil)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.addItem(w, r, customerID)
	case http.MethodDelete:
		h.removeItem(w, r, customerID)
	default:
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
	}
}

func (h *CartHandler) viewCart(w http.ResponseWriter, r *http.Request, customerID string) {
	snap, err := h.service.View(r.Context(), customerID)
	if err != nil {
		h.logger.Error("cart_view_failed", "Failed to load cart", "", nil, err)
		respondDomainError(w, err)
		return
	}

	view := CartView{Items: make([]CartItemView, len(snap.Lines))}
	for i, line := range snap.Lines {
		lineTotal := line.Price * int64(line.Quantity)
		view.Items[i] = CartItemView{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Qty:       line.Quantity,
			Total:     lineTotal,
			ImageURL:  line.ImageURL,
			Category:  line.Category,
		}
		view.Total += lineTotal
	}

	respondJSON(w, http.StatusOK, view)
}

func (h *CartHandler) clearCart(w http.ResponseWriter, r *http.Request, customerID string) {
	if err := h.service.Clear(r.Context(), customerID); err != nil {
		h.logger.Error("cart_clear_failed", "Failed to clear cart", "", nil, err)
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *CartHandler) addItem(w http.ResponseWriter, r *http.Request, customerID string) {
	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusUnprocessableEntity, nil)
		return
	}

	var validationErrors []ValidationError
	if req.ProductID <= 0 {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "productId",
			Message: "product id is required",
		})
	}
	if req.Qty < 1 {
		validationErrors = append(validationErrors, ValidationError{
			Field:   "qty",
			Message: "quantity must be at least 1",
		})
	}
	if len(validationErrors) > 0 {
		respondError(w, "Validation failed", http.StatusUnprocessableEntity, validationErrors)
		return
	}

	if err := h.service.AddItem(r.Context(), customerID, req.ProductID, req.Qty); err != nil {
		h.logger.Error("cart_add_failed", "Failed to add cart line", "", map[string]interface{}{
			"product_id": req.ProductID,
		}, err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *CartHandler) removeItem(w http.ResponseWriter, r *http.Request, customerID string) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 {
		respondError(w, "Not found", http.StatusNotFound, nil)
		return
	}

	productID, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		respondError(w, "Invalid product id", http.StatusUnprocessableEntity, nil)
		return
	}

	if err := h.service.RemoveItem(r.Context(), customerID, productID); err != nil {
		h.logger.Error("cart_remove_failed", "Failed to remove cart line", "", map[string]interface{}{
			"product_id": productID,
		}, err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
