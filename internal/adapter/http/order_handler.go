package http

import (
	"net/http"
	"strings"

	"github.com/kasirapp/kasir/internal/adapter/logger"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type OrderHandler struct {
	service interfaces.PaymentService
	logger  logger.Logger
}

func NewOrderHandler(service interfaces.PaymentService, logger logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger,
	}
}

type OrderResponse struct {
	Code   string          `json:"code"`
	Status string          `json:"status"`
	Total  int64           `json:"total"`
	Items  []OrderItemView `json:"items"`
}

type OrderItemView struct {
	ProductName string `json:"productName"`
	Qty         int    `json:"qty"`
	Price       int64  `json:"price"`
	Total       int64  `json:"total"`
}

type ConfirmResponse struct {
	OK      bool `json:"ok"`
	Already bool `json:"already,omitempty"`
}

// HandleOrders serves /orders/{code}: GET returns the owner's receipt,
// POST confirms payment. The POST path carries no caller-identity check;
// it is the trigger for both cash-register confirmations and gateway
// callbacks, which is a known gap of the confirmation contract.
func (h *OrderHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 2 || parts[1] == "" {
		respondError(w, "Not found", http.StatusNotFound, nil)
		return
	}
	code := parts[1]

	switch r.Method {
	case http.MethodGet:
		h.getOrder(w, r, code)
	case http.MethodPost:
		h.confirmPayment(w, r, code)
	default:
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
	}
}

func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request, code string) {
	customerID, ok := CustomerID(r.Context())
	if !ok {
		respondError(w, "Unauthenticated", http.StatusUnauthorized, nil)
		return
	}

	order, err := h.service.GetOrder(r.Context(), code, customerID)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	items := make([]OrderItemView, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemView{
			ProductName: item.ProductName,
			Qty:         item.Quantity,
			Price:       item.Price,
			Total:       item.Total,
		}
	}

	respondJSON(w, http.StatusOK, OrderResponse{
		Code:   order.Code,
		Status: string(order.Status),
		Total:  order.Total,
		Items:  items,
	})
}

func (h *OrderHandler) confirmPayment(w http.ResponseWriter, r *http.Request, code string) {
	already, err := h.service.Confirm(r.Context(), code)
	if err != nil {
		h.logger.Error("confirmation_failed", "Payment confirmation failed", "", map[string]interface{}{
			"code": code,
		}, err)
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ConfirmResponse{OK: true, Already: already})
}
