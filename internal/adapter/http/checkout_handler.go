package http

import (
	"encoding/json"
	"net/http"

	"github.com/kasirapp/kasir/internal/adapter/logger"
	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type CheckoutHandler struct {
	service interfaces.CheckoutService
	logger  logger.Logger
}

func NewCheckoutHandler(service interfaces.CheckoutService, logger logger.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger,
	}
}

type CheckoutRequest struct {
	DiningType    string `json:"diningType"`
	PaymentChoice string `json:"paymentChoice"`
}

type CheckoutResponse struct {
	OK      bool        `json:"ok"`
	OrderID string      `json:"orderId"`
	Code    string      `json:"code"`
	Total   int64       `json:"total"`
	MID     string      `json:"mid,omitempty"`
	Payment PaymentInfo `json:"payment"`
}

type PaymentInfo struct {
	Method    string `json:"method"`
	SnapToken string `json:"snapToken,omitempty"`
}

func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, "Method not allowed", http.StatusMethodNotAllowed, nil)
		return
	}

	customerID, ok := CustomerID(r.Context())
	if !ok {
		respondError(w, "Unauthenticated", http.StatusUnauthorized, nil)
		return
	}

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusUnprocessableEntity, nil)
		return
	}

	if validationErrors := validateCheckoutRequest(req); len(validationErrors) > 0 {
		respondError(w, "Validation failed", http.StatusUnprocessableEntity, validationErrors)
		return
	}

	result, err := h.service.Checkout(r.Context(), interfaces.CheckoutCommand{
		CustomerID:    customerID,
		DiningType:    req.DiningType,
		PaymentChoice: req.PaymentChoice,
	})
	if err != nil {
		h.logger.Error("checkout_failed", "Checkout failed", "", map[string]interface{}{
			"customer_id": customerID,
		}, err)
		respondDomainError(w, err)
		return
	}

	resp := CheckoutResponse{
		OK:      true,
		OrderID: result.OrderID,
		Code:    result.Code,
		Total:   result.Total,
		MID:     result.ExternalID,
		Payment: PaymentInfo{
			Method:    result.Method,
			SnapToken: result.SnapToken,
		},
	}

	respondJSON(w, http.StatusOK, resp)
}

func validateCheckoutRequest(req CheckoutRequest) []ValidationError {
	var errs []ValidationError

	if !domain.ValidDiningType(req.DiningType) {
		errs = append(errs, ValidationError{
			Field:   "diningType",
			Message: "dining type must be one of: DINE_IN, TAKE_AWAY",
		})
	}

	if !domain.ValidPaymentMethod(req.PaymentChoice) {
		errs = append(errs, ValidationError{
			Field:   "paymentChoice",
			Message: "payment choice must be one of: CASH, CASHLESS",
		})
	}

	return errs
}
