package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/kasirapp/kasir/internal/domain"
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error  string            `json:"error"`
	Errors []ValidationError `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, message string, statusCode int, validationErrors []ValidationError) {
	respondJSON(w, statusCode, ErrorResponse{
		Error:  message,
		Errors: validationErrors,
	})
}

// respondDomainError maps the error taxonomy onto status codes. Unknown
// errors collapse to a generic 500; callers log them with context first.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		respondError(w, "Unauthenticated", http.StatusUnauthorized, nil)
	case errors.Is(err, domain.ErrEmptyCart):
		respondError(w, "Keranjang kosong.", http.StatusConflict, nil)
	case errors.Is(err, domain.ErrProductUnavailable),
		errors.Is(err, domain.ErrInsufficientStock),
		errors.Is(err, domain.ErrTransientConflict):
		respondError(w, err.Error(), http.StatusConflict, nil)
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrOrderNotFound):
		respondError(w, "Not found", http.StatusNotFound, nil)
	case errors.Is(err, domain.ErrGatewayUnavailable):
		respondError(w, "Payment gateway unavailable", http.StatusBadGateway, nil)
	case errors.Is(err, domain.ErrGatewayMisconfigured):
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
	default:
		respondError(w, "Internal server error", http.StatusInternalServerError, nil)
	}
}
