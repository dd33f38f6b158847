package domain

import "errors"

var (
	ErrUnauthenticated      = errors.New("unauthenticated")
	ErrEmptyCart            = errors.New("cart is empty")
	ErrProductNotFound      = errors.New("product not found")
	ErrProductUnavailable   = errors.New("product unavailable")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrOrderNotFound        = errors.New("order not found")
	ErrCodeConflict         = errors.New("order code already taken")
	ErrTransientConflict    = errors.New("checkout conflicted with concurrent orders")
	ErrGatewayMisconfigured = errors.New("payment gateway is not configured")
	ErrGatewayUnavailable   = errors.New("payment gateway unavailable")
)
