package interfaces

import (
	"context"

	"github.com/google/uuid"

	"github.com/kasirapp/kasir/internal/domain"
)

// Repository interfaces (adapter/postgres)
type ProductRepository interface {
	ListActive(ctx context.Context) ([]*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
}

type CartRepository interface {
	// Snapshot reads the cart and its lines joined with current product
	// fields as one consistent point-in-time view. An absent cart yields
	// an empty snapshot, not an error.
	Snapshot(ctx context.Context, customerID string) (*domain.Snapshot, error)
	AddLine(ctx context.Context, customerID string, productID int64, quantity int) error
	RemoveLine(ctx context.Context, customerID string, productID int64) error
	Clear(ctx context.Context, customerID string) error
}

type OrderRepository interface {
	// NextCode allocates the next per-day order code and queue number by
	// counting today's orders. The allocation is optimistic: callers must
	// retry on ErrCodeConflict from CreateFromCart.
	NextCode(ctx context.Context) (code, queueNumber string, err error)
	// CreateFromCart persists the order header and items and deletes the
	// source cart as one atomic unit. Returns domain.ErrCodeConflict when
	// the code's uniqueness constraint fires.
	CreateFromCart(ctx context.Context, order *domain.Order, cartID uuid.UUID) error
	FindByCode(ctx context.Context, code string) (*domain.Order, error)
	// ConfirmPayment atomically decrements each line's product stock and
	// transitions the order to PAID. Reports already=true without any
	// effects when the order was paid before.
	ConfirmPayment(ctx context.Context, code string) (already bool, err error)
}
