package interfaces

import (
	"context"

	"github.com/kasirapp/kasir/internal/domain"
)

// Service interfaces (business logic)
type CheckoutService interface {
	Checkout(ctx context.Context, cmd CheckoutCommand) (*CheckoutResult, error)
}

type PaymentService interface {
	// Confirm transitions the order to PAID exactly once; already=true
	// signals an idempotent repeat with no effects applied.
	Confirm(ctx context.Context, code string) (already bool, err error)
	GetOrder(ctx context.Context, code, customerID string) (*domain.Order, error)
}

type CartService interface {
	View(ctx context.Context, customerID string) (*domain.Snapshot, error)
	AddItem(ctx context.Context, customerID string, productID int64, quantity int) error
	RemoveItem(ctx context.Context, customerID string, productID int64) error
	Clear(ctx context.Context, customerID string) error
}

type CatalogService interface {
	ListProducts(ctx context.Context) ([]*domain.Product, error)
}

type CheckoutCommand struct {
	CustomerID    string
	DiningType    string
	PaymentChoice string
}

type CheckoutResult struct {
	OrderID     string
	Code        string
	QueueNumber string
	Total       int64
	Method      string
	// Cashless only
	ExternalID string
	SnapToken  string
}

// Collaborator boundaries

// IdentityResolver maps an opaque session token to a customer id.
// Returns domain.ErrUnauthenticated when no identity is resolvable.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (customerID string, err error)
}

// PaymentGateway requests a client-side payment session from the external
// processor. The call must have a bounded timeout.
type PaymentGateway interface {
	CreateTransactionToken(ctx context.Context, req TransactionRequest) (string, error)
}

type TransactionRequest struct {
	ExternalID  string
	OrderID     string
	OrderCode   string
	GrossAmount int64
}
