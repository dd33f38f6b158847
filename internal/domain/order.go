package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Order is the immutable result of a successful checkout. Totals are
// locked at creation time and must never be recomputed afterwards.
type Order struct {
	ID          uuid.UUID
	Code        string
	QueueNumber string
	CustomerID  string
	DiningType  DiningType
	Payment     PaymentMethod
	Status      Status
	Subtotal    int64
	Discount    int64
	Tax         int64
	Total       int64
	Items       []OrderItem
	CreatedAt   time.Time
	PaidAt      *time.Time
}

// OrderItem is a denormalized copy of a cart line at purchase time. It is
// what makes the order a durable receipt independent of later catalog edits.
type OrderItem struct {
	ID          int64
	OrderID     uuid.UUID
	ProductID   int64
	ProductName string
	Quantity    int
	Price       int64
	Total       int64
}

// Pricing holds the computed money amounts, all in the smallest currency unit.
type Pricing struct {
	Subtotal int64
	Discount int64
	Tax      int64
	Total    int64
}

// PricingPolicy parameterizes the fixed pricing rules. Tax is expressed in
// basis points of the subtotal; both tax and discount default to zero.
type PricingPolicy struct {
	TaxBps   int64
	Discount int64
}

// ComputePricing derives subtotal/discount/tax/total from a snapshot using
// the prices read at snapshot time. Integer arithmetic only.
func ComputePricing(snap *Snapshot, policy PricingPolicy) Pricing {
	var subtotal int64
	for _, line := range snap.Lines {
		subtotal += line.Price * int64(line.Quantity)
	}

	tax := subtotal * policy.TaxBps / 10000
	discount := policy.Discount

	return Pricing{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    subtotal - discount + tax,
	}
}

// NewOrder assembles an order from a validated snapshot, computed pricing
// and an allocated code/queue number. Status starts at AWAITING_PAYMENT.
func NewOrder(customerID, code, queueNumber string, diningType DiningType, payment PaymentMethod, snap *Snapshot, pricing Pricing) *Order {
	order := &Order{
		ID:          uuid.New(),
		Code:        code,
		QueueNumber: queueNumber,
		CustomerID:  customerID,
		DiningType:  diningType,
		Payment:     payment,
		Status:      StatusAwaitingPayment,
		Subtotal:    pricing.Subtotal,
		Discount:    pricing.Discount,
		Tax:         pricing.Tax,
		Total:       pricing.Total,
		CreatedAt:   time.Now().UTC(),
	}

	order.Items = make([]OrderItem, len(snap.Lines))
	for i, line := range snap.Lines {
		order.Items[i] = OrderItem{
			OrderID:     order.ID,
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			Price:       line.Price,
			Total:       line.Price * int64(line.Quantity),
		}
	}

	return order
}

// ExternalID derives the transaction id handed to the payment gateway:
// the order code plus the first 8 characters of the order id.
func (o *Order) ExternalID() string {
	return fmt.Sprintf("%s-%s", o.Code, o.ID.String()[:8])
}
