package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		CustomerID: "cust-1",
		Lines: []SnapshotLine{
			{ProductID: 1, Name: "Nasi Goreng", Price: 25000, Stock: 10, IsActive: true, Category: CategoryMain, Quantity: 2},
			{ProductID: 2, Name: "Es Teh", Price: 15000, Stock: 5, IsActive: true, Category: CategoryDrink, Quantity: 1},
		},
	}
}

func TestComputePricing(t *testing.T) {
	tests := []struct {
		name         string
		policy       PricingPolicy
		wantSubtotal int64
		wantDiscount int64
		wantTax      int64
		wantTotal    int64
	}{
		{
			name:         "zero tax and discount",
			policy:       PricingPolicy{},
			wantSubtotal: 65000,
			wantTotal:    65000,
		},
		{
			name:         "ten percent tax",
			policy:       PricingPolicy{TaxBps: 1000},
			wantSubtotal: 65000,
			wantTax:      6500,
			wantTotal:    71500,
		},
		{
			name:         "flat discount",
			policy:       PricingPolicy{Discount: 5000},
			wantSubtotal: 65000,
			wantDiscount: 5000,
			wantTotal:    60000,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			pricing := ComputePricing(sampleSnapshot(), testCase.policy)

			assert.Equal(t, testCase.wantSubtotal, pricing.Subtotal)
			assert.Equal(t, testCase.wantDiscount, pricing.Discount)
			assert.Equal(t, testCase.wantTax, pricing.Tax)
			assert.Equal(t, testCase.wantTotal, pricing.Total)
			assert.Equal(t, pricing.Subtotal-pricing.Discount+pricing.Tax, pricing.Total)
		})
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Snapshot)
		wantErr error
	}{
		{
			name:   "all lines available",
			mutate: func(s *Snapshot) {},
		},
		{
			name: "inactive product",
			mutate: func(s *Snapshot) {
				s.Lines[1].IsActive = false
			},
			wantErr: ErrProductUnavailable,
		},
		{
			name: "quantity exceeds stock",
			mutate: func(s *Snapshot) {
				s.Lines[0].Stock = 1
			},
			wantErr: ErrInsufficientStock,
		},
		{
			name: "first violation wins",
			mutate: func(s *Snapshot) {
				s.Lines[0].IsActive = false
				s.Lines[1].Stock = 0
			},
			wantErr: ErrProductUnavailable,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			snap := sampleSnapshot()
			testCase.mutate(snap)

			err := snap.Validate()

			if testCase.wantErr != nil {
				assert.True(t, errors.Is(err, testCase.wantErr))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSnapshotIsEmpty(t *testing.T) {
	assert.True(t, (&Snapshot{}).IsEmpty())
	assert.True(t, (*Snapshot)(nil).IsEmpty())
	assert.False(t, sampleSnapshot().IsEmpty())
}

func TestNewOrder(t *testing.T) {
	snap := sampleSnapshot()
	pricing := ComputePricing(snap, PricingPolicy{})

	order := NewOrder("cust-1", "ORD-20260831-001", "001", DiningTypeDineIn, PaymentCash, snap, pricing)

	assert.Equal(t, StatusAwaitingPayment, order.Status)
	assert.Equal(t, int64(65000), order.Total)
	assert.Equal(t, "001", order.QueueNumber)
	require.Len(t, order.Items, 2)

	// Items are a denormalized copy of the snapshot at purchase time
	assert.Equal(t, "Nasi Goreng", order.Items[0].ProductName)
	assert.Equal(t, int64(25000), order.Items[0].Price)
	assert.Equal(t, int64(50000), order.Items[0].Total)
	assert.Equal(t, order.ID, order.Items[0].OrderID)

	// Later catalog edits must not leak into the order
	snap.Lines[0].Price = 99000
	assert.Equal(t, int64(25000), order.Items[0].Price)
	assert.Equal(t, int64(65000), order.Total)
}

func TestOrderExternalID(t *testing.T) {
	snap := sampleSnapshot()
	order := NewOrder("cust-1", "ORD-20260831-007", "007", DiningTypeTakeAway, PaymentCashless, snap, ComputePricing(snap, PricingPolicy{}))

	mid := order.ExternalID()

	require.True(t, strings.HasPrefix(mid, "ORD-20260831-007-"))
	suffix := strings.TrimPrefix(mid, "ORD-20260831-007-")
	assert.Len(t, suffix, 8)
	assert.Equal(t, order.ID.String()[:8], suffix)
}

func TestValidEnums(t *testing.T) {
	assert.True(t, ValidDiningType("DINE_IN"))
	assert.True(t, ValidDiningType("TAKE_AWAY"))
	assert.False(t, ValidDiningType("DELIVERY"))

	assert.True(t, ValidPaymentMethod("CASH"))
	assert.True(t, ValidPaymentMethod("CASHLESS"))
	assert.False(t, ValidPaymentMethod("CREDIT"))
}
