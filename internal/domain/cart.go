package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Cart is the per-customer mutable collection of lines prior to purchase.
// At most one cart exists per customer; it is created lazily on the first
// add-to-cart and destroyed when checkout commits.
type Cart struct {
	ID         uuid.UUID
	CustomerID string
	UpdatedAt  time.Time
}

// CartLine references one product; at most one line per (cart, product).
type CartLine struct {
	ID        int64
	CartID    uuid.UUID
	ProductID int64
	Quantity  int
}

// SnapshotLine carries the product fields frozen at snapshot time.
type SnapshotLine struct {
	ProductID int64
	Name      string
	Price     int64
	Stock     int
	IsActive  bool
	ImageURL  string
	Category  Category
	Quantity  int
}

// Snapshot is a single consistent read of a cart and its lines, taken at
// one instant. All validation and pricing works off the snapshot, never
// off live catalog rows.
type Snapshot struct {
	CartID     uuid.UUID
	CustomerID string
	Lines      []SnapshotLine
}

func (s *Snapshot) IsEmpty() bool {
	return s == nil || len(s.Lines) == 0
}

// Validate checks every line against the product's active flag and stock,
// in snapshot order, failing fast on the first violation. It reserves
// nothing: stock is only decremented at payment confirmation.
func (s *Snapshot) Validate() error {
	for _, line := range s.Lines {
		if !line.IsActive {
			return fmt.Errorf("%w: %s", ErrProductUnavailable, line.Name)
		}
		if line.Quantity > line.Stock {
			return fmt.Errorf("%w: %s (requested %d, in stock %d)",
				ErrInsufficientStock, line.Name, line.Quantity, line.Stock)
		}
	}
	return nil
}
