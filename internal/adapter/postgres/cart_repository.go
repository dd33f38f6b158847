package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type cartRepository struct {
	db DB
}

func NewCartRepository(db DB) interfaces.CartRepository {
	return &cartRepository{db: db}
}

// Snapshot joins the cart, its lines and the referenced products in a
// single statement, so validation and pricing observe one point-in-time
// view of prices, stock and availability.
func (r *cartRepository) Snapshot(ctx context.Context, customerID string) (*domain.Snapshot, error) {
	query := `
		SELECT c.id, ci.product_id, p.name, p.price, p.stock, p.is_active, p.image_url, p.category, ci.quantity
		FROM carts c
		JOIN cart_items ci ON ci.cart_id = c.id
		JOIN products p ON p.id = ci.product_id
		WHERE c.customer_id = $1
		ORDER BY ci.id
	`

	rows, err := r.db.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cart snapshot: %w", err)
	}
	defer rows.Close()

	snap := &domain.Snapshot{CustomerID: customerID}
	for rows.Next() {
		var line domain.SnapshotLine
		if err := rows.Scan(&snap.CartID, &line.ProductID, &line.Name, &line.Price,
			&line.Stock, &line.IsActive, &line.ImageURL, &line.Category, &line.Quantity); err != nil {
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		snap.Lines = append(snap.Lines, line)
	}

	return snap, rows.Err()
}

// AddLine creates the cart lazily and upserts the line: adding a product
// already in the cart increments its quantity instead of duplicating it.
func (r *cartRepository) AddLine(ctx context.Context, customerID string, productID int64, quantity int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return domain.ErrProductNotFound
	}

	var cartID uuid.UUID
	cartQuery := `
		INSERT INTO carts (id, customer_id, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id) DO UPDATE SET updated_at = EXCLUDED.updated_at
		RETURNING id
	`
	if err := tx.QueryRow(ctx, cartQuery, uuid.New(), customerID, time.Now().UTC()).Scan(&cartID); err != nil {
		return fmt.Errorf("failed to upsert cart: %w", err)
	}

	lineQuery := `
		INSERT INTO cart_items (cart_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (cart_id, product_id) DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`
	if _, err := tx.Exec(ctx, lineQuery, cartID, productID, quantity); err != nil {
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *cartRepository) RemoveLine(ctx context.Context, customerID string, productID int64) error {
	query := `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND c.customer_id = $1 AND ci.product_id = $2
	`
	if _, err := r.db.Exec(ctx, query, customerID, productID); err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}
	return nil
}

func (r *cartRepository) Clear(ctx context.Context, customerID string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		DELETE FROM cart_items ci
		USING carts c
		WHERE ci.cart_id = c.id AND c.customer_id = $1
	`, customerID); err != nil {
		return fmt.Errorf("failed to clear cart lines: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE customer_id = $1`, customerID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return tx.Commit(ctx)
}
