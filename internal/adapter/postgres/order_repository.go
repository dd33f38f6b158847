package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kasirapp/kasir/internal/domain"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type orderRepository struct {
	db DB
}

func NewOrderRepository(db DB) interfaces.OrderRepository {
	return &orderRepository{db: db}
}

// NextCode derives the next queue number from the count of today's orders.
// The read-then-use window means two concurrent checkouts can compute the
// same code; the unique constraint on orders.code catches that and the
// caller retries with a fresh allocation.
func (r *orderRepository) NextCode(ctx context.Context) (string, string, error) {
	now := time.Now()
	prefix := fmt.Sprintf("ORD-%s-", now.Format("20060102"))

	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE code LIKE $1`, prefix+"%").Scan(&count)
	if err != nil {
		return "", "", fmt.Errorf("failed to count orders: %w", err)
	}

	queueNumber := fmt.Sprintf("%03d", count+1)
	return prefix + queueNumber, queueNumber, nil
}

// CreateFromCart commits the checkout as one atomic unit: order header,
// order items copied verbatim from the snapshot, and deletion of the
// source cart. All effects become visible together or not at all.
func (r *orderRepository) CreateFromCart(ctx context.Context, order *domain.Order, cartID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO orders (id, code, queue_number, customer_id, dining_type, payment,
		                    status, subtotal, discount, tax, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.Exec(ctx, query,
		order.ID, order.Code, order.QueueNumber, order.CustomerID, order.DiningType, order.Payment,
		order.Status, order.Subtotal, order.Discount, order.Tax, order.Total, order.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", domain.ErrCodeConflict, order.Code)
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range order.Items {
		itemQuery := `
			INSERT INTO order_items (order_id, product_id, product_name, quantity, price, total)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id
		`
		err = tx.QueryRow(ctx, itemQuery,
			order.ID, order.Items[i].ProductID, order.Items[i].ProductName,
			order.Items[i].Quantity, order.Items[i].Price, order.Items[i].Total,
		).Scan(&order.Items[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to delete cart lines: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM carts WHERE id = $1`, cartID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return tx.Commit(ctx)
}

func (r *orderRepository) FindByCode(ctx context.Context, code string) (*domain.Order, error) {
	query := `
		SELECT id, code, queue_number, customer_id, dining_type, payment,
		       status, subtotal, discount, tax, total, created_at, paid_at
		FROM orders
		WHERE code = $1
	`

	var order domain.Order
	err := r.db.QueryRow(ctx, query, code).Scan(
		&order.ID, &order.Code, &order.QueueNumber, &order.CustomerID, &order.DiningType, &order.Payment,
		&order.Status, &order.Subtotal, &order.Discount, &order.Tax, &order.Total, &order.CreatedAt, &order.PaidAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	itemsQuery := `
		SELECT id, order_id, product_id, product_name, quantity, price, total
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
	rows, err := r.db.Query(ctx, itemsQuery, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.Price, &item.Total); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		order.Items = append(order.Items, item)
	}

	return &order, rows.Err()
}

// ConfirmPayment transitions AWAITING_PAYMENT -> PAID exactly once. The
// order row is locked first, so concurrent confirmations for the same code
// serialize: the loser observes PAID and reports already=true with no
// effects. Stock decrements ride in the same transaction as the status
// write; the update is a relative decrement, so concurrent confirmations
// touching the same product never lose a decrement.
//
// Stock is deliberately not re-validated here: confirmation long after
// checkout can drive stock negative, matching the observed behavior.
func (r *orderRepository) ConfirmPayment(ctx context.Context, code string) (bool, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var orderID uuid.UUID
	var status domain.Status
	err = tx.QueryRow(ctx, `SELECT id, status FROM orders WHERE code = $1 FOR UPDATE`, code).
		Scan(&orderID, &status)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, domain.ErrOrderNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to lock order: %w", err)
	}

	if status == domain.StatusPaid {
		return true, tx.Commit(ctx)
	}

	decrementQuery := `
		UPDATE products p
		SET stock = p.stock - oi.quantity
		FROM order_items oi
		WHERE oi.order_id = $1 AND p.id = oi.product_id
	`
	if _, err := tx.Exec(ctx, decrementQuery, orderID); err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	_, err = tx.Exec(ctx, `UPDATE orders SET status = $1, paid_at = $2 WHERE id = $3`,
		domain.StatusPaid, time.Now().UTC(), orderID)
	if err != nil {
		return false, fmt.Errorf("failed to mark order paid: %w", err)
	}

	return false, tx.Commit(ctx)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
