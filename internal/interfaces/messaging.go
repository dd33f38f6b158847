package interfaces

import (
	"context"
	"time"

	"github.com/kasirapp/kasir/internal/domain"
)

// RabbitMQ messages
type OrderCreatedMessage struct {
	OrderID     string            `json:"order_id"`
	Code        string            `json:"code"`
	QueueNumber string            `json:"queue_number"`
	DiningType  domain.DiningType `json:"dining_type"`
	Payment     string            `json:"payment"`
	Total       int64             `json:"total"`
	Items       []OrderItemMsg    `json:"items"`
	CreatedAt   time.Time         `json:"created_at"`
}

type OrderItemMsg struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

type OrderPaidMessage struct {
	Code        string    `json:"code"`
	QueueNumber string    `json:"queue_number"`
	Total       int64     `json:"total"`
	PaidAt      time.Time `json:"paid_at"`
}

// Messaging interfaces (adapter/rabbitmq)
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, msg OrderCreatedMessage) error
	PublishOrderPaid(ctx context.Context, msg OrderPaidMessage) error
}

type EventConsumer interface {
	ConsumeOrderEvents(ctx context.Context, handler OrderEventHandler) error
}

type OrderEventHandler func(ctx context.Context, body []byte) error
