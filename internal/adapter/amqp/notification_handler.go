package amqp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kasirapp/kasir/internal/adapter/logger"
	"github.com/kasirapp/kasir/internal/interfaces"
)

type NotificationHandler struct {
	logger logger.Logger
}

func NewNotificationHandler(logger logger.Logger) *NotificationHandler {
	return &NotificationHandler{
		logger: logger,
	}
}

// HandleOrderEvent consumes the paid-order fanout feed, the surrogate for
// a cashier/kitchen display.
func (h *NotificationHandler) HandleOrderEvent(ctx context.Context, body []byte) error {
	var msg interfaces.OrderPaidMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.logger.Error("message_parse_failed", "Failed to parse order event", "", nil, err)
		return err
	}

	h.logger.Debug("order_event_received", fmt.Sprintf("Order %s paid", msg.Code),
		msg.Code, map[string]interface{}{
			"code":         msg.Code,
			"queue_number": msg.QueueNumber,
		})

	fmt.Printf("Order %s (queue %s) paid: total %d\n",
		msg.Code, msg.QueueNumber, msg.Total)

	return nil
}
