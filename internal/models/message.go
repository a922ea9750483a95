package models

import (
	"fmt"
	"time"
)

// OrderMessage represents a new order announced to the kitchen queues
type OrderMessage struct {
	OrderID      int64      `json:"order_id"`
	CustomerName string     `json:"customer_name"`
	OrderType    OrderType  `json:"order_type"`
	Address      string     `json:"address,omitempty"`
	Items        []LineItem `json:"items"`
	TotalPrice   float64    `json:"total_price"`
	CreatedAt    time.Time  `json:"created_at"`
}

// StatusUpdateMessage represents an order status change notification
type StatusUpdateMessage struct {
	OrderID   int64       `json:"order_id"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
	ChangedBy string      `json:"changed_by"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewOrderMessage builds the kitchen announcement for a freshly created order
func NewOrderMessage(order *Order) *OrderMessage {
	return &OrderMessage{
		OrderID:      order.ID,
		CustomerName: order.Customer.Name,
		OrderType:    order.Customer.Type,
		Address:      order.Customer.Address,
		Items:        order.Items,
		TotalPrice:   order.TotalPrice,
		CreatedAt:    order.CreatedAt,
	}
}

// NewStatusUpdateMessage builds a notification for an order status change
func NewStatusUpdateMessage(orderID int64, oldStatus, newStatus OrderStatus, changedBy string) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Timestamp: time.Now().UTC(),
	}
}

// OrderRoutingKey generates the routing key for order messages on the
// orders topic exchange
func OrderRoutingKey(orderType OrderType) string {
	return fmt.Sprintf("kitchen.%s", orderType)
}
