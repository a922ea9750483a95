package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/models"
	"restaurant-storefront/internal/pricing"
)

// ErrInvalidStatus indicates an unknown order status value
var ErrInvalidStatus = errors.New("invalid order status")

// OrderRepository is the persistence surface the order service needs
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) (int64, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	SetStatus(ctx context.Context, id int64, status models.OrderStatus, changedBy string) (models.OrderStatus, bool, error)
}

// SnapshotSource provides the catalog snapshot checkout prices against
type SnapshotSource interface {
	Snapshot(ctx context.Context) (*models.CatalogSnapshot, error)
}

// EventPublisher announces order lifecycle events
type EventPublisher interface {
	PublishOrder(ctx context.Context, orderMsg interface{}, routingKey string) error
	PublishNotification(ctx context.Context, notificationMsg interface{}) error
}

// Service handles checkout and order administration. The total of every
// order is recomputed here from the catalog; client-supplied prices never
// reach storage.
type Service struct {
	repo      OrderRepository
	catalog   SnapshotSource
	publisher EventPublisher
	logger    *logger.Logger
}

// NewService creates an order service
func NewService(repo OrderRepository, catalog SnapshotSource, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		publisher: publisher,
		logger:    log,
	}
}

// Checkout prices the submitted cart against the current catalog and
// persists the order. A malformed cart degrades to an empty order rather
// than failing the request; a storage failure is the only fatal path.
func (s *Service) Checkout(ctx context.Context, req *models.CreateOrderRequest, requestID string) (*models.Order, error) {
	items, err := pricing.DecodeLineItems(req.Details)
	if err != nil {
		// Degrade to an empty cart: the order is still taken, priced at zero
		s.logger.Warn("invalid_cart_format", "Cart details unreadable, pricing as empty cart", requestID, map[string]interface{}{
			"customer_name": req.Customer.Name,
		})
		items = nil
	}

	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
	}

	result := pricing.ComputeOrderTotal(items, snap)
	for _, anomaly := range result.Anomalies {
		s.logger.Warn("pricing_anomaly", anomaly.String(), requestID, map[string]interface{}{
			"kind": anomaly.Kind,
			"ref":  anomaly.Ref,
		})
	}

	total, _ := pricing.RoundTotal(result.Total).Float64()
	order := &models.Order{
		Items:      result.Items,
		TotalPrice: total,
		Status:     models.StatusPending,
		CreatedAt:  time.Now().UTC(),
		Customer:   req.Customer,
	}

	id, err := s.repo.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}
	order.ID = id

	// Event delivery is best-effort: the order is already persisted
	routingKey := models.OrderRoutingKey(order.Customer.Type)
	if err := s.publisher.PublishOrder(ctx, models.NewOrderMessage(order), routingKey); err != nil {
		s.logger.Error("order_publish_failed", "Failed to announce new order", requestID, err, map[string]interface{}{
			"order_id":    id,
			"routing_key": routingKey,
		})
	}

	s.logger.Info("order_created", "Order created", requestID, map[string]interface{}{
		"order_id":    id,
		"total_price": total,
		"order_type":  order.Customer.Type,
		"item_count":  len(order.Items),
		"anomalies":   len(result.Anomalies),
	})

	return order, nil
}

// ListOrders returns all orders for the admin dashboard, newest first
func (s *Service) ListOrders(ctx context.Context) ([]models.Order, error) {
	return s.repo.ListOrders(ctx)
}

// UpdateStatus transitions an order's status. Re-applying the current
// status is a no-op that still succeeds.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string, requestID string) error {
	if !models.ValidOrderStatus(status) {
		return ErrInvalidStatus
	}

	newStatus := models.OrderStatus(status)
	oldStatus, changed, err := s.repo.SetStatus(ctx, id, newStatus, "admin")
	if err != nil {
		return err
	}

	if !changed {
		return nil
	}

	msg := models.NewStatusUpdateMessage(id, oldStatus, newStatus, "admin")
	if err := s.publisher.PublishNotification(ctx, msg); err != nil {
		s.logger.Error("notification_publish_failed", "Failed to broadcast status update", requestID, err, map[string]interface{}{
			"order_id":   id,
			"new_status": status,
		})
	}

	s.logger.Info("order_status_updated", "Order status updated", requestID, map[string]interface{}{
		"order_id":   id,
		"old_status": oldStatus,
		"new_status": status,
	})

	return nil
}
