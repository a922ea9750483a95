package notification

import (
	"context"
	"fmt"

	"restaurant-storefront/internal/logger"
	"restaurant-storefront/internal/messaging"
	"restaurant-storefront/internal/models"
)

// Subscriber consumes status update notifications and prints them for
// the counter staff
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes notifications until the context is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", "Notification subscriber started", requestID, nil)

	if err := s.consumer.StartConsuming(ctx, s.handleNotification); err != nil {
		s.logger.Error("consumer_failed", "Notification consumer failed", requestID, err, nil)
		return err
	}
	return nil
}

// handleNotification processes one status update notification
func (s *Subscriber) handleNotification(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var statusUpdate models.StatusUpdateMessage
	if err := messaging.ParseMessage(body, &statusUpdate); err != nil {
		s.logger.Error("message_parsing_failed", "Failed to parse notification message", requestID, err, nil)
		return fmt.Errorf("failed to parse notification: %w", err)
	}

	s.logger.Debug("notification_received", "Received status update notification", requestID, map[string]interface{}{
		"order_id":   statusUpdate.OrderID,
		"new_status": statusUpdate.NewStatus,
		"changed_by": statusUpdate.ChangedBy,
	})

	s.displayNotification(&statusUpdate)
	return nil
}

// displayNotification prints a human-readable line to the console and
// mirrors it as structured log data
func (s *Subscriber) displayNotification(statusUpdate *models.StatusUpdateMessage) {
	fmt.Println(formatNotification(statusUpdate))

	s.logger.Info("notification_displayed", "Notification displayed", "", map[string]interface{}{
		"order_id":   statusUpdate.OrderID,
		"old_status": statusUpdate.OldStatus,
		"new_status": statusUpdate.NewStatus,
		"changed_by": statusUpdate.ChangedBy,
	})
}

// formatNotification creates a human-readable notification line
func formatNotification(statusUpdate *models.StatusUpdateMessage) string {
	timestamp := statusUpdate.Timestamp.Format("2006-01-02 15:04:05")

	switch statusUpdate.NewStatus {
	case models.StatusCompleted:
		return fmt.Sprintf(
			"[%s] Order #%d has been completed by %s.",
			timestamp,
			statusUpdate.OrderID,
			statusUpdate.ChangedBy,
		)
	case models.StatusPending:
		return fmt.Sprintf(
			"[%s] Order #%d was moved back to pending by %s.",
			timestamp,
			statusUpdate.OrderID,
			statusUpdate.ChangedBy,
		)
	default:
		return fmt.Sprintf(
			"[%s] Order #%d changed status: %s -> %s (by %s)",
			timestamp,
			statusUpdate.OrderID,
			statusUpdate.OldStatus,
			statusUpdate.NewStatus,
			statusUpdate.ChangedBy,
		)
	}
}

// Close stops the underlying consumer
func (s *Subscriber) Close() error {
	return s.consumer.Close()
}
