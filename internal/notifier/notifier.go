package notifier

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sparkkart/storefront/internal/domain"
	"github.com/sparkkart/storefront/internal/messaging"
)

// Worker turns published events into Notification rows. It is the only
// writer of notifications; API callers never block on it.
type Worker struct {
	Notifications domain.NotificationRepo
	Subscriber    messaging.Subscriber
	GroupID       string
}

// Run starts one consumer goroutine per topic and blocks until ctx ends.
func (w *Worker) Run(ctx context.Context) {
	go w.Subscriber.Consume(ctx, messaging.TopicOrdersPlaced, w.GroupID, w.handleOrderPlaced)
	go w.Subscriber.Consume(ctx, messaging.TopicPaymentsSettled, w.GroupID, w.handlePaymentSettled)
	go w.Subscriber.Consume(ctx, messaging.TopicSupportReplied, w.GroupID, w.handleSupportReplied)
	<-ctx.Done()
}

func (w *Worker) handleOrderPlaced(ctx context.Context, payload []byte) error {
	var event domain.OrderPlacedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal order placed: %w", err)
	}

	seller := &domain.Notification{
		UserID:   event.SellerID,
		UserType: domain.UserTypeSeller,
		Title:    "New Order Received",
		Message:  fmt.Sprintf("Order %s for %.2f (%d items)", event.OrderID, event.TotalAmount, event.ItemCount),
		Type:     domain.NotificationOrderReceived,
	}
	if err := w.Notifications.Save(ctx, seller); err != nil {
		log.Error().Err(err).Str("order_id", event.OrderID.String()).Msg("save seller notification")
	}

	customer := &domain.Notification{
		UserID:   event.CustomerID,
		UserType: domain.UserTypeCustomer,
		Title:    "Order Placed",
		Message:  fmt.Sprintf("Your order %s has been placed", event.OrderID),
		Type:     domain.NotificationOrderPlaced,
	}
	if err := w.Notifications.Save(ctx, customer); err != nil {
		log.Error().Err(err).Str("order_id", event.OrderID.String()).Msg("save customer notification")
	}
	return nil
}

func (w *Worker) handlePaymentSettled(ctx context.Context, payload []byte) error {
	var event domain.PaymentSettledEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal payment settled: %w", err)
	}
	if event.Status != domain.PaymentStatusSuccess {
		return nil
	}
	n := &domain.Notification{
		UserID:   event.CustomerID,
		UserType: domain.UserTypeCustomer,
		Title:    "Payment Received",
		Message:  fmt.Sprintf("Payment for order %s was received", event.OrderID),
		Type:     domain.NotificationPaymentReceived,
	}
	if err := w.Notifications.Save(ctx, n); err != nil {
		log.Error().Err(err).Str("order_id", event.OrderID.String()).Msg("save payment notification")
	}
	return nil
}

func (w *Worker) handleSupportReplied(ctx context.Context, payload []byte) error {
	var event domain.SupportRepliedEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("unmarshal support replied: %w", err)
	}
	n := &domain.Notification{
		UserID:   event.CustomerID,
		UserType: domain.UserTypeCustomer,
		Title:    "Support Reply",
		Message:  fmt.Sprintf("Our team replied to your ticket: %s", event.Subject),
		Type:     domain.NotificationSupportReply,
	}
	if err := w.Notifications.Save(ctx, n); err != nil {
		log.Error().Err(err).Str("ticket_id", event.TicketID.String()).Msg("save support notification")
	}
	return nil
}
