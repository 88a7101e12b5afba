package notifier

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkkart/storefront/internal/domain"
)

type memNotificationRepo struct {
	saved []domain.Notification
}

func (r *memNotificationRepo) Save(ctx context.Context, n *domain.Notification) error {
	r.saved = append(r.saved, *n)
	return nil
}

func (r *memNotificationRepo) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.Notification, error) {
	out := []domain.Notification{}
	for _, n := range r.saved {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *memNotificationRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	return nil
}

func TestHandleOrderPlaced(t *testing.T) {
	repo := &memNotificationRepo{}
	w := &Worker{Notifications: repo}

	event := domain.OrderPlacedEvent{
		OrderID:     uuid.New(),
		CustomerID:  uuid.New(),
		SellerID:    uuid.New(),
		TotalAmount: 540,
		ItemCount:   2,
	}
	payload, _ := json.Marshal(event)
	require.NoError(t, w.handleOrderPlaced(context.Background(), payload))

	require.Len(t, repo.saved, 2)

	seller := repo.saved[0]
	assert.Equal(t, event.SellerID, seller.UserID)
	assert.Equal(t, domain.UserTypeSeller, seller.UserType)
	assert.Equal(t, "New Order Received", seller.Title)
	assert.Equal(t, domain.NotificationOrderReceived, seller.Type)

	customer := repo.saved[1]
	assert.Equal(t, event.CustomerID, customer.UserID)
	assert.Equal(t, domain.UserTypeCustomer, customer.UserType)
	assert.Equal(t, "Order Placed", customer.Title)
}

func TestHandleOrderPlacedBadPayload(t *testing.T) {
	w := &Worker{Notifications: &memNotificationRepo{}}
	assert.Error(t, w.handleOrderPlaced(context.Background(), []byte("{not json")))
}

func TestHandlePaymentSettled(t *testing.T) {
	t.Run("success writes a row", func(t *testing.T) {
		repo := &memNotificationRepo{}
		w := &Worker{Notifications: repo}

		event := domain.PaymentSettledEvent{
			OrderID:    uuid.New(),
			CustomerID: uuid.New(),
			Status:     domain.PaymentStatusSuccess,
		}
		payload, _ := json.Marshal(event)
		require.NoError(t, w.handlePaymentSettled(context.Background(), payload))

		require.Len(t, repo.saved, 1)
		assert.Equal(t, "Payment Received", repo.saved[0].Title)
		assert.Equal(t, domain.NotificationPaymentReceived, repo.saved[0].Type)
	})

	t.Run("failed settlement is silent", func(t *testing.T) {
		repo := &memNotificationRepo{}
		w := &Worker{Notifications: repo}

		event := domain.PaymentSettledEvent{OrderID: uuid.New(), Status: domain.PaymentStatusFailed}
		payload, _ := json.Marshal(event)
		require.NoError(t, w.handlePaymentSettled(context.Background(), payload))
		assert.Empty(t, repo.saved)
	})
}

func TestHandleSupportReplied(t *testing.T) {
	repo := &memNotificationRepo{}
	w := &Worker{Notifications: repo}

	event := domain.SupportRepliedEvent{
		TicketID:   uuid.New(),
		CustomerID: uuid.New(),
		Subject:    "Damaged delivery",
	}
	payload, _ := json.Marshal(event)
	require.NoError(t, w.handleSupportReplied(context.Background(), payload))

	require.Len(t, repo.saved, 1)
	assert.Equal(t, event.CustomerID, repo.saved[0].UserID)
	assert.Contains(t, repo.saved[0].Message, "Damaged delivery")
	assert.Equal(t, domain.NotificationSupportReply, repo.saved[0].Type)
}
