package domain

import (
	"time"

	"github.com/google/uuid"
)

// Events published to the message broker. Downstream consumers (the
// notification worker) deliver side effects; publishers never wait on them.

type OrderPlacedEvent struct {
	OrderID     uuid.UUID `json:"order_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	SellerID    uuid.UUID `json:"seller_id"`
	TotalAmount float64   `json:"total_amount"`
	ItemCount   int       `json:"item_count"`
	PlacedAt    time.Time `json:"placed_at"`
}

type PaymentSettledEvent struct {
	OrderID    uuid.UUID     `json:"order_id"`
	CustomerID uuid.UUID     `json:"customer_id"`
	SellerID   uuid.UUID     `json:"seller_id"`
	Status     PaymentStatus `json:"status"`
	SettledAt  time.Time     `json:"settled_at"`
}

type SupportRepliedEvent struct {
	TicketID   uuid.UUID `json:"ticket_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Subject    string    `json:"subject"`
	RepliedAt  time.Time `json:"replied_at"`
}
