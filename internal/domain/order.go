package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusPacked         OrderStatus = "packed"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusSuccess PaymentStatus = "success"
	PaymentStatusFailed  PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPendingPayment: {OrderStatusPaid, OrderStatusCancelled},
	OrderStatusPaid:           {OrderStatusPacked, OrderStatusCancelled},
	OrderStatusPacked:         {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:        {OrderStatusDelivered},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

type ShippingAddress struct {
	Line1      string `gorm:"size:255" json:"line1"`
	Line2      string `gorm:"size:255" json:"line2"`
	City       string `gorm:"size:80" json:"city"`
	State      string `gorm:"size:80" json:"state"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Phone      string `gorm:"size:50" json:"phone"`
}

type Order struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;index" json:"customer_id"`
	SellerID        uuid.UUID       `gorm:"type:uuid;index" json:"seller_id"`
	Items           []OrderItem     `json:"items"`
	TotalAmount     float64         `gorm:"type:decimal(12,2)" json:"total_amount"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shipping_address"`
	Status          OrderStatus     `gorm:"type:varchar(30);index" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"type:varchar(20);index" json:"payment_status"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(20);index" json:"payment_method"`
	PaymentRef      string          `gorm:"size:140" json:"payment_ref,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// OrderItem is an immutable snapshot of a cart line at purchase time.
type OrderItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID `gorm:"type:uuid;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"product_id"`
	Name      string    `gorm:"size:180" json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	UnitPrice float64   `gorm:"type:decimal(12,2)" json:"unit_price"`
}

// ItemsTotal sums line totals; TotalAmount must equal it at creation.
func (o *Order) ItemsTotal() float64 {
	total := 0.0
	for _, it := range o.Items {
		total += it.UnitPrice * float64(it.Quantity)
	}
	return total
}

// RecomputeTotal fills TotalAmount from the items when unset.
func (o *Order) RecomputeTotal() {
	if o.TotalAmount == 0 {
		o.TotalAmount = o.ItemsTotal()
	}
}

// CanTransition reports whether the status change is allowed.
func CanTransition(from, to OrderStatus) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition applies a validated status change.
func (o *Order) Transition(to OrderStatus) error {
	if !CanTransition(o.Status, to) {
		return &InvalidTransitionError{From: o.Status, To: to}
	}
	o.Status = to
	return nil
}
