package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sparkkart/storefront/internal/domain"
	"github.com/sparkkart/storefront/internal/messaging"
)

type OrderUC struct {
	Orders    domain.OrderRepo
	Carts     domain.CartRepo
	Products  domain.ProductRepo
	Publisher messaging.Publisher
	SellerID  uuid.UUID
}

// Checkout converts the customer's cart into an order. The steps are
// separate writes with no surrounding transaction: stock already
// decremented for earlier lines stays decremented when a later line fails.
// That matches the historical behaviour callers depend on; see DESIGN.md
// before changing it.
func (uc *OrderUC) Checkout(ctx context.Context, customerID uuid.UUID, addr domain.ShippingAddress, method domain.PaymentMethod) (*domain.Order, error) {
	switch method {
	case domain.PaymentMethodCOD, domain.PaymentMethodOnline:
	default:
		return nil, &domain.ValidationError{Field: "payment_method", Reason: "must be cod or online"}
	}

	cart, err := uc.Carts.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrEmptyCart
		}
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	order := &domain.Order{
		ID:              uuid.New(),
		CustomerID:      customerID,
		SellerID:        uc.SellerID,
		ShippingAddress: addr,
		PaymentMethod:   method,
		PaymentStatus:   domain.PaymentStatusPending,
		Status:          domain.OrderStatusPendingPayment,
	}
	if method == domain.PaymentMethodCOD {
		order.Status = domain.OrderStatusPaid
	}

	// Price snapshot from the live products.
	for _, line := range cart.Items {
		p, err := uc.Products.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, domain.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: p.ID,
			Name:      p.Name,
			Quantity:  line.Quantity,
			UnitPrice: p.UnitPrice(),
		})
	}
	order.RecomputeTotal()

	// Per-line reload, check and decrement. Aborting mid-loop does not
	// restore earlier decrements.
	for _, it := range order.Items {
		p, err := uc.Products.FindByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p.AvailableStock() < it.Quantity {
			return nil, &domain.InsufficientStockError{ProductName: p.Name, Available: p.AvailableStock(), Requested: it.Quantity}
		}
		p.DecrementStock(it.Quantity)
		if err := uc.Products.Save(ctx, p); err != nil {
			return nil, err
		}
	}

	if err := uc.Orders.Save(ctx, order); err != nil {
		return nil, err
	}

	uc.publish(ctx, messaging.TopicOrdersPlaced, order.ID.String(), domain.OrderPlacedEvent{
		OrderID:     order.ID,
		CustomerID:  order.CustomerID,
		SellerID:    order.SellerID,
		TotalAmount: order.TotalAmount,
		ItemCount:   len(order.Items),
		PlacedAt:    time.Now(),
	})

	if err := uc.Carts.Clear(ctx, cart.ID); err != nil {
		log.Error().Err(err).Str("cart_id", cart.ID.String()).Msg("clear cart after checkout")
	}

	return uc.Orders.FindByID(ctx, order.ID)
}

// Get enforces ownership for customer reads.
func (uc *OrderUC) Get(ctx context.Context, orderID, customerID uuid.UUID) (*domain.Order, error) {
	o, err := uc.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.CustomerID != customerID {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func (uc *OrderUC) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.Order, error) {
	return uc.Orders.ListByCustomer(ctx, customerID)
}

func (uc *OrderUC) AdminGet(ctx context.Context, orderID uuid.UUID) (*domain.Order, error) {
	return uc.Orders.FindByID(ctx, orderID)
}

func (uc *OrderUC) AdminList(ctx context.Context, f domain.OrderFilter) ([]domain.Order, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	return uc.Orders.List(ctx, f)
}

// UpdateStatus is the admin-only status transition.
func (uc *OrderUC) UpdateStatus(ctx context.Context, orderID uuid.UUID, to domain.OrderStatus) (*domain.Order, error) {
	o, err := uc.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := o.Transition(to); err != nil {
		return nil, err
	}
	if err := uc.Orders.Save(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// SettlePayment records a gateway callback for an online order.
func (uc *OrderUC) SettlePayment(ctx context.Context, orderID uuid.UUID, success bool, ref string) (*domain.Order, error) {
	o, err := uc.Orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.PaymentMethod != domain.PaymentMethodOnline {
		return nil, &domain.ValidationError{Field: "payment_method", Reason: "order is not an online payment"}
	}
	if o.PaymentStatus != domain.PaymentStatusPending {
		return nil, &domain.ValidationError{Field: "payment_status", Reason: "payment already settled"}
	}
	if success {
		o.PaymentStatus = domain.PaymentStatusSuccess
		if o.Status == domain.OrderStatusPendingPayment {
			o.Status = domain.OrderStatusPaid
		}
	} else {
		o.PaymentStatus = domain.PaymentStatusFailed
	}
	o.PaymentRef = ref
	if err := uc.Orders.Save(ctx, o); err != nil {
		return nil, err
	}

	uc.publish(ctx, messaging.TopicPaymentsSettled, o.ID.String(), domain.PaymentSettledEvent{
		OrderID:    o.ID,
		CustomerID: o.CustomerID,
		SellerID:   o.SellerID,
		Status:     o.PaymentStatus,
		SettledAt:  time.Now(),
	})
	return o, nil
}

// publish is fire-and-forget: failures are logged, never surfaced.
func (uc *OrderUC) publish(ctx context.Context, topic, key string, event any) {
	if uc.Publisher == nil {
		return
	}
	if err := uc.Publisher.PublishEvent(ctx, topic, key, event); err != nil {
		log.Error().Err(err).Str("topic", topic).Str("key", key).Msg("publish event")
	}
}
