package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sparkkart/storefront/internal/domain"
)

type CartUC struct {
	Carts    domain.CartRepo
	Products domain.ProductRepo
}

type CartLine struct {
	Item    domain.CartItem `json:"item"`
	Product *domain.Product `json:"product,omitempty"`
}

// Get returns the customer's cart, lazily created views included. A customer
// without a cart yet sees an empty one.
func (uc *CartUC) Get(ctx context.Context, customerID uuid.UUID) (*domain.Cart, []CartLine, error) {
	cart, err := uc.Carts.FindByCustomer(ctx, customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Cart{CustomerID: customerID}, nil, nil
		}
		return nil, nil, err
	}
	lines := make([]CartLine, 0, len(cart.Items))
	for _, it := range cart.Items {
		p, err := uc.Products.FindByID(ctx, it.ProductID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, nil, err
		}
		lines = append(lines, CartLine{Item: it, Product: p})
	}
	return cart, lines, nil
}

// AddItem merges quantity into an existing line, appending otherwise. The
// product must be live and the merged quantity within available stock.
// There is no locking here: two concurrent adds for the same customer are
// last-write-wins on the line.
func (uc *CartUC) AddItem(ctx context.Context, customerID, productID uuid.UUID, qty int) (*domain.Cart, error) {
	if qty < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	p, err := uc.Products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.IsDeleted {
		return nil, &domain.ValidationError{Field: "product_id", Reason: "product is no longer available"}
	}

	cart, err := uc.Carts.FindByCustomer(ctx, customerID)
	if errors.Is(err, domain.ErrNotFound) {
		cart = &domain.Cart{ID: uuid.New(), CustomerID: customerID}
		if err := uc.Carts.Save(ctx, cart); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	line := cart.Line(productID)
	newQty := qty
	if line != nil {
		newQty += line.Quantity
	}
	if newQty > p.AvailableStock() {
		return nil, &domain.InsufficientStockError{ProductName: p.Name, Available: p.AvailableStock(), Requested: newQty}
	}
	if line != nil {
		line.Quantity = newQty
		if err := uc.Carts.SaveItem(ctx, line); err != nil {
			return nil, err
		}
	} else {
		item := domain.CartItem{ID: uuid.New(), CartID: cart.ID, ProductID: productID, Quantity: qty, AddedAt: time.Now()}
		if err := uc.Carts.SaveItem(ctx, &item); err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, item)
	}
	return uc.Carts.FindByCustomer(ctx, customerID)
}

// UpdateItem sets an absolute quantity, re-validating stock.
func (uc *CartUC) UpdateItem(ctx context.Context, customerID, productID uuid.UUID, qty int) (*domain.Cart, error) {
	if qty < 1 {
		return nil, &domain.ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}
	cart, err := uc.Carts.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	line := cart.Line(productID)
	if line == nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.Products.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if qty > p.AvailableStock() {
		return nil, &domain.InsufficientStockError{ProductName: p.Name, Available: p.AvailableStock(), Requested: qty}
	}
	line.Quantity = qty
	if err := uc.Carts.SaveItem(ctx, line); err != nil {
		return nil, err
	}
	return uc.Carts.FindByCustomer(ctx, customerID)
}

func (uc *CartUC) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) (*domain.Cart, error) {
	cart, err := uc.Carts.FindByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if cart.Line(productID) == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.Carts.RemoveItem(ctx, cart.ID, productID); err != nil {
		return nil, err
	}
	return uc.Carts.FindByCustomer(ctx, customerID)
}
