package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrDuplicateReview = errors.New("review already exists for this product")
	ErrDuplicateName   = errors.New("name already in use")
	ErrUnauthorized    = errors.New("unauthorized")
)

// InsufficientStockError names the product that could not be fulfilled.
type InsufficientStockError struct {
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (available: %d, requested: %d)", e.ProductName, e.Available, e.Requested)
}

// ValidationError is returned for rejected writes; handlers map it to 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

// InvalidTransitionError rejects an order status change outside the allowed
// lifecycle.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}
